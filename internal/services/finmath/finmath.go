// Package finmath provides the arithmetic helpers exposed as tools so that
// callers never have to do financial arithmetic by hand.
package finmath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/models"
)

// ErrInvalidInput matches every input error returned by this package.
var ErrInvalidInput = errors.New("invalid input")

type inputError string

func (e inputError) Error() string        { return string(e) }
func (e inputError) Is(target error) bool { return target == ErrInvalidInput }

// Operation names.
const (
	OpAdd              = "add"
	OpSubtract         = "subtract"
	OpMultiply         = "multiply"
	OpDivide           = "divide"
	OpPercentage       = "percentage"
	OpPercentageChange = "percentage_change"
	OpAverage          = "average"
	OpCompoundGrowth   = "compound_growth"
	OpRatio            = "ratio"
	OpSum              = "sum"
)

// Operations lists every supported operation in catalog order.
var Operations = []string{
	OpAdd, OpSubtract, OpMultiply, OpDivide, OpPercentage, OpPercentageChange,
	OpAverage, OpCompoundGrowth, OpRatio, OpSum,
}

// Request carries the operands for Evaluate. Each operation reads only its own fields.
type Request struct {
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Value     float64   `json:"value"`
	Percent   float64   `json:"percent"`
	OldValue  float64   `json:"old_value"`
	NewValue  float64   `json:"new_value"`
	Numbers   []float64 `json:"numbers"`
	Principal float64   `json:"principal"`
	Rate      float64   `json:"rate"`
	Periods   int       `json:"periods"`
}

// Evaluate dispatches a named operation. Results that overflow or are
// otherwise not finite are reported as invalid input.
func Evaluate(op string, req Request) (*models.MathResult, error) {
	r, err := evaluate(op, req)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(r.Result) || math.IsInf(r.Result, 0) {
		return nil, inputError("Result is not a finite number")
	}
	return r, nil
}

func evaluate(op string, req Request) (*models.MathResult, error) {
	switch strings.ToLower(strings.TrimSpace(op)) {
	case OpAdd:
		return Add(req.A, req.B), nil
	case OpSubtract:
		return Subtract(req.A, req.B), nil
	case OpMultiply:
		return Multiply(req.A, req.B), nil
	case OpDivide:
		return Divide(req.A, req.B)
	case OpPercentage:
		return Percentage(req.Value, req.Percent), nil
	case OpPercentageChange:
		return PercentageChange(req.OldValue, req.NewValue)
	case OpAverage:
		return Average(req.Numbers)
	case OpCompoundGrowth:
		return CompoundGrowth(req.Principal, req.Rate, req.Periods)
	case OpRatio:
		return Ratio(req.A, req.B)
	case OpSum, "sum_list":
		return SumList(req.Numbers), nil
	default:
		return nil, inputError(fmt.Sprintf("unknown operation %q", op))
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plain(op, expr string, result float64) *models.MathResult {
	return &models.MathResult{
		Operation:  op,
		Expression: expr,
		Result:     result,
		Formatted:  num(result),
	}
}

// Add returns a + b
func Add(a, b float64) *models.MathResult {
	return plain(OpAdd, num(a)+" + "+num(b), a+b)
}

// Subtract returns a - b
func Subtract(a, b float64) *models.MathResult {
	return plain(OpSubtract, num(a)+" - "+num(b), a-b)
}

// Multiply returns a × b
func Multiply(a, b float64) *models.MathResult {
	return plain(OpMultiply, num(a)+" × "+num(b), a*b)
}

// Divide returns a ÷ b
func Divide(a, b float64) (*models.MathResult, error) {
	if b == 0 {
		return nil, inputError("Cannot divide by zero")
	}
	return plain(OpDivide, num(a)+" ÷ "+num(b), a/b), nil
}

// Percentage returns percent% of value
func Percentage(value, percent float64) *models.MathResult {
	result := value * percent / 100
	return &models.MathResult{
		Operation:  OpPercentage,
		Expression: num(percent) + "% of " + num(value),
		Result:     result,
		Formatted:  fmt.Sprintf("%.2f", result),
	}
}

// PercentageChange returns (new - old) / old × 100 with its direction
func PercentageChange(oldValue, newValue float64) (*models.MathResult, error) {
	if oldValue == 0 {
		return nil, inputError("Cannot calculate percentage change from zero")
	}
	change := (newValue - oldValue) / oldValue * 100

	direction := "no change"
	switch {
	case change > 0:
		direction = "increase"
	case change < 0:
		direction = "decrease"
	}

	return &models.MathResult{
		Operation:  OpPercentageChange,
		Expression: fmt.Sprintf("(%s - %s) / %s × 100", num(newValue), num(oldValue), num(oldValue)),
		Result:     change,
		Formatted:  common.FormatSignedPct(change),
		Direction:  direction,
	}, nil
}

// Average returns the arithmetic mean
func Average(numbers []float64) (*models.MathResult, error) {
	if len(numbers) == 0 {
		return nil, inputError("Cannot calculate average of empty list")
	}
	var total float64
	for _, n := range numbers {
		total += n
	}
	avg := total / float64(len(numbers))
	return &models.MathResult{
		Operation:  OpAverage,
		Expression: fmt.Sprintf("(%s) / %d", joinNumbers(numbers, " + "), len(numbers)),
		Result:     avg,
		Formatted:  fmt.Sprintf("%.2f", avg),
	}, nil
}

// CompoundGrowth returns principal × (1 + rate/100)^periods
func CompoundGrowth(principal, rate float64, periods int) (*models.MathResult, error) {
	if periods < 0 {
		return nil, inputError("Number of periods must be non-negative")
	}
	final := principal * math.Pow(1+rate/100, float64(periods))
	growth := final - principal
	growthPct := 0.0
	if principal != 0 {
		growthPct = growth / principal * 100
	}
	return &models.MathResult{
		Operation:  OpCompoundGrowth,
		Expression: fmt.Sprintf("%s × (1 + %s%%)^%d", num(principal), num(rate), periods),
		Result:     final,
		Formatted:  fmt.Sprintf("%s (growth %s, %.2f%%)", common.FormatMoney(final), common.FormatMoney(growth), growthPct),
	}, nil
}

// Ratio returns a / b as a decimal and percentage
func Ratio(a, b float64) (*models.MathResult, error) {
	if b == 0 {
		return nil, inputError("Second number cannot be zero")
	}
	r := a / b
	return &models.MathResult{
		Operation:  OpRatio,
		Expression: num(a) + ":" + num(b),
		Result:     r,
		Formatted:  fmt.Sprintf("%.4f (%.2f%%)", r, r*100),
	}, nil
}

// SumList returns the sum of numbers; an empty list sums to zero
func SumList(numbers []float64) *models.MathResult {
	var total float64
	for _, n := range numbers {
		total += n
	}
	return &models.MathResult{
		Operation:  OpSum,
		Expression: joinNumbers(numbers, " + "),
		Result:     total,
		Formatted:  strings.Replace(common.FormatMoney(total), "$", "", 1),
	}
}

func joinNumbers(numbers []float64, sep string) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = num(n)
	}
	return strings.Join(parts, sep)
}
