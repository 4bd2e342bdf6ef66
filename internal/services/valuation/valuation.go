// Package valuation implements the closed-form valuation formulas: CAPM cost of
// equity, WACC, DCF projection with a Gordon-growth terminal value, and a
// discount rate / terminal growth sensitivity grid.
//
// All rates are percentages: 4.5 means 4.5%.
package valuation

import (
	"fmt"
	"math"

	"github.com/bobmcallan/vantage/internal/common"
)

// Fallbacks used when inputs are missing or unusable.
const (
	DefaultBeta              = 1.0
	DefaultTaxRate           = 21.0
	DefaultCostOfDebt        = 5.0
	DefaultFCFGrowthRate     = 5.0
	MinFCFGrowthRate         = -10.0
	MaxFCFGrowthRate         = 30.0
	MaxProjectionYears       = 10
	MaxTerminalGrowthRate    = 5.0
	MaxMarginOfSafety        = 50.0
	HoldBandMultiplier       = 1.1
	MinHistoricalCashFlows   = 2
	HistoricalCashFlowPeriod = 5
	MaxSensitivityRange      = 20
)

// Recommendation strings.
const (
	RecNoPrice    = "Unable to compare - no market price available"
	RecStrongBuy  = "STRONG BUY - Trading below margin of safety"
	RecBuy        = "BUY - Trading below intrinsic value"
	RecHold       = "HOLD - Fairly valued"
	RecOvervalued = "OVERVALUED - Trading above intrinsic value"
)

// DefaultTerminalGrowthRange and DefaultDiscountRateRange are the sensitivity grid axes.
var (
	DefaultTerminalGrowthRange = []float64{1.5, 2.0, 2.5, 3.0, 3.5}
	DefaultDiscountRateRange   = []float64{8.0, 9.0, 10.0, 11.0, 12.0}
)

// InputError reports an input that makes a valuation undefined.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RequireFinite rejects NaN and infinite values for the named field.
func RequireFinite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InputError{Field: field, Message: "must be a finite number"}
		}
	}
	return nil
}

// Assumptions are the configurable defaults applied when a caller gives no override.
type Assumptions struct {
	RiskFreeRate         float64
	EquityRiskPremium    float64
	TerminalGrowthRate   float64
	MarginOfSafety       float64
	ProjectionYears      int
	FallbackDiscountRate float64
}

// AssumptionsFromConfig maps the [valuation] config section.
func AssumptionsFromConfig(cfg common.ValuationConfig) Assumptions {
	return Assumptions{
		RiskFreeRate:         cfg.RiskFreeRate,
		EquityRiskPremium:    cfg.EquityRiskPremium,
		TerminalGrowthRate:   cfg.TerminalGrowthRate,
		MarginOfSafety:       cfg.MarginOfSafety,
		ProjectionYears:      cfg.ProjectionYears,
		FallbackDiscountRate: cfg.FallbackDiscountRate,
	}
}

// DefaultAssumptions returns the built-in defaults.
func DefaultAssumptions() Assumptions {
	return AssumptionsFromConfig(common.NewDefaultConfig().Valuation)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ClampProjectionYears bounds years to [1, 10]; zero selects def.
func ClampProjectionYears(years, def int) int {
	if years == 0 {
		years = def
	}
	if years < 1 {
		return 1
	}
	if years > MaxProjectionYears {
		return MaxProjectionYears
	}
	return years
}

// ClampTerminalGrowth bounds the terminal growth rate to [0, 5].
func ClampTerminalGrowth(rate float64) float64 {
	return clamp(rate, 0, MaxTerminalGrowthRate)
}

// ClampMarginOfSafety bounds the margin of safety to [0, 50].
func ClampMarginOfSafety(mos float64) float64 {
	return clamp(mos, 0, MaxMarginOfSafety)
}
