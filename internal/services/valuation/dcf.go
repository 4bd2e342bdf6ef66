package valuation

import (
	"math"

	"github.com/bobmcallan/vantage/internal/models"
)

// HistoricalGrowthRate computes the FCF CAGR from statements ordered newest
// first, clamped to [-10, 30]. It returns the 5% default when fewer than two
// periods exist or the endpoints do not give a real-valued growth rate.
func HistoricalGrowthRate(fcfNewestFirst []float64) float64 {
	n := len(fcfNewestFirst)
	if n < MinHistoricalCashFlows {
		return DefaultFCFGrowthRate
	}

	oldest := fcfNewestFirst[n-1]
	newest := fcfNewestFirst[0]
	if oldest <= 0 || newest/oldest <= 0 {
		return DefaultFCFGrowthRate
	}

	years := float64(n - 1)
	cagr := (math.Pow(newest/oldest, 1/years) - 1) * 100
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return DefaultFCFGrowthRate
	}
	return clamp(cagr, MinFCFGrowthRate, MaxFCFGrowthRate)
}

// DCFInputs are the resolved inputs of one DCF run.
type DCFInputs struct {
	BaseFCF            float64
	GrowthRate         float64
	DiscountRate       float64
	TerminalGrowthRate float64
	Years              int
	TotalDebt          float64
	Cash               float64
	SharesOutstanding  float64
}

// DCFOutput is the arithmetic result of a DCF run.
type DCFOutput struct {
	Projections            []models.ProjectedCashFlow
	SumPVCashFlows         float64
	TerminalValue          float64
	PVTerminalValue        float64
	EnterpriseValue        float64
	EquityValue            float64
	IntrinsicValuePerShare float64
}

// ProjectDCF projects free cash flow, discounts it and adds a Gordon-growth
// terminal value. The discount rate must exceed the terminal growth rate.
func ProjectDCF(in DCFInputs) (*DCFOutput, error) {
	if in.Years < 1 {
		return nil, &InputError{Field: "projection_years", Message: "must be at least 1"}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"base_fcf", in.BaseFCF},
		{"fcf_growth_rate", in.GrowthRate},
		{"discount_rate", in.DiscountRate},
		{"terminal_growth_rate", in.TerminalGrowthRate},
		{"total_debt", in.TotalDebt},
		{"cash", in.Cash},
		{"shares_outstanding", in.SharesOutstanding},
	} {
		if err := RequireFinite(f.name, f.v); err != nil {
			return nil, err
		}
	}
	if in.DiscountRate <= in.TerminalGrowthRate {
		return nil, &InputError{
			Field:   "discount_rate",
			Message: "must exceed the terminal growth rate for a finite terminal value",
		}
	}
	if in.DiscountRate <= -100 {
		return nil, &InputError{Field: "discount_rate", Message: "must be greater than -100"}
	}

	r := in.DiscountRate / 100
	out := &DCFOutput{Projections: make([]models.ProjectedCashFlow, 0, in.Years)}

	fcf := in.BaseFCF
	for year := 1; year <= in.Years; year++ {
		fcf *= 1 + in.GrowthRate/100
		factor := 1 / math.Pow(1+r, float64(year))
		pv := fcf * factor
		out.Projections = append(out.Projections, models.ProjectedCashFlow{
			Year:           year,
			FreeCashFlow:   fcf,
			DiscountFactor: factor,
			PresentValue:   pv,
		})
		out.SumPVCashFlows += pv
	}

	terminalFCF := fcf * (1 + in.TerminalGrowthRate/100)
	out.TerminalValue = terminalFCF / ((in.DiscountRate - in.TerminalGrowthRate) / 100)
	out.PVTerminalValue = out.TerminalValue / math.Pow(1+r, float64(in.Years))

	out.EnterpriseValue = out.SumPVCashFlows + out.PVTerminalValue
	out.EquityValue = out.EnterpriseValue - in.TotalDebt + in.Cash
	if in.SharesOutstanding > 0 {
		out.IntrinsicValuePerShare = out.EquityValue / in.SharesOutstanding
	}

	if err := RequireFinite("valuation", out.EnterpriseValue, out.EquityValue, out.IntrinsicValuePerShare); err != nil {
		return nil, &InputError{Field: "valuation", Message: "inputs overflow to a non-finite value"}
	}

	return out, nil
}

// TargetPrice applies the margin of safety to an intrinsic value.
func TargetPrice(intrinsic, marginOfSafety float64) float64 {
	return intrinsic * (1 - marginOfSafety/100)
}

// UpsidePercent is the gap from price to intrinsic value, 0 without a price.
func UpsidePercent(intrinsic, price float64) float64 {
	if price == 0 {
		return 0
	}
	return (intrinsic - price) / price * 100
}

// Recommend classifies the current price against intrinsic and target prices.
func Recommend(price, intrinsic, target float64) string {
	switch {
	case price == 0:
		return RecNoPrice
	case price <= target:
		return RecStrongBuy
	case price < intrinsic:
		return RecBuy
	case price < intrinsic*HoldBandMultiplier:
		return RecHold
	default:
		return RecOvervalued
	}
}
