package research

import (
	"context"
	"fmt"

	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

// SensitivityAnalysis computes intrinsic value per share across discount rate
// and terminal growth ranges. Statements are fetched once for the whole grid.
func (s *Service) SensitivityAnalysis(ctx context.Context, symbol string, opts models.SensitivityOptions) (*models.SensitivityResult, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	terminalRates := opts.TerminalGrowthRates
	if len(terminalRates) == 0 {
		terminalRates = valuation.DefaultTerminalGrowthRange
	}
	discountRates := opts.DiscountRates
	if len(discountRates) == 0 {
		discountRates = valuation.DefaultDiscountRateRange
	}
	if err := checkRange("terminal_growth_range", terminalRates); err != nil {
		return nil, err
	}
	if err := checkRange("discount_rate_range", discountRates); err != nil {
		return nil, err
	}
	if err := checkOverrides(rateOverride{"fcf_growth_rate", opts.FCFGrowthRate}); err != nil {
		return nil, err
	}

	d, err := s.loadValuationData(ctx, sym, true)
	if err != nil {
		return nil, err
	}
	if err := requireDCFData(d); err != nil {
		return nil, err
	}

	a := models.DCFAssumptions{
		ProjectionYears: valuation.ClampProjectionYears(opts.ProjectionYears, s.assumptions.ProjectionYears),
	}
	a.FCFGrowthRate, _ = growthRate(d, opts.FCFGrowthRate)

	matrix := valuation.SensitivityGrid(s.dcfInputs(d, a), discountRates, terminalRates)

	return &models.SensitivityResult{
		Symbol:              sym,
		CurrentPrice:        valuation.Round(d.price(), 2),
		FCFGrowthRate:       valuation.Round(a.FCFGrowthRate, 2),
		ProjectionYears:     a.ProjectionYears,
		TerminalGrowthRates: terminalRates,
		DiscountRates:       discountRates,
		Matrix:              matrix,
		BaseCase:            valuation.BaseCase(matrix, discountRates, terminalRates),
	}, nil
}

// checkRange bounds a sensitivity axis and rejects non-finite entries.
func checkRange(field string, rates []float64) error {
	if len(rates) > valuation.MaxSensitivityRange {
		return &valuation.InputError{
			Field:   field,
			Message: fmt.Sprintf("at most %d values allowed, got %d", valuation.MaxSensitivityRange, len(rates)),
		}
	}
	return valuation.RequireFinite(field, rates...)
}
