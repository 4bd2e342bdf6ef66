package research

import (
	"context"
	"fmt"

	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

// FCF growth sources reported in DCF assumptions.
const (
	GrowthSourceUser       = "user"
	GrowthSourceHistorical = "historical_cagr"
)

// PerformDCF runs a discounted cash flow valuation and records it in the
// history store when one is configured and opts.SkipHistory is unset. A failed
// save is logged, not returned.
func (s *Service) PerformDCF(ctx context.Context, symbol string, opts models.DCFOptions) (*models.DCFResult, error) {
	result, err := s.runDCF(ctx, symbol, opts)
	if err != nil {
		return nil, err
	}

	if s.store != nil && !opts.SkipHistory {
		record := models.NewValuationRecord(result)
		if err := s.store.Save(ctx, record); err != nil {
			s.logger.Warn().Err(err).Str("symbol", result.Symbol).Msg("Failed to save valuation")
		} else {
			result.ValuationID = record.ID
		}
	}

	return result, nil
}

func (s *Service) runDCF(ctx context.Context, symbol string, opts models.DCFOptions) (*models.DCFResult, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := checkOverrides(
		rateOverride{"fcf_growth_rate", opts.FCFGrowthRate},
		rateOverride{"terminal_growth_rate", opts.TerminalGrowthRate},
		rateOverride{"discount_rate", opts.DiscountRate},
		rateOverride{"margin_of_safety", opts.MarginOfSafety},
	); err != nil {
		return nil, err
	}

	d, err := s.loadValuationData(ctx, sym, true)
	if err != nil {
		return nil, err
	}
	if err := requireDCFData(d); err != nil {
		return nil, err
	}

	assumptions := models.DCFAssumptions{
		ProjectionYears:    valuation.ClampProjectionYears(opts.ProjectionYears, s.assumptions.ProjectionYears),
		TerminalGrowthRate: valuation.ClampTerminalGrowth(valueOr(opts.TerminalGrowthRate, s.assumptions.TerminalGrowthRate)),
		MarginOfSafety:     valuation.ClampMarginOfSafety(valueOr(opts.MarginOfSafety, s.assumptions.MarginOfSafety)),
	}
	assumptions.FCFGrowthRate, assumptions.FCFGrowthSource = growthRate(d, opts.FCFGrowthRate)
	assumptions.DiscountRate, assumptions.DiscountRateSource = s.discountRate(sym, d, opts.DiscountRate)

	in := s.dcfInputs(d, assumptions)
	out, err := valuation.ProjectDCF(in)
	if err != nil {
		return nil, err
	}

	price := d.price()
	intrinsic := out.IntrinsicValuePerShare
	target := valuation.TargetPrice(intrinsic, assumptions.MarginOfSafety)
	_, sharesSource := d.shares()

	result := &models.DCFResult{
		Symbol:       sym,
		CompanyName:  d.companyName(),
		AnalysisDate: d.cashFlows[0].Date,
		Valuation: models.DCFValuation{
			EnterpriseValue:        valuation.Round(out.EnterpriseValue, 2),
			EquityValue:            valuation.Round(out.EquityValue, 2),
			IntrinsicValuePerShare: valuation.Round(intrinsic, 2),
			CurrentPrice:           valuation.Round(price, 2),
			TargetPrice:            valuation.Round(target, 2),
			UpsidePercent:          valuation.Round(valuation.UpsidePercent(intrinsic, price), 2),
		},
		Recommendation: valuation.Recommend(price, intrinsic, target),
		Assumptions: models.DCFAssumptions{
			ProjectionYears:    assumptions.ProjectionYears,
			FCFGrowthRate:      valuation.Round(assumptions.FCFGrowthRate, 2),
			FCFGrowthSource:    assumptions.FCFGrowthSource,
			TerminalGrowthRate: valuation.Round(assumptions.TerminalGrowthRate, 2),
			DiscountRate:       valuation.Round(assumptions.DiscountRate, 2),
			DiscountRateSource: assumptions.DiscountRateSource,
			MarginOfSafety:     valuation.Round(assumptions.MarginOfSafety, 2),
		},
		Breakdown: models.DCFBreakdown{
			BaseFreeCashFlow:   in.BaseFCF,
			SumPVCashFlows:     valuation.Round(out.SumPVCashFlows, 2),
			TerminalValue:      valuation.Round(out.TerminalValue, 2),
			PVTerminalValue:    valuation.Round(out.PVTerminalValue, 2),
			TotalDebt:          in.TotalDebt,
			CashAndEquivalents: in.Cash,
			SharesOutstanding:  in.SharesOutstanding,
			SharesSource:       sharesSource,
		},
		Projections:  roundProjections(out.Projections),
		CalculatedAt: s.now().UTC(),
	}
	if out.EnterpriseValue != 0 {
		result.Breakdown.TerminalValueWeight = valuation.Round(out.PVTerminalValue/out.EnterpriseValue*100, 2)
	}

	s.logger.Info().
		Str("symbol", sym).
		Float64("intrinsic_value", result.Valuation.IntrinsicValuePerShare).
		Float64("current_price", result.Valuation.CurrentPrice).
		Str("discount_source", assumptions.DiscountRateSource).
		Msg("DCF valuation complete")

	return result, nil
}

// requireDCFData checks the datasets a DCF cannot run without.
func requireDCFData(d *valuationData) error {
	if d.cashFlowsErr != nil {
		return fmt.Errorf("failed to get cash flow statements: %w", d.cashFlowsErr)
	}
	if len(d.cashFlows) < valuation.MinHistoricalCashFlows {
		return ErrInsufficientData
	}
	if d.balanceErr != nil {
		return fmt.Errorf("failed to get balance sheet: %w", d.balanceErr)
	}
	return nil
}

// dcfInputs builds projection inputs from the latest statements and resolved assumptions.
func (s *Service) dcfInputs(d *valuationData, a models.DCFAssumptions) valuation.DCFInputs {
	shares, _ := d.shares()
	return valuation.DCFInputs{
		BaseFCF:            d.cashFlows[0].FreeCashFlow,
		GrowthRate:         a.FCFGrowthRate,
		DiscountRate:       a.DiscountRate,
		TerminalGrowthRate: a.TerminalGrowthRate,
		Years:              a.ProjectionYears,
		TotalDebt:          d.balance.TotalDebt,
		Cash:               d.balance.CashAndCashEquivalents,
		SharesOutstanding:  shares,
	}
}

func growthRate(d *valuationData, override *float64) (float64, string) {
	if override != nil {
		return *override, GrowthSourceUser
	}
	fcfs := make([]float64, len(d.cashFlows))
	for i, cf := range d.cashFlows {
		fcfs[i] = cf.FreeCashFlow
	}
	return valuation.HistoricalGrowthRate(fcfs), GrowthSourceHistorical
}

// discountRate uses the override, then the rounded WACC, then the configured fallback.
func (s *Service) discountRate(sym string, d *valuationData, override *float64) (float64, string) {
	if override != nil {
		return *override, models.DiscountSourceUser
	}
	wacc, err := s.waccFromData(sym, d, models.WACCOptions{})
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", sym).
			Float64("fallback", s.assumptions.FallbackDiscountRate).
			Msg("WACC unavailable, using fallback discount rate")
		return s.assumptions.FallbackDiscountRate, models.DiscountSourceFallback
	}
	return wacc.WACC, models.DiscountSourceWACC
}

func roundProjections(in []models.ProjectedCashFlow) []models.ProjectedCashFlow {
	out := make([]models.ProjectedCashFlow, len(in))
	for i, p := range in {
		out[i] = models.ProjectedCashFlow{
			Year:           p.Year,
			FreeCashFlow:   valuation.Round(p.FreeCashFlow, 2),
			DiscountFactor: valuation.Round(p.DiscountFactor, 4),
			PresentValue:   valuation.Round(p.PresentValue, 2),
		}
	}
	return out
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
