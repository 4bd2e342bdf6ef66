package research

import (
	"context"
	"fmt"

	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

// CalculateWACC derives the weighted average cost of capital from the latest
// annual balance sheet, income statement and key metrics.
func (s *Service) CalculateWACC(ctx context.Context, symbol string, opts models.WACCOptions) (*models.WACCResult, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := checkOverrides(
		rateOverride{"risk_free_rate", opts.RiskFreeRate},
		rateOverride{"equity_risk_premium", opts.EquityRiskPremium},
	); err != nil {
		return nil, err
	}

	d, err := s.loadValuationData(ctx, sym, false)
	if err != nil {
		return nil, err
	}

	result, err := s.waccFromData(sym, d, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("symbol", sym).
		Float64("wacc", result.WACC).
		Float64("beta", result.Beta).
		Msg("WACC calculated")

	return result, nil
}

// waccFromData requires the balance sheet, income statement and a market cap
// from key metrics or the profile.
func (s *Service) waccFromData(sym string, d *valuationData, opts models.WACCOptions) (*models.WACCResult, error) {
	if d.balanceErr != nil {
		return nil, fmt.Errorf("failed to get balance sheet: %w", d.balanceErr)
	}
	if d.incomeErr != nil {
		return nil, fmt.Errorf("failed to get income statement: %w", d.incomeErr)
	}
	if d.metrics == nil && d.profile == nil {
		return nil, fmt.Errorf("failed to get key metrics: %w", d.metricsErr)
	}

	rf := s.assumptions.RiskFreeRate
	if opts.RiskFreeRate != nil {
		rf = *opts.RiskFreeRate
	}
	erp := s.assumptions.EquityRiskPremium
	if opts.EquityRiskPremium != nil {
		erp = *opts.EquityRiskPremium
	}

	result := valuation.ComputeWACC(valuation.WACCInputs{
		Beta:              d.beta(),
		MarketCap:         d.marketCap(),
		TotalDebt:         d.balance.TotalDebt,
		InterestExpense:   d.income.InterestExpense,
		IncomeTaxExpense:  d.income.IncomeTaxExpense,
		IncomeBeforeTax:   d.income.IncomeBeforeTax,
		RiskFreeRate:      rf,
		EquityRiskPremium: erp,
	})
	result.Symbol = sym
	result.CalculatedAt = s.now().UTC()

	return &result, nil
}
