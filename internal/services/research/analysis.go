package research

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/vantage/internal/models"
)

// ComprehensiveAnalysis fetches the profile and the last `years` annual
// statements concurrently. Missing profile or statements fail the call with a
// PartialDataError; ratios and key metrics are optional.
func (s *Service) ComprehensiveAnalysis(ctx context.Context, symbol string, years int) (*models.ComprehensiveAnalysis, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	years = clampInt(years, DefaultAnalysisYears, MaxAnalysisYears)

	analysis := &models.ComprehensiveAnalysis{Symbol: sym}
	var profileErr, incomeErr, balanceErr, cashErr error

	// Goroutines report into their own variables and never fail the group,
	// so one failed dataset does not cancel the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis.Profile, profileErr = s.fmp.GetProfile(gctx, sym)
		return nil
	})
	g.Go(func() error {
		analysis.IncomeStatements, incomeErr = s.fmp.GetIncomeStatements(gctx, sym, models.PeriodAnnual, years)
		return nil
	})
	g.Go(func() error {
		analysis.BalanceSheets, balanceErr = s.fmp.GetBalanceSheets(gctx, sym, models.PeriodAnnual, years)
		return nil
	})
	g.Go(func() error {
		analysis.CashFlows, cashErr = s.fmp.GetCashFlowStatements(gctx, sym, models.PeriodAnnual, years)
		return nil
	})
	g.Go(func() error {
		ratios, err := s.fmp.GetRatios(gctx, sym, models.PeriodAnnual, years)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", sym).Msg("Ratios unavailable")
			return nil
		}
		analysis.Ratios = ratios
		return nil
	})
	g.Go(func() error {
		metrics, err := s.fmp.GetKeyMetrics(gctx, sym, models.PeriodAnnual, years)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", sym).Msg("Key metrics unavailable")
			return nil
		}
		analysis.KeyMetrics = metrics
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var failures []string
	addFailure := func(label string, err error) {
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", label, err))
		}
	}
	addFailure("Profile", profileErr)
	addFailure("Income Statement", incomeErr)
	addFailure("Balance Sheet", balanceErr)
	addFailure("Cash Flow", cashErr)
	if len(failures) > 0 {
		s.logger.Warn().Str("symbol", sym).Strs("failures", failures).Msg("Comprehensive analysis incomplete")
		return nil, &PartialDataError{Symbol: sym, Failures: failures}
	}

	if analysis.Ratios == nil {
		analysis.Ratios = []models.FinancialRatios{}
	}
	if analysis.KeyMetrics == nil {
		analysis.KeyMetrics = []models.KeyMetrics{}
	}

	p := analysis.Profile
	analysis.Summary = models.AnalysisSummary{
		CompanyName:   p.CompanyName,
		Sector:        p.Sector,
		Industry:      p.Industry,
		Price:         p.Price,
		MarketCap:     p.MarketCap,
		YearsAnalyzed: years,
	}
	if len(analysis.IncomeStatements) > 0 {
		analysis.Summary.LatestFiscalYear = analysis.IncomeStatements[0].FiscalYear
	}
	analysis.GeneratedAt = s.now().UTC()

	return analysis, nil
}
