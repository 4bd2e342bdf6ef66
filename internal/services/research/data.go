package research

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/vantage/internal/clients/fmp"
	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

// valuationData is everything a WACC or DCF run reads from FMP. Each dataset
// carries its own error so callers decide what is required.
type valuationData struct {
	cashFlows    []models.CashFlowStatement
	cashFlowsErr error
	balance      *models.BalanceSheet
	balanceErr   error
	income       *models.IncomeStatement
	incomeErr    error
	metrics      *models.KeyMetrics
	metricsErr   error
	profile      *models.CompanyProfile
	profileErr   error
}

// loadValuationData fetches the latest annual statements concurrently.
// Cash flow history is only requested when withCashFlows is set.
func (s *Service) loadValuationData(ctx context.Context, sym string, withCashFlows bool) (*valuationData, error) {
	d := &valuationData{}

	g, gctx := errgroup.WithContext(ctx)
	if withCashFlows {
		g.Go(func() error {
			d.cashFlows, d.cashFlowsErr = s.fmp.GetCashFlowStatements(gctx, sym, models.PeriodAnnual, valuation.HistoricalCashFlowPeriod)
			return nil
		})
	}
	g.Go(func() error {
		sheets, err := s.fmp.GetBalanceSheets(gctx, sym, models.PeriodAnnual, 1)
		d.balance, d.balanceErr = first(sheets, err)
		return nil
	})
	g.Go(func() error {
		statements, err := s.fmp.GetIncomeStatements(gctx, sym, models.PeriodAnnual, 1)
		d.income, d.incomeErr = first(statements, err)
		return nil
	})
	g.Go(func() error {
		metrics, err := s.fmp.GetKeyMetrics(gctx, sym, models.PeriodAnnual, 1)
		d.metrics, d.metricsErr = first(metrics, err)
		return nil
	})
	g.Go(func() error {
		d.profile, d.profileErr = s.fmp.GetProfile(gctx, sym)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func first[T any](items []T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmp.ErrNoData
	}
	return &items[0], nil
}

// beta prefers key metrics over the profile. Zero means unknown.
func (d *valuationData) beta() float64 {
	if d.metrics != nil && d.metrics.Beta != 0 {
		return d.metrics.Beta
	}
	if d.profile != nil {
		return d.profile.Beta
	}
	return 0
}

func (d *valuationData) marketCap() float64 {
	if d.metrics != nil && d.metrics.MarketCap > 0 {
		return d.metrics.MarketCap
	}
	if d.profile != nil {
		return d.profile.MarketCap
	}
	return 0
}

// price prefers the key-metrics stock price, then the profile price.
func (d *valuationData) price() float64 {
	if d.metrics != nil && d.metrics.StockPrice > 0 {
		return d.metrics.StockPrice
	}
	if d.profile != nil {
		return d.profile.Price
	}
	return 0
}

// Shares sources reported in the DCF breakdown.
const (
	SharesSourceKeyMetrics = "key_metrics"
	SharesSourceProfile    = "profile_market_cap"
	SharesSourceIncome     = "income_statement_diluted"
	SharesSourceUnknown    = "unavailable"
)

// shares resolves shares outstanding: key metrics, then profile market cap
// over price, then diluted weighted average shares.
func (d *valuationData) shares() (float64, string) {
	if d.metrics != nil && d.metrics.SharesOutstanding > 0 {
		return d.metrics.SharesOutstanding, SharesSourceKeyMetrics
	}
	if d.profile != nil {
		if n := d.profile.SharesFromMarketCap(); n > 0 {
			return n, SharesSourceProfile
		}
	}
	if d.income != nil && d.income.WeightedAverageShsOutDil > 0 {
		return d.income.WeightedAverageShsOutDil, SharesSourceIncome
	}
	return 0, SharesSourceUnknown
}

func (d *valuationData) companyName() string {
	if d.profile != nil {
		return d.profile.CompanyName
	}
	return ""
}
