// Package research retrieves company data from FMP and runs valuations over it
package research

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

const (
	DefaultStatementLimit = 5
	MaxStatementLimit     = 100
	DefaultAnalysisYears  = 3
	MaxAnalysisYears      = 10
	DefaultHistoryLimit   = 20
	MaxHistoryLimit       = 100
	DefaultSearchLimit    = 10
	MaxSearchLimit        = 50

	quoteConcurrency = 4
)

var (
	// ErrInvalidSymbol is returned for empty or malformed ticker symbols.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrNotConfigured is returned when an optional backend (history store, Gemini) is absent.
	ErrNotConfigured = errors.New("feature not configured")

	// ErrNotFound is returned when a stored record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientData is returned when too few cash flow periods exist for a DCF.
	ErrInsufficientData = errors.New("insufficient historical cash flow data")
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-^=]{0,14}$`)

// PartialDataError lists the required datasets that could not be retrieved.
type PartialDataError struct {
	Symbol   string
	Failures []string
}

func (e *PartialDataError) Error() string {
	return fmt.Sprintf("failed to retrieve some financial data for %s: %s", e.Symbol, strings.Join(e.Failures, "; "))
}

// Service implements ResearchService over an FMP client.
type Service struct {
	fmp         interfaces.FMPClient
	store       interfaces.ValuationStore
	gemini      interfaces.GeminiClient
	assumptions valuation.Assumptions
	logger      *common.Logger
	now         func() time.Time
}

var _ interfaces.ResearchService = (*Service)(nil)

// NewService creates a research service. store and gemini may be nil;
// history and research notes then return ErrNotConfigured.
func NewService(fmp interfaces.FMPClient, store interfaces.ValuationStore, gemini interfaces.GeminiClient, assumptions valuation.Assumptions, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		fmp:         fmp,
		store:       store,
		gemini:      gemini,
		assumptions: assumptions,
		logger:      logger,
		now:         time.Now,
	}
}

// NormalizeSymbol trims and upper-cases a ticker, rejecting malformed input.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	return s, nil
}

type rateOverride struct {
	field string
	value *float64
}

// checkOverrides rejects caller-supplied rates that are NaN or infinite.
func checkOverrides(overrides ...rateOverride) error {
	for _, o := range overrides {
		if o.value == nil {
			continue
		}
		if err := valuation.RequireFinite(o.field, *o.value); err != nil {
			return err
		}
	}
	return nil
}

// ParseSymbols splits a comma-separated list, dropping blanks.
func ParseSymbols(list string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeQuery(q interfaces.StatementQuery) (interfaces.StatementQuery, error) {
	period := strings.ToLower(strings.TrimSpace(q.Period))
	switch period {
	case "":
		period = models.PeriodAnnual
	case models.PeriodAnnual, models.PeriodQuarter:
	default:
		return q, &valuation.InputError{Field: "period", Message: `must be "annual" or "quarter"`}
	}

	limit := q.Limit
	switch {
	case limit <= 0:
		limit = DefaultStatementLimit
	case limit > MaxStatementLimit:
		limit = MaxStatementLimit
	}
	return interfaces.StatementQuery{Period: period, Limit: limit}, nil
}

func clampInt(v, def, max int) int {
	if v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// GetQuote retrieves a real-time quote
func (s *Service) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return s.fmp.GetQuote(ctx, sym)
}

// GetQuotes fetches quotes concurrently. Results keep request order and
// carry a per-symbol error instead of failing the batch.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) []models.QuoteResult {
	results := make([]models.QuoteResult, len(symbols))

	var g errgroup.Group
	g.SetLimit(quoteConcurrency)
	for i, raw := range symbols {
		g.Go(func() error {
			sym, err := NormalizeSymbol(raw)
			if err != nil {
				results[i] = models.QuoteResult{Symbol: strings.TrimSpace(raw), Error: err.Error()}
				return nil
			}
			q, err := s.fmp.GetQuote(ctx, sym)
			if err != nil {
				s.logger.Debug().Err(err).Str("symbol", sym).Msg("Quote failed")
				results[i] = models.QuoteResult{Symbol: sym, Error: err.Error()}
				return nil
			}
			results[i] = models.QuoteResult{Symbol: sym, Quote: q}
			return nil
		})
	}
	g.Wait()

	return results
}

// SearchSymbols finds tickers by company name or symbol fragment
func (s *Service) SearchSymbols(ctx context.Context, query string, limit int) ([]models.SymbolMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &valuation.InputError{Field: "query", Message: "is required"}
	}
	return s.fmp.SearchSymbols(ctx, query, clampInt(limit, DefaultSearchLimit, MaxSearchLimit))
}

// GetProfile retrieves the company profile
func (s *Service) GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return s.fmp.GetProfile(ctx, sym)
}

// GetIncomeStatements retrieves income statements
func (s *Service) GetIncomeStatements(ctx context.Context, symbol string, q interfaces.StatementQuery) ([]models.IncomeStatement, error) {
	sym, q, err := s.statementArgs(symbol, q)
	if err != nil {
		return nil, err
	}
	return s.fmp.GetIncomeStatements(ctx, sym, q.Period, q.Limit)
}

// GetBalanceSheets retrieves balance sheets
func (s *Service) GetBalanceSheets(ctx context.Context, symbol string, q interfaces.StatementQuery) ([]models.BalanceSheet, error) {
	sym, q, err := s.statementArgs(symbol, q)
	if err != nil {
		return nil, err
	}
	return s.fmp.GetBalanceSheets(ctx, sym, q.Period, q.Limit)
}

// GetCashFlowStatements retrieves cash flow statements
func (s *Service) GetCashFlowStatements(ctx context.Context, symbol string, q interfaces.StatementQuery) ([]models.CashFlowStatement, error) {
	sym, q, err := s.statementArgs(symbol, q)
	if err != nil {
		return nil, err
	}
	return s.fmp.GetCashFlowStatements(ctx, sym, q.Period, q.Limit)
}

// GetRatios retrieves financial ratios
func (s *Service) GetRatios(ctx context.Context, symbol string, q interfaces.StatementQuery) ([]models.FinancialRatios, error) {
	sym, q, err := s.statementArgs(symbol, q)
	if err != nil {
		return nil, err
	}
	return s.fmp.GetRatios(ctx, sym, q.Period, q.Limit)
}

// GetKeyMetrics retrieves key metrics
func (s *Service) GetKeyMetrics(ctx context.Context, symbol string, q interfaces.StatementQuery) ([]models.KeyMetrics, error) {
	sym, q, err := s.statementArgs(symbol, q)
	if err != nil {
		return nil, err
	}
	return s.fmp.GetKeyMetrics(ctx, sym, q.Period, q.Limit)
}

func (s *Service) statementArgs(symbol string, q interfaces.StatementQuery) (string, interfaces.StatementQuery, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return "", q, err
	}
	q, err = normalizeQuery(q)
	return sym, q, err
}
