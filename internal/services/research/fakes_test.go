package research

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bobmcallan/vantage/internal/clients/fmp"
	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/models"
	"github.com/bobmcallan/vantage/internal/services/valuation"
)

// fakeFMP serves canned data. errs is keyed by method name.
type fakeFMP struct {
	mu     sync.Mutex
	calls  map[string]int
	limits map[string]int

	quotes    map[string]*models.Quote
	profile   *models.CompanyProfile
	income    []models.IncomeStatement
	balance   []models.BalanceSheet
	cashFlows []models.CashFlowStatement
	ratios    []models.FinancialRatios
	metrics   []models.KeyMetrics
	errs      map[string]error
}

func newFakeFMP() *fakeFMP {
	return &fakeFMP{
		calls:  make(map[string]int),
		limits: make(map[string]int),
		errs:   make(map[string]error),
		quotes: map[string]*models.Quote{
			"AAPL": {Symbol: "AAPL", Price: 190.5},
			"MSFT": {Symbol: "MSFT", Price: 410.25},
		},
		profile: &models.CompanyProfile{
			Symbol:      "ACME",
			CompanyName: "Acme Corp",
			Price:       20,
			MarketCap:   800,
			Beta:        1.5,
			Sector:      "Industrials",
			Industry:    "Machinery",
		},
		income: []models.IncomeStatement{{
			Date:                     "2025-12-31",
			FiscalYear:               "2025",
			Revenue:                  1000,
			NetIncome:                79,
			IncomeBeforeTax:          100,
			IncomeTaxExpense:         21,
			InterestExpense:          10,
			WeightedAverageShsOutDil: 50,
		}},
		balance: []models.BalanceSheet{{
			Date:                   "2025-12-31",
			FiscalYear:             "2025",
			TotalDebt:              200,
			CashAndCashEquivalents: 50,
		}},
		cashFlows: []models.CashFlowStatement{
			{Date: "2025-12-31", FiscalYear: "2025", FreeCashFlow: 121},
			{Date: "2024-12-31", FiscalYear: "2024", FreeCashFlow: 110},
			{Date: "2023-12-31", FiscalYear: "2023", FreeCashFlow: 100},
		},
		ratios: []models.FinancialRatios{{FiscalYear: "2025", NetProfitMargin: 0.079}},
		metrics: []models.KeyMetrics{{
			FiscalYear:        "2025",
			Beta:              1.2,
			MarketCap:         800,
			StockPrice:        20,
			SharesOutstanding: 40,
		}},
	}
}

func (f *fakeFMP) record(method string, limit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	f.limits[method] = limit
	return f.errs[method]
}

func (f *fakeFMP) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeFMP) lastLimit(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.limits[method]
}

func (f *fakeFMP) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	if err := f.record("quote", 0); err != nil {
		return nil, err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, fmp.ErrNoData
	}
	return q, nil
}

func (f *fakeFMP) SearchSymbols(_ context.Context, query string, limit int) ([]models.SymbolMatch, error) {
	if err := f.record("search", limit); err != nil {
		return nil, err
	}
	return []models.SymbolMatch{{Symbol: "AAPL", Name: "Apple Inc."}}, nil
}

func (f *fakeFMP) GetProfile(context.Context, string) (*models.CompanyProfile, error) {
	if err := f.record("profile", 0); err != nil {
		return nil, err
	}
	return f.profile, nil
}

func (f *fakeFMP) GetIncomeStatements(_ context.Context, _, _ string, limit int) ([]models.IncomeStatement, error) {
	if err := f.record("income", limit); err != nil {
		return nil, err
	}
	return f.income, nil
}

func (f *fakeFMP) GetBalanceSheets(_ context.Context, _, _ string, limit int) ([]models.BalanceSheet, error) {
	if err := f.record("balance", limit); err != nil {
		return nil, err
	}
	return f.balance, nil
}

func (f *fakeFMP) GetCashFlowStatements(_ context.Context, _, _ string, limit int) ([]models.CashFlowStatement, error) {
	if err := f.record("cashflow", limit); err != nil {
		return nil, err
	}
	return f.cashFlows, nil
}

func (f *fakeFMP) GetRatios(_ context.Context, _, _ string, limit int) ([]models.FinancialRatios, error) {
	if err := f.record("ratios", limit); err != nil {
		return nil, err
	}
	return f.ratios, nil
}

func (f *fakeFMP) GetKeyMetrics(_ context.Context, _, _ string, limit int) ([]models.KeyMetrics, error) {
	if err := f.record("metrics", limit); err != nil {
		return nil, err
	}
	return f.metrics, nil
}

type fakeStore struct {
	mu      sync.Mutex
	records []*models.ValuationRecord
	saveErr error
}

func (s *fakeStore) Save(_ context.Context, r *models.ValuationRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = "val_test"
	}
	s.records = append(s.records, r)
	return nil
}

func (s *fakeStore) Get(_ context.Context, id string) (*models.ValuationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListBySymbol(_ context.Context, symbol string, limit int) ([]*models.ValuationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.ValuationRecord
	for _, r := range s.records {
		if r.Symbol == symbol && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteBySymbol(_ context.Context, symbol string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	deleted := 0
	for _, r := range s.records {
		if r.Symbol == symbol {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

func (s *fakeStore) Close() error { return nil }

type fakeGemini struct {
	prompt string
	err    error
}

func (g *fakeGemini) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return "Acme looks cheap.", nil
}

func (g *fakeGemini) Model() string { return "gemini-test" }

var errUpstream = errors.New("upstream down")

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(f *fakeFMP, store *fakeStore, gemini *fakeGemini) *Service {
	svc := NewService(f, nil, nil, valuation.DefaultAssumptions(), common.NewSilentLogger())
	if store != nil {
		svc.store = store
	}
	if gemini != nil {
		svc.gemini = gemini
	}
	svc.now = func() time.Time { return fixedNow }
	return svc
}
