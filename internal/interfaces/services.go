// Package interfaces defines service contracts for Vantage
package interfaces

import (
	"context"

	"github.com/bobmcallan/vantage/internal/models"
)

// ResearchService retrieves company data and runs valuations
type ResearchService interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) []models.QuoteResult
	SearchSymbols(ctx context.Context, query string, limit int) ([]models.SymbolMatch, error)

	GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
	GetIncomeStatements(ctx context.Context, symbol string, q StatementQuery) ([]models.IncomeStatement, error)
	GetBalanceSheets(ctx context.Context, symbol string, q StatementQuery) ([]models.BalanceSheet, error)
	GetCashFlowStatements(ctx context.Context, symbol string, q StatementQuery) ([]models.CashFlowStatement, error)
	GetRatios(ctx context.Context, symbol string, q StatementQuery) ([]models.FinancialRatios, error)
	GetKeyMetrics(ctx context.Context, symbol string, q StatementQuery) ([]models.KeyMetrics, error)

	// ComprehensiveAnalysis fetches profile and statements for the given number of years
	ComprehensiveAnalysis(ctx context.Context, symbol string, years int) (*models.ComprehensiveAnalysis, error)

	// CalculateWACC derives the weighted average cost of capital
	CalculateWACC(ctx context.Context, symbol string, opts models.WACCOptions) (*models.WACCResult, error)

	// PerformDCF runs a discounted cash flow valuation and records it in history
	PerformDCF(ctx context.Context, symbol string, opts models.DCFOptions) (*models.DCFResult, error)

	// SensitivityAnalysis computes intrinsic value over discount rate and terminal growth ranges
	SensitivityAnalysis(ctx context.Context, symbol string, opts models.SensitivityOptions) (*models.SensitivityResult, error)

	// ResearchNote writes a narrative summary of analysis and valuation
	ResearchNote(ctx context.Context, symbol string) (*models.ResearchNote, error)

	ValuationHistory(ctx context.Context, symbol string, limit int) ([]*models.ValuationRecord, error)
	GetValuation(ctx context.Context, id string) (*models.ValuationRecord, error)
	ClearValuationHistory(ctx context.Context, symbol string) (int, error)
}

// StatementQuery selects the reporting period and number of periods
type StatementQuery struct {
	Period string // "annual" (default) or "quarter"
	Limit  int    // default 5, clamped to [1, 100]
}

// WebService runs web and news searches
type WebService interface {
	Search(ctx context.Context, query string, maxResults int) (*models.WebSearchResponse, error)
	SearchNews(ctx context.Context, query string, maxResults int) (*models.WebSearchResponse, error)
}
