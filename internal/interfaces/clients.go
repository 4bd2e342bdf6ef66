// Package interfaces defines service contracts for Vantage
package interfaces

import (
	"context"

	"github.com/bobmcallan/vantage/internal/models"
)

// FMPClient provides access to the Financial Modeling Prep API
type FMPClient interface {
	// GetQuote retrieves a real-time quote
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// SearchSymbols finds symbols and company names matching a query
	SearchSymbols(ctx context.Context, query string, limit int) ([]models.SymbolMatch, error)

	// GetProfile retrieves the company profile
	GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)

	// Financial statements, newest period first
	GetIncomeStatements(ctx context.Context, symbol, period string, limit int) ([]models.IncomeStatement, error)
	GetBalanceSheets(ctx context.Context, symbol, period string, limit int) ([]models.BalanceSheet, error)
	GetCashFlowStatements(ctx context.Context, symbol, period string, limit int) ([]models.CashFlowStatement, error)

	// GetRatios retrieves financial ratios
	GetRatios(ctx context.Context, symbol, period string, limit int) ([]models.FinancialRatios, error)

	// GetKeyMetrics retrieves key per-share and valuation metrics
	GetKeyMetrics(ctx context.Context, symbol, period string, limit int) ([]models.KeyMetrics, error)
}

// GeminiClient generates narrative text
type GeminiClient interface {
	// GenerateContent sends a prompt and returns the generated text
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// Model returns the model name used for generation
	Model() string
}

// WebSearchClient searches the public web
type WebSearchClient interface {
	// Search returns general web results
	Search(ctx context.Context, query string, maxResults int) ([]models.WebResult, error)

	// SearchNews returns results from the past week
	SearchNews(ctx context.Context, query string, maxResults int) ([]models.WebResult, error)
}
