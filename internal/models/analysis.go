package models

import "time"

// AnalysisSummary is the headline block of a comprehensive analysis.
type AnalysisSummary struct {
	CompanyName      string  `json:"company_name"`
	Sector           string  `json:"sector"`
	Industry         string  `json:"industry"`
	Price            float64 `json:"price"`
	MarketCap        float64 `json:"market_cap"`
	YearsAnalyzed    int     `json:"years_analyzed"`
	LatestFiscalYear string  `json:"latest_fiscal_year,omitempty"`
}

// ComprehensiveAnalysis bundles the profile and multi-year financial statements of a company.
type ComprehensiveAnalysis struct {
	Symbol           string              `json:"symbol"`
	Summary          AnalysisSummary     `json:"summary"`
	Profile          *CompanyProfile     `json:"profile,omitempty"`
	IncomeStatements []IncomeStatement   `json:"income_statements"`
	BalanceSheets    []BalanceSheet      `json:"balance_sheets"`
	CashFlows        []CashFlowStatement `json:"cash_flows"`
	Ratios           []FinancialRatios   `json:"ratios"`
	KeyMetrics       []KeyMetrics        `json:"key_metrics"`
	Failures         []string            `json:"failures,omitempty"`
	GeneratedAt      time.Time           `json:"generated_at"`
}

// ResearchNote is a narrative summary generated from analysis and valuation data.
type ResearchNote struct {
	Symbol      string    `json:"symbol"`
	Model       string    `json:"model"`
	Note        string    `json:"note"`
	GeneratedAt time.Time `json:"generated_at"`
}
