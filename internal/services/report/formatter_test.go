package report

import (
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/vantage/internal/models"
)

func sampleDCF() *models.DCFResult {
	return &models.DCFResult{
		Symbol:       "ACME",
		CompanyName:  "Acme Corp",
		AnalysisDate: "2025-12-31",
		Valuation: models.DCFValuation{
			EnterpriseValue:        2.4e9,
			EquityValue:            2.25e9,
			IntrinsicValuePerShare: 56.25,
			CurrentPrice:           40,
			TargetPrice:            45,
			UpsidePercent:          40.63,
		},
		Recommendation: "STRONG BUY - Trading below margin of safety",
		Assumptions: models.DCFAssumptions{
			ProjectionYears:    2,
			FCFGrowthRate:      10,
			FCFGrowthSource:    "historical_cagr",
			TerminalGrowthRate: 2.5,
			DiscountRate:       9.67,
			DiscountRateSource: "wacc",
			MarginOfSafety:     20,
		},
		Breakdown: models.DCFBreakdown{
			BaseFreeCashFlow:    1.21e8,
			SumPVCashFlows:      2.3e8,
			TerminalValue:       2.5e9,
			PVTerminalValue:     2.17e9,
			TotalDebt:           2e8,
			CashAndEquivalents:  5e7,
			SharesOutstanding:   4e7,
			SharesSource:        "key_metrics",
			TerminalValueWeight: 90.42,
		},
		Projections: []models.ProjectedCashFlow{
			{Year: 1, FreeCashFlow: 1.331e8, DiscountFactor: 0.9118, PresentValue: 1.2136e8},
			{Year: 2, FreeCashFlow: 1.4641e8, DiscountFactor: 0.8314, PresentValue: 1.2173e8},
		},
		ValuationID: "val_abc12345",
	}
}

func TestFormatDCF(t *testing.T) {
	out := FormatDCF(sampleDCF(), "/api/companies/ACME/dcf/chart")

	for _, want := range []string{
		"# DCF Valuation: Acme Corp (ACME)",
		"**Recommendation:** STRONG BUY - Trading below margin of safety",
		"**Valuation ID:** val_abc12345",
		"| Intrinsic Value / Share | $56.25 |",
		"| Target Price (20% MoS) | $45.00 |",
		"| Upside | +40.63% |",
		"| Discount Rate | 9.67% | wacc |",
		"| 1 | $133.10M | 0.9118 | $121.36M |",
		"![Projected FCF](/api/companies/ACME/dcf/chart)",
		"$2.17B (90.42% of EV)",
		"40.00M (key_metrics)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDCF output missing %q\n%s", want, out)
		}
	}
}

func TestFormatDCF_NoChart(t *testing.T) {
	r := sampleDCF()
	r.ValuationID = ""
	out := FormatDCF(r, "")
	if strings.Contains(out, "![") {
		t.Error("expected no chart image without a chart URL")
	}
	if strings.Contains(out, "Valuation ID") {
		t.Error("expected no valuation ID line")
	}
}

func TestFormatSensitivity(t *testing.T) {
	v1, v2 := 61.5, 48.25
	r := &models.SensitivityResult{
		Symbol:              "ACME",
		CurrentPrice:        40,
		FCFGrowthRate:       10,
		ProjectionYears:     5,
		DiscountRates:       []float64{2, 10},
		TerminalGrowthRates: []float64{2.5, 3},
		Matrix: [][]*float64{
			{nil, nil},
			{&v1, &v2},
		},
		BaseCase: models.SensitivityBaseCase{DiscountRate: 10, TerminalGrowthRate: 3, IntrinsicValue: &v2},
	}

	out := FormatSensitivity(r)
	for _, want := range []string{
		"| Discount \\ Terminal | 2.50% | 3.00% |",
		"| 2.00% | n/a | n/a |",
		"| 10.00% | $61.50 | **$48.25** |",
		"**Base Case:** $48.25 at 10.00% discount, 3.00% terminal growth",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatSensitivity output missing %q\n%s", want, out)
		}
	}
}

func TestFormatWACC(t *testing.T) {
	out := FormatWACC(&models.WACCResult{
		Symbol:             "ACME",
		WACC:               9.67,
		CostOfEquity:       11.1,
		CostOfDebtPreTax:   5,
		CostOfDebtAfterTax: 3.95,
		TaxRate:            21,
		EquityWeight:       0.8,
		DebtWeight:         0.2,
		Beta:               1.2,
		RiskFreeRate:       4.5,
		EquityRiskPremium:  5.5,
		MarketCap:          8e8,
		TotalDebt:          2e8,
	})

	for _, want := range []string{
		"**WACC:** 9.67%",
		"| **Cost of Equity** | **11.10%** |",
		"| **After-Tax Cost of Debt** | **3.95%** |",
		"| Equity (Market Cap) | $800.00M | 80.00% |",
		"| Debt | $200.00M | 20.00% |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatWACC output missing %q\n%s", want, out)
		}
	}
}

func TestFormatQuotes_ListsErrors(t *testing.T) {
	out := FormatQuotes([]models.QuoteResult{
		{Symbol: "AAPL", Quote: &models.Quote{Symbol: "AAPL", Name: "Apple Inc.", Price: 190.5, ChangePercent: 1.25, MarketCap: 2.9e12, PE: 29.4}},
		{Symbol: "ZZZZ", Error: "no data returned"},
	})

	if !strings.Contains(out, "| AAPL | Apple Inc. | $190.50 | +1.25% | $2.90T | 29.40 |") {
		t.Errorf("missing AAPL row\n%s", out)
	}
	if !strings.Contains(out, "- **ZZZZ**: no data returned") {
		t.Errorf("missing error line\n%s", out)
	}
}

func TestFormatQuote(t *testing.T) {
	out := FormatQuote(&models.Quote{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Price:         190.5,
		Change:        -2.25,
		ChangePercent: -1.17,
		Volume:        52_300_000,
		Timestamp:     time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{
		"# AAPL - Apple Inc.",
		"**Price:** $190.50 (-$2.25, -1.17%)",
		"| Volume | 52.30M |",
		"*As of 2026-03-02 21:00 UTC*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatQuote output missing %q\n%s", want, out)
		}
	}
}

func TestFormatIncomeStatements_PeriodColumns(t *testing.T) {
	out := FormatIncomeStatements("ACME", []models.IncomeStatement{
		{FiscalYear: "2025", Period: "Q4", Revenue: 3e8, NetIncomeRatio: 0.12},
		{FiscalYear: "2024", Period: "FY", Revenue: -1.5e6},
	})

	for _, want := range []string{
		"| Metric | 2025 Q4 | 2024 |",
		"| Revenue | $300.00M | -$1.50M |",
		"| Net Margin | 12.00% | 0.00% |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatIncomeStatements output missing %q\n%s", want, out)
		}
	}

	if !strings.Contains(FormatIncomeStatements("ACME", nil), "No income statements available.") {
		t.Error("expected empty message")
	}
}

func TestFormatAnalysis_DemotesSections(t *testing.T) {
	out := FormatAnalysis(&models.ComprehensiveAnalysis{
		Symbol: "ACME",
		Summary: models.AnalysisSummary{
			CompanyName: "Acme Corp", Sector: "Industrials", Price: 20, MarketCap: 8e8,
			YearsAnalyzed: 3, LatestFiscalYear: "2025",
		},
		IncomeStatements: []models.IncomeStatement{{FiscalYear: "2025", Revenue: 1e9}},
	})

	for _, want := range []string{
		"# Comprehensive Analysis: Acme Corp (ACME)",
		"**Industry:** -",
		"**Latest Fiscal Year:** 2025",
		"## ACME Income Statements",
		"## ACME Key Metrics",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatAnalysis output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\n# ACME") {
		t.Error("section headings should be demoted to level 2")
	}
}

func TestFormatWebResults(t *testing.T) {
	out := FormatWebResults(&models.WebSearchResponse{
		Query: "acme earnings",
		Kind:  "news",
		Results: []models.WebResult{
			{Position: 1, Title: "Acme beats", URL: "https://news.example/acme", Snippet: "Record quarter.", Source: "news.example", Date: "2 days ago"},
		},
	})

	for _, want := range []string{
		"# News Search: acme earnings",
		"1. [Acme beats](https://news.example/acme)",
		"*news.example | 2 days ago*",
		"Record quarter.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatWebResults output missing %q\n%s", want, out)
		}
	}
}

func TestFormatValuationHistory(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := FormatValuationHistory("ACME", []*models.ValuationRecord{{
		ID: "val_1", Symbol: "ACME", IntrinsicValue: 56.25, CurrentPrice: 40,
		UpsidePercent: 40.63, DiscountRate: 9.67, Recommendation: "BUY", CreatedAt: created,
	}})
	if !strings.Contains(out, "| 2026-03-01 12:00 | val_1 | $56.25 | $40.00 | +40.63% | 9.67% | BUY |") {
		t.Errorf("unexpected history table\n%s", out)
	}

	if !strings.Contains(FormatValuationHistory("ACME", nil), "No valuations recorded.") {
		t.Error("expected empty message")
	}
}

func TestFormatMathResult(t *testing.T) {
	out := FormatMathResult(&models.MathResult{
		Operation: "percentage_change", Expression: "(120 - 100) / 100 * 100",
		Formatted: "+20.00%", Direction: "increase",
	})
	if !strings.Contains(out, "**percentage_change:** (120 - 100) / 100 * 100 = +20.00%") {
		t.Errorf("unexpected math output\n%s", out)
	}
	if !strings.Contains(out, "Direction: increase") {
		t.Error("expected direction line")
	}
}
