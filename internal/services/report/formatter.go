// Package report renders research and valuation results as markdown and charts
package report

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/models"
)

// money formats large dollar amounts in abbreviated form, e.g. "$2.45B", "-$310.00M".
func money(v float64) string {
	if v < 0 {
		return "-$" + common.FormatLargeNumber(-v)
	}
	return "$" + common.FormatLargeNumber(v)
}

// ratioPct formats a fractional ratio (0.25) as a percentage ("25.00%").
func ratioPct(v float64) string {
	return common.FormatPct(v * 100)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// writeTable writes a markdown table. Rows shorter than the header are padded.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	seps := make([]string, len(header))
	for i, h := range header {
		seps[i] = strings.Repeat("-", max(len(h), 3))
	}
	sb.WriteString("|" + strings.Join(seps, "|") + "|\n")
	for _, row := range rows {
		for len(row) < len(header) {
			row = append(row, "")
		}
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	sb.WriteString("\n")
}

// FormatQuote formats a single quote as markdown
func FormatQuote(q *models.Quote) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s", q.Symbol))
	if q.Name != "" {
		sb.WriteString(fmt.Sprintf(" - %s", q.Name))
	}
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("**Price:** %s (%s, %s)\n\n",
		common.FormatMoney(q.Price), signedMoney(q.Change), common.FormatSignedPct(q.ChangePercent)))

	writeTable(&sb, []string{"Metric", "Value"}, [][]string{
		{"Open", common.FormatMoney(q.Open)},
		{"Previous Close", common.FormatMoney(q.PreviousClose)},
		{"Day Range", fmt.Sprintf("%s - %s", common.FormatMoney(q.DayLow), common.FormatMoney(q.DayHigh))},
		{"52 Week Range", fmt.Sprintf("%s - %s", common.FormatMoney(q.YearLow), common.FormatMoney(q.YearHigh))},
		{"Market Cap", money(q.MarketCap)},
		{"Volume", common.FormatLargeNumber(float64(q.Volume))},
		{"Avg Volume", common.FormatLargeNumber(float64(q.AvgVolume))},
		{"EPS", fmt.Sprintf("%.2f", q.EPS)},
		{"P/E", fmt.Sprintf("%.2f", q.PE)},
	})

	if !q.Timestamp.IsZero() {
		sb.WriteString(fmt.Sprintf("*As of %s*\n", q.Timestamp.UTC().Format("2006-01-02 15:04 MST")))
	}

	return sb.String()
}

func signedMoney(v float64) string {
	if v >= 0 {
		return "+" + common.FormatMoney(v)
	}
	return common.FormatMoney(v)
}

// FormatQuotes formats a multi-symbol quote table
func FormatQuotes(results []models.QuoteResult) string {
	var sb strings.Builder
	sb.WriteString("# Quotes\n\n")

	rows := make([][]string, 0, len(results))
	var failed []models.QuoteResult
	for _, r := range results {
		if r.Quote == nil {
			failed = append(failed, r)
			continue
		}
		q := r.Quote
		rows = append(rows, []string{
			q.Symbol, orDash(q.Name), common.FormatMoney(q.Price),
			common.FormatSignedPct(q.ChangePercent), money(q.MarketCap), fmt.Sprintf("%.2f", q.PE),
		})
	}
	if len(rows) > 0 {
		writeTable(&sb, []string{"Symbol", "Name", "Price", "Change", "Market Cap", "P/E"}, rows)
	}

	if len(failed) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, r := range failed {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", r.Symbol, r.Error))
		}
	}

	return sb.String()
}

// FormatSymbolMatches formats symbol search results
func FormatSymbolMatches(query string, matches []models.SymbolMatch) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Symbol Search: %s\n\n", query))

	if len(matches) == 0 {
		sb.WriteString("No matching symbols found.\n")
		return sb.String()
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{m.Symbol, m.Name, orDash(m.ExchangeShortName), orDash(m.Currency)})
	}
	writeTable(&sb, []string{"Symbol", "Name", "Exchange", "Currency"}, rows)
	return sb.String()
}

// FormatProfile formats a company profile
func FormatProfile(p *models.CompanyProfile) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", p.CompanyName, p.Symbol))

	writeTable(&sb, []string{"Field", "Value"}, [][]string{
		{"Price", common.FormatMoney(p.Price)},
		{"Market Cap", money(p.MarketCap)},
		{"Beta", fmt.Sprintf("%.2f", p.Beta)},
		{"Sector", orDash(p.Sector)},
		{"Industry", orDash(p.Industry)},
		{"Exchange", orDash(p.Exchange)},
		{"Currency", orDash(p.Currency)},
		{"CEO", orDash(p.CEO)},
		{"Employees", fmt.Sprintf("%d", p.Employees)},
		{"Headquarters", orDash(strings.Trim(strings.Join([]string{p.City, p.State, p.Country}, ", "), ", "))},
		{"IPO Date", orDash(p.IPODate)},
		{"Website", orDash(p.Website)},
	})

	if p.Description != "" {
		sb.WriteString("## Description\n\n")
		sb.WriteString(p.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// periodLabel is the column heading for one reporting period.
func periodLabel(fiscalYear, period, date string) string {
	switch {
	case fiscalYear != "" && period != "" && period != "FY":
		return fiscalYear + " " + period
	case fiscalYear != "":
		return fiscalYear
	default:
		return date
	}
}

type metricRow struct {
	label  string
	values []string
}

// writePeriodTable writes one row per metric and one column per period.
func writePeriodTable(sb *strings.Builder, periods []string, metrics []metricRow) {
	header := append([]string{"Metric"}, periods...)
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, append([]string{m.label}, m.values...))
	}
	writeTable(sb, header, rows)
}

func column[T any](items []T, f func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = f(it)
	}
	return out
}

// FormatIncomeStatements formats income statements, newest period first
func FormatIncomeStatements(symbol string, items []models.IncomeStatement) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s Income Statements\n\n", symbol))
	if len(items) == 0 {
		sb.WriteString("No income statements available.\n")
		return sb.String()
	}

	periods := column(items, func(s models.IncomeStatement) string { return periodLabel(s.FiscalYear, s.Period, s.Date) })
	writePeriodTable(&sb, periods, []metricRow{
		{"Revenue", column(items, func(s models.IncomeStatement) string { return money(s.Revenue) })},
		{"Gross Profit", column(items, func(s models.IncomeStatement) string { return money(s.GrossProfit) })},
		{"Gross Margin", column(items, func(s models.IncomeStatement) string { return ratioPct(s.GrossProfitRatio) })},
		{"Operating Income", column(items, func(s models.IncomeStatement) string { return money(s.OperatingIncome) })},
		{"EBITDA", column(items, func(s models.IncomeStatement) string { return money(s.EBITDA) })},
		{"Net Income", column(items, func(s models.IncomeStatement) string { return money(s.NetIncome) })},
		{"Net Margin", column(items, func(s models.IncomeStatement) string { return ratioPct(s.NetIncomeRatio) })},
		{"EPS (diluted)", column(items, func(s models.IncomeStatement) string { return fmt.Sprintf("%.2f", s.EPSDiluted) })},
	})
	return sb.String()
}

// FormatBalanceSheets formats balance sheets, newest period first
func FormatBalanceSheets(symbol string, items []models.BalanceSheet) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s Balance Sheets\n\n", symbol))
	if len(items) == 0 {
		sb.WriteString("No balance sheets available.\n")
		return sb.String()
	}

	periods := column(items, func(s models.BalanceSheet) string { return periodLabel(s.FiscalYear, s.Period, s.Date) })
	writePeriodTable(&sb, periods, []metricRow{
		{"Cash & Equivalents", column(items, func(s models.BalanceSheet) string { return money(s.CashAndCashEquivalents) })},
		{"Total Current Assets", column(items, func(s models.BalanceSheet) string { return money(s.TotalCurrentAssets) })},
		{"Total Assets", column(items, func(s models.BalanceSheet) string { return money(s.TotalAssets) })},
		{"Total Current Liabilities", column(items, func(s models.BalanceSheet) string { return money(s.TotalCurrentLiabilities) })},
		{"Total Liabilities", column(items, func(s models.BalanceSheet) string { return money(s.TotalLiabilities) })},
		{"Total Debt", column(items, func(s models.BalanceSheet) string { return money(s.TotalDebt) })},
		{"Stockholders' Equity", column(items, func(s models.BalanceSheet) string { return money(s.TotalStockholdersEquity) })},
	})
	return sb.String()
}

// FormatCashFlows formats cash flow statements, newest period first
func FormatCashFlows(symbol string, items []models.CashFlowStatement) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s Cash Flow Statements\n\n", symbol))
	if len(items) == 0 {
		sb.WriteString("No cash flow statements available.\n")
		return sb.String()
	}

	periods := column(items, func(s models.CashFlowStatement) string { return periodLabel(s.FiscalYear, s.Period, s.Date) })
	writePeriodTable(&sb, periods, []metricRow{
		{"Operating Cash Flow", column(items, func(s models.CashFlowStatement) string { return money(s.OperatingCashFlow) })},
		{"Capital Expenditure", column(items, func(s models.CashFlowStatement) string { return money(s.CapitalExpenditure) })},
		{"Free Cash Flow", column(items, func(s models.CashFlowStatement) string { return money(s.FreeCashFlow) })},
		{"Investing", column(items, func(s models.CashFlowStatement) string { return money(s.NetCashFromInvesting) })},
		{"Financing", column(items, func(s models.CashFlowStatement) string { return money(s.NetCashFromFinancing) })},
		{"Dividends Paid", column(items, func(s models.CashFlowStatement) string { return money(s.DividendsPaid) })},
		{"Buybacks", column(items, func(s models.CashFlowStatement) string { return money(s.CommonStockRepurchased) })},
	})
	return sb.String()
}

// FormatRatios formats financial ratios, newest period first
func FormatRatios(symbol string, items []models.FinancialRatios) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s Financial Ratios\n\n", symbol))
	if len(items) == 0 {
		sb.WriteString("No ratios available.\n")
		return sb.String()
	}

	num := func(f func(models.FinancialRatios) float64) []string {
		return column(items, func(r models.FinancialRatios) string { return fmt.Sprintf("%.2f", f(r)) })
	}
	pct := func(f func(models.FinancialRatios) float64) []string {
		return column(items, func(r models.FinancialRatios) string { return ratioPct(f(r)) })
	}

	periods := column(items, func(r models.FinancialRatios) string { return periodLabel(r.FiscalYear, r.Period, r.Date) })
	writePeriodTable(&sb, periods, []metricRow{
		{"Gross Margin", pct(func(r models.FinancialRatios) float64 { return r.GrossProfitMargin })},
		{"Operating Margin", pct(func(r models.FinancialRatios) float64 { return r.OperatingProfitMargin })},
		{"Net Margin", pct(func(r models.FinancialRatios) float64 { return r.NetProfitMargin })},
		{"Return on Equity", pct(func(r models.FinancialRatios) float64 { return r.ReturnOnEquity })},
		{"Return on Assets", pct(func(r models.FinancialRatios) float64 { return r.ReturnOnAssets })},
		{"Current Ratio", num(func(r models.FinancialRatios) float64 { return r.CurrentRatio })},
		{"Quick Ratio", num(func(r models.FinancialRatios) float64 { return r.QuickRatio })},
		{"Debt/Equity", num(func(r models.FinancialRatios) float64 { return r.DebtEquityRatio })},
		{"P/E", num(func(r models.FinancialRatios) float64 { return r.PriceEarningsRatio })},
		{"P/B", num(func(r models.FinancialRatios) float64 { return r.PriceToBookRatio })},
	})
	return sb.String()
}

// FormatKeyMetrics formats key metrics, newest period first
func FormatKeyMetrics(symbol string, items []models.KeyMetrics) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s Key Metrics\n\n", symbol))
	if len(items) == 0 {
		sb.WriteString("No key metrics available.\n")
		return sb.String()
	}

	num := func(f func(models.KeyMetrics) float64) []string {
		return column(items, func(m models.KeyMetrics) string { return fmt.Sprintf("%.2f", f(m)) })
	}

	periods := column(items, func(m models.KeyMetrics) string { return periodLabel(m.FiscalYear, m.Period, m.Date) })
	writePeriodTable(&sb, periods, []metricRow{
		{"Market Cap", column(items, func(m models.KeyMetrics) string { return money(m.MarketCap) })},
		{"P/E", num(func(m models.KeyMetrics) float64 { return m.PERatio })},
		{"P/S", num(func(m models.KeyMetrics) float64 { return m.PriceToSalesRatio })},
		{"P/B", num(func(m models.KeyMetrics) float64 { return m.PBRatio })},
		{"EV/EBITDA", num(func(m models.KeyMetrics) float64 { return m.EVToEBITDA })},
		{"Revenue/Share", num(func(m models.KeyMetrics) float64 { return m.RevenuePerShare })},
		{"FCF/Share", num(func(m models.KeyMetrics) float64 { return m.FreeCashFlowPerShare })},
		{"Book Value/Share", num(func(m models.KeyMetrics) float64 { return m.BookValuePerShare })},
		{"Dividend Yield", column(items, func(m models.KeyMetrics) string { return ratioPct(m.DividendYield) })},
	})
	return sb.String()
}

// FormatAnalysis formats a comprehensive analysis
func FormatAnalysis(a *models.ComprehensiveAnalysis) string {
	var sb strings.Builder
	s := a.Summary

	sb.WriteString(fmt.Sprintf("# Comprehensive Analysis: %s (%s)\n\n", s.CompanyName, a.Symbol))
	sb.WriteString(fmt.Sprintf("**Sector:** %s | **Industry:** %s\n", orDash(s.Sector), orDash(s.Industry)))
	sb.WriteString(fmt.Sprintf("**Price:** %s | **Market Cap:** %s\n", common.FormatMoney(s.Price), money(s.MarketCap)))
	sb.WriteString(fmt.Sprintf("**Years Analyzed:** %d", s.YearsAnalyzed))
	if s.LatestFiscalYear != "" {
		sb.WriteString(fmt.Sprintf(" | **Latest Fiscal Year:** %s", s.LatestFiscalYear))
	}
	sb.WriteString("\n\n")

	for _, section := range []string{
		FormatIncomeStatements(a.Symbol, a.IncomeStatements),
		FormatBalanceSheets(a.Symbol, a.BalanceSheets),
		FormatCashFlows(a.Symbol, a.CashFlows),
		FormatRatios(a.Symbol, a.Ratios),
		FormatKeyMetrics(a.Symbol, a.KeyMetrics),
	} {
		// demote each section heading one level
		sb.WriteString("#" + section)
		sb.WriteString("\n")
	}

	if len(a.Failures) > 0 {
		sb.WriteString("## Data Gaps\n\n")
		for _, f := range a.Failures {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
	}

	return sb.String()
}

// FormatWACC formats a WACC calculation
func FormatWACC(w *models.WACCResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# WACC: %s\n\n", w.Symbol))
	sb.WriteString(fmt.Sprintf("**WACC:** %s\n\n", common.FormatPct(w.WACC)))

	sb.WriteString("## Cost of Equity (CAPM)\n\n")
	writeTable(&sb, []string{"Input", "Value"}, [][]string{
		{"Risk-Free Rate", common.FormatPct(w.RiskFreeRate)},
		{"Beta", fmt.Sprintf("%.2f", w.Beta)},
		{"Equity Risk Premium", common.FormatPct(w.EquityRiskPremium)},
		{"**Cost of Equity**", "**" + common.FormatPct(w.CostOfEquity) + "**"},
	})

	sb.WriteString("## Cost of Debt\n\n")
	writeTable(&sb, []string{"Input", "Value"}, [][]string{
		{"Pre-Tax Cost of Debt", common.FormatPct(w.CostOfDebtPreTax)},
		{"Effective Tax Rate", common.FormatPct(w.TaxRate)},
		{"**After-Tax Cost of Debt**", "**" + common.FormatPct(w.CostOfDebtAfterTax) + "**"},
	})

	sb.WriteString("## Capital Structure\n\n")
	writeTable(&sb, []string{"Component", "Value", "Weight"}, [][]string{
		{"Equity (Market Cap)", money(w.MarketCap), ratioPct(w.EquityWeight)},
		{"Debt", money(w.TotalDebt), ratioPct(w.DebtWeight)},
	})

	return sb.String()
}

// FormatDCF formats a DCF valuation. chartURL is optional.
func FormatDCF(r *models.DCFResult, chartURL string) string {
	var sb strings.Builder
	v := r.Valuation
	a := r.Assumptions
	b := r.Breakdown

	title := r.Symbol
	if r.CompanyName != "" {
		title = fmt.Sprintf("%s (%s)", r.CompanyName, r.Symbol)
	}
	sb.WriteString(fmt.Sprintf("# DCF Valuation: %s\n\n", title))
	sb.WriteString(fmt.Sprintf("**Analysis Date:** %s\n", orDash(r.AnalysisDate)))
	sb.WriteString(fmt.Sprintf("**Recommendation:** %s\n", r.Recommendation))
	if r.ValuationID != "" {
		sb.WriteString(fmt.Sprintf("**Valuation ID:** %s\n", r.ValuationID))
	}
	sb.WriteString("\n")

	sb.WriteString("## Valuation\n\n")
	writeTable(&sb, []string{"Metric", "Value"}, [][]string{
		{"Intrinsic Value / Share", common.FormatMoney(v.IntrinsicValuePerShare)},
		{"Current Price", common.FormatMoney(v.CurrentPrice)},
		{fmt.Sprintf("Target Price (%.0f%% MoS)", a.MarginOfSafety), common.FormatMoney(v.TargetPrice)},
		{"Upside", common.FormatSignedPct(v.UpsidePercent)},
		{"Enterprise Value", money(v.EnterpriseValue)},
		{"Equity Value", money(v.EquityValue)},
	})

	sb.WriteString("## Assumptions\n\n")
	writeTable(&sb, []string{"Assumption", "Value", "Source"}, [][]string{
		{"Projection Years", fmt.Sprintf("%d", a.ProjectionYears), ""},
		{"FCF Growth Rate", common.FormatPct(a.FCFGrowthRate), a.FCFGrowthSource},
		{"Discount Rate", common.FormatPct(a.DiscountRate), a.DiscountRateSource},
		{"Terminal Growth Rate", common.FormatPct(a.TerminalGrowthRate), ""},
		{"Margin of Safety", common.FormatPct(a.MarginOfSafety), ""},
	})

	sb.WriteString("## Projected Free Cash Flow\n\n")
	rows := make([][]string, 0, len(r.Projections))
	for _, p := range r.Projections {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Year), money(p.FreeCashFlow), fmt.Sprintf("%.4f", p.DiscountFactor), money(p.PresentValue),
		})
	}
	writeTable(&sb, []string{"Year", "FCF", "Discount Factor", "Present Value"}, rows)

	if chartURL != "" {
		sb.WriteString(fmt.Sprintf("![Projected FCF](%s)\n\n", chartURL))
	}

	sb.WriteString("## Calculation Breakdown\n\n")
	writeTable(&sb, []string{"Step", "Value"}, [][]string{
		{"Base Free Cash Flow", money(b.BaseFreeCashFlow)},
		{"PV of Projected FCF", money(b.SumPVCashFlows)},
		{"Terminal Value", money(b.TerminalValue)},
		{"PV of Terminal Value", fmt.Sprintf("%s (%s of EV)", money(b.PVTerminalValue), common.FormatPct(b.TerminalValueWeight))},
		{"Less: Total Debt", money(b.TotalDebt)},
		{"Plus: Cash & Equivalents", money(b.CashAndEquivalents)},
		{"Shares Outstanding", fmt.Sprintf("%s (%s)", common.FormatLargeNumber(b.SharesOutstanding), b.SharesSource)},
	})

	return sb.String()
}

// FormatSensitivity formats the sensitivity matrix, discount rates as rows
func FormatSensitivity(r *models.SensitivityResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Sensitivity Analysis: %s\n\n", r.Symbol))
	sb.WriteString(fmt.Sprintf("**Current Price:** %s | **FCF Growth:** %s | **Projection Years:** %d\n\n",
		common.FormatMoney(r.CurrentPrice), common.FormatPct(r.FCFGrowthRate), r.ProjectionYears))

	header := []string{"Discount \\ Terminal"}
	for _, tg := range r.TerminalGrowthRates {
		header = append(header, common.FormatPct(tg))
	}

	rows := make([][]string, 0, len(r.DiscountRates))
	for i, dr := range r.DiscountRates {
		row := []string{common.FormatPct(dr)}
		for j := range r.TerminalGrowthRates {
			cell := "n/a"
			if i < len(r.Matrix) && j < len(r.Matrix[i]) && r.Matrix[i][j] != nil {
				cell = common.FormatMoney(*r.Matrix[i][j])
				if dr == r.BaseCase.DiscountRate && r.TerminalGrowthRates[j] == r.BaseCase.TerminalGrowthRate {
					cell = "**" + cell + "**"
				}
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	writeTable(&sb, header, rows)

	bc := r.BaseCase
	if bc.IntrinsicValue != nil {
		sb.WriteString(fmt.Sprintf("**Base Case:** %s at %s discount, %s terminal growth\n",
			common.FormatMoney(*bc.IntrinsicValue), common.FormatPct(bc.DiscountRate), common.FormatPct(bc.TerminalGrowthRate)))
	}

	return sb.String()
}

// FormatResearchNote formats a generated research note
func FormatResearchNote(n *models.ResearchNote) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Research Note: %s\n\n", n.Symbol))
	sb.WriteString(strings.TrimSpace(n.Note))
	sb.WriteString(fmt.Sprintf("\n\n*Generated by %s on %s*\n", n.Model, n.GeneratedAt.Format("2006-01-02 15:04")))
	return sb.String()
}

// FormatValuationHistory formats stored DCF runs
func FormatValuationHistory(symbol string, records []*models.ValuationRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Valuation History: %s\n\n", symbol))

	if len(records) == 0 {
		sb.WriteString("No valuations recorded.\n")
		return sb.String()
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.CreatedAt.Format("2006-01-02 15:04"), r.ID,
			common.FormatMoney(r.IntrinsicValue), common.FormatMoney(r.CurrentPrice),
			common.FormatSignedPct(r.UpsidePercent), common.FormatPct(r.DiscountRate), r.Recommendation,
		})
	}
	writeTable(&sb, []string{"Date", "ID", "Intrinsic", "Price", "Upside", "Discount", "Recommendation"}, rows)
	return sb.String()
}

// FormatValuationRecord formats one stored DCF run
func FormatValuationRecord(r *models.ValuationRecord) string {
	if r.Result != nil {
		return FormatDCF(r.Result, "")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Valuation %s: %s\n\n", r.ID, r.Symbol))
	writeTable(&sb, []string{"Metric", "Value"}, [][]string{
		{"Recorded", r.CreatedAt.Format("2006-01-02 15:04")},
		{"Intrinsic Value / Share", common.FormatMoney(r.IntrinsicValue)},
		{"Target Price", common.FormatMoney(r.TargetPrice)},
		{"Price at Valuation", common.FormatMoney(r.CurrentPrice)},
		{"Upside", common.FormatSignedPct(r.UpsidePercent)},
		{"Recommendation", r.Recommendation},
	})
	return sb.String()
}

// FormatMathResult formats an arithmetic helper result
func FormatMathResult(r *models.MathResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s:** %s = %s\n", r.Operation, r.Expression, r.Formatted))
	if r.Direction != "" {
		sb.WriteString(fmt.Sprintf("\nDirection: %s\n", r.Direction))
	}
	return sb.String()
}

// FormatWebResults formats web or news search hits
func FormatWebResults(resp *models.WebSearchResponse) string {
	var sb strings.Builder

	label := "Web"
	if resp.Kind == "news" {
		label = "News"
	}
	sb.WriteString(fmt.Sprintf("# %s Search: %s\n\n", label, resp.Query))

	if len(resp.Results) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	for _, r := range resp.Results {
		sb.WriteString(fmt.Sprintf("%d. [%s](%s)\n", r.Position, r.Title, r.URL))
		var meta []string
		if r.Source != "" {
			meta = append(meta, r.Source)
		}
		if r.Date != "" {
			meta = append(meta, r.Date)
		}
		if len(meta) > 0 {
			sb.WriteString(fmt.Sprintf("   *%s*\n", strings.Join(meta, " | ")))
		}
		if r.Snippet != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", r.Snippet))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
