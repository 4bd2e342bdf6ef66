package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/models"
)

// ResearchNote asks Gemini for a narrative note built from the comprehensive
// analysis and a DCF run. The DCF is optional; the note says so when it fails.
// The DCF run here is not saved to history.
func (s *Service) ResearchNote(ctx context.Context, symbol string) (*models.ResearchNote, error) {
	if s.gemini == nil {
		return nil, fmt.Errorf("research notes: %w", ErrNotConfigured)
	}

	analysis, err := s.ComprehensiveAnalysis(ctx, symbol, DefaultAnalysisYears)
	if err != nil {
		return nil, err
	}

	dcf, err := s.runDCF(ctx, analysis.Symbol, models.DCFOptions{})
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", analysis.Symbol).Msg("DCF unavailable for research note")
		dcf = nil
	}

	text, err := s.gemini.GenerateContent(ctx, buildNotePrompt(analysis, dcf))
	if err != nil {
		return nil, fmt.Errorf("failed to generate research note: %w", err)
	}

	return &models.ResearchNote{
		Symbol:      analysis.Symbol,
		Model:       s.gemini.Model(),
		Note:        text,
		GeneratedAt: s.now().UTC(),
	}, nil
}

func buildNotePrompt(a *models.ComprehensiveAnalysis, dcf *models.DCFResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Write an equity research note for %s (%s).\n\n", a.Summary.CompanyName, a.Symbol)
	sb.WriteString("## Company\n")
	fmt.Fprintf(&sb, "- Sector: %s\n", a.Summary.Sector)
	fmt.Fprintf(&sb, "- Industry: %s\n", a.Summary.Industry)
	fmt.Fprintf(&sb, "- Price: %s\n", common.FormatMoney(a.Summary.Price))
	fmt.Fprintf(&sb, "- Market cap: %s\n", common.FormatLargeNumber(a.Summary.MarketCap))
	if a.Summary.LatestFiscalYear != "" {
		fmt.Fprintf(&sb, "- Latest fiscal year: %s\n", a.Summary.LatestFiscalYear)
	}

	sb.WriteString("\n## Financial history (newest first)\n")
	for i, inc := range a.IncomeStatements {
		fmt.Fprintf(&sb, "- %s: revenue %s, net income %s, EPS %.2f",
			inc.FiscalYear, common.FormatLargeNumber(inc.Revenue), common.FormatLargeNumber(inc.NetIncome), inc.EPS)
		if i < len(a.CashFlows) {
			fmt.Fprintf(&sb, ", free cash flow %s", common.FormatLargeNumber(a.CashFlows[i].FreeCashFlow))
		}
		if i < len(a.BalanceSheets) {
			fmt.Fprintf(&sb, ", total debt %s", common.FormatLargeNumber(a.BalanceSheets[i].TotalDebt))
		}
		sb.WriteString("\n")
	}

	if len(a.Ratios) > 0 {
		r := a.Ratios[0]
		sb.WriteString("\n## Latest ratios\n")
		fmt.Fprintf(&sb, "- Net margin: %s\n", common.FormatPct(r.NetProfitMargin*100))
		fmt.Fprintf(&sb, "- Return on equity: %s\n", common.FormatPct(r.ReturnOnEquity*100))
		fmt.Fprintf(&sb, "- Current ratio: %.2f\n", r.CurrentRatio)
		fmt.Fprintf(&sb, "- Debt/equity: %.2f\n", r.DebtEquityRatio)
	}

	sb.WriteString("\n## DCF valuation\n")
	if dcf == nil {
		sb.WriteString("Not available. Do not estimate an intrinsic value.\n")
	} else {
		v := dcf.Valuation
		fmt.Fprintf(&sb, "- Intrinsic value per share: %s\n", common.FormatMoney(v.IntrinsicValuePerShare))
		fmt.Fprintf(&sb, "- Target price (%.0f%% margin of safety): %s\n", dcf.Assumptions.MarginOfSafety, common.FormatMoney(v.TargetPrice))
		fmt.Fprintf(&sb, "- Upside: %s\n", common.FormatSignedPct(v.UpsidePercent))
		fmt.Fprintf(&sb, "- Discount rate: %s (%s)\n", common.FormatPct(dcf.Assumptions.DiscountRate), dcf.Assumptions.DiscountRateSource)
		fmt.Fprintf(&sb, "- FCF growth: %s, terminal growth: %s\n",
			common.FormatPct(dcf.Assumptions.FCFGrowthRate), common.FormatPct(dcf.Assumptions.TerminalGrowthRate))
		fmt.Fprintf(&sb, "- Recommendation: %s\n", dcf.Recommendation)
	}

	sb.WriteString("\nCover business quality, financial trends, valuation and key risks. ")
	sb.WriteString("Use only the figures above. Keep it under 400 words.\n")

	return sb.String()
}
