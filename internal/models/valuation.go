package models

import "time"

// Float64Ptr returns a pointer to v, for optional valuation overrides.
func Float64Ptr(v float64) *float64 {
	return &v
}

// WACCOptions overrides the configured CAPM assumptions. Nil fields use defaults.
type WACCOptions struct {
	RiskFreeRate      *float64 `json:"risk_free_rate,omitempty"`
	EquityRiskPremium *float64 `json:"equity_risk_premium,omitempty"`
}

// WACCResult is a weighted average cost of capital with its components. Rates are percentages.
type WACCResult struct {
	Symbol             string    `json:"symbol"`
	WACC               float64   `json:"wacc"`
	CostOfEquity       float64   `json:"cost_of_equity"`
	CostOfDebtPreTax   float64   `json:"cost_of_debt_pre_tax"`
	CostOfDebtAfterTax float64   `json:"cost_of_debt_after_tax"`
	TaxRate            float64   `json:"tax_rate"`
	EquityWeight       float64   `json:"equity_weight"`
	DebtWeight         float64   `json:"debt_weight"`
	Beta               float64   `json:"beta"`
	RiskFreeRate       float64   `json:"risk_free_rate"`
	EquityRiskPremium  float64   `json:"equity_risk_premium"`
	MarketCap          float64   `json:"market_cap"`
	TotalDebt          float64   `json:"total_debt"`
	CalculatedAt       time.Time `json:"calculated_at"`
}

// DCFOptions overrides DCF assumptions. Zero ProjectionYears and nil rates use defaults.
type DCFOptions struct {
	ProjectionYears    int      `json:"projection_years,omitempty"`
	FCFGrowthRate      *float64 `json:"fcf_growth_rate,omitempty"`
	TerminalGrowthRate *float64 `json:"terminal_growth_rate,omitempty"`
	DiscountRate       *float64 `json:"discount_rate,omitempty"`
	MarginOfSafety     *float64 `json:"margin_of_safety,omitempty"`

	// SkipHistory runs the valuation without recording it
	SkipHistory bool `json:"-"`
}

// Discount rate sources reported in DCF assumptions.
const (
	DiscountSourceUser     = "user"
	DiscountSourceWACC     = "wacc"
	DiscountSourceFallback = "fallback"
)

// DCFAssumptions records the inputs actually used by a DCF run.
type DCFAssumptions struct {
	ProjectionYears    int     `json:"projection_years"`
	FCFGrowthRate      float64 `json:"fcf_growth_rate"`
	FCFGrowthSource    string  `json:"fcf_growth_source"` // "user" or "historical_cagr"
	TerminalGrowthRate float64 `json:"terminal_growth_rate"`
	DiscountRate       float64 `json:"discount_rate"`
	DiscountRateSource string  `json:"discount_rate_source"`
	MarginOfSafety     float64 `json:"margin_of_safety"`
}

// ProjectedCashFlow is one projected year of free cash flow.
type ProjectedCashFlow struct {
	Year           int     `json:"year"`
	FreeCashFlow   float64 `json:"free_cash_flow"`
	DiscountFactor float64 `json:"discount_factor"`
	PresentValue   float64 `json:"present_value"`
}

// DCFBreakdown shows how enterprise value was bridged to equity value.
type DCFBreakdown struct {
	BaseFreeCashFlow    float64 `json:"base_free_cash_flow"`
	SumPVCashFlows      float64 `json:"sum_pv_cash_flows"`
	TerminalValue       float64 `json:"terminal_value"`
	PVTerminalValue     float64 `json:"pv_terminal_value"`
	TotalDebt           float64 `json:"total_debt"`
	CashAndEquivalents  float64 `json:"cash_and_equivalents"`
	SharesOutstanding   float64 `json:"shares_outstanding"`
	SharesSource        string  `json:"shares_source"`
	TerminalValueWeight float64 `json:"terminal_value_weight"` // share of EV from terminal value, percent
}

// DCFValuation is the headline output of a DCF run.
type DCFValuation struct {
	EnterpriseValue        float64 `json:"enterprise_value"`
	EquityValue            float64 `json:"equity_value"`
	IntrinsicValuePerShare float64 `json:"intrinsic_value_per_share"`
	CurrentPrice           float64 `json:"current_price"`
	TargetPrice            float64 `json:"target_price"`
	UpsidePercent          float64 `json:"upside_percent"`
}

// DCFResult is a complete discounted cash flow valuation.
type DCFResult struct {
	Symbol         string              `json:"symbol"`
	CompanyName    string              `json:"company_name,omitempty"`
	AnalysisDate   string              `json:"analysis_date"`
	Valuation      DCFValuation        `json:"valuation"`
	Recommendation string              `json:"recommendation"`
	Assumptions    DCFAssumptions      `json:"assumptions"`
	Breakdown      DCFBreakdown        `json:"breakdown"`
	Projections    []ProjectedCashFlow `json:"projections"`
	ValuationID    string              `json:"valuation_id,omitempty"`
	CalculatedAt   time.Time           `json:"calculated_at"`
}

// SensitivityOptions sets the grid axes. Empty ranges use defaults.
type SensitivityOptions struct {
	TerminalGrowthRates []float64 `json:"terminal_growth_rates,omitempty"`
	DiscountRates       []float64 `json:"discount_rates,omitempty"`
	ProjectionYears     int       `json:"projection_years,omitempty"`
	FCFGrowthRate       *float64  `json:"fcf_growth_rate,omitempty"`
}

// SensitivityBaseCase is the grid cell at the middle of both ranges.
type SensitivityBaseCase struct {
	DiscountRate       float64  `json:"discount_rate"`
	TerminalGrowthRate float64  `json:"terminal_growth_rate"`
	IntrinsicValue     *float64 `json:"intrinsic_value"`
}

// SensitivityResult holds intrinsic value per share for each (discount rate, terminal growth) pair.
// Matrix[i][j] pairs DiscountRates[i] with TerminalGrowthRates[j]; nil marks an invalid cell.
type SensitivityResult struct {
	Symbol              string              `json:"symbol"`
	CurrentPrice        float64             `json:"current_price"`
	FCFGrowthRate       float64             `json:"fcf_growth_rate"`
	ProjectionYears     int                 `json:"projection_years"`
	TerminalGrowthRates []float64           `json:"terminal_growth_rates"`
	DiscountRates       []float64           `json:"discount_rates"`
	Matrix              [][]*float64        `json:"matrix"`
	BaseCase            SensitivityBaseCase `json:"base_case"`
}

// ValuationRecord is a persisted DCF run.
type ValuationRecord struct {
	ID                 string     `json:"id"`
	Symbol             string     `json:"symbol"`
	IntrinsicValue     float64    `json:"intrinsic_value"`
	TargetPrice        float64    `json:"target_price"`
	CurrentPrice       float64    `json:"current_price"`
	UpsidePercent      float64    `json:"upside_percent"`
	Recommendation     string     `json:"recommendation"`
	DiscountRate       float64    `json:"discount_rate"`
	TerminalGrowthRate float64    `json:"terminal_growth_rate"`
	Result             *DCFResult `json:"result,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewValuationRecord summarises a DCF result for the history store.
func NewValuationRecord(r *DCFResult) *ValuationRecord {
	return &ValuationRecord{
		Symbol:             r.Symbol,
		IntrinsicValue:     r.Valuation.IntrinsicValuePerShare,
		TargetPrice:        r.Valuation.TargetPrice,
		CurrentPrice:       r.Valuation.CurrentPrice,
		UpsidePercent:      r.Valuation.UpsidePercent,
		Recommendation:     r.Recommendation,
		DiscountRate:       r.Assumptions.DiscountRate,
		TerminalGrowthRate: r.Assumptions.TerminalGrowthRate,
		Result:             r,
	}
}
