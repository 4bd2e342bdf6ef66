package models

// Reporting periods accepted by the statement endpoints.
const (
	PeriodAnnual  = "annual"
	PeriodQuarter = "quarter"
)

// IncomeStatement is one reporting period of an income statement.
type IncomeStatement struct {
	Date                     string  `json:"date"`
	FiscalYear               string  `json:"fiscal_year"`
	Period                   string  `json:"period"`
	Revenue                  float64 `json:"revenue"`
	CostOfRevenue            float64 `json:"cost_of_revenue"`
	GrossProfit              float64 `json:"gross_profit"`
	GrossProfitRatio         float64 `json:"gross_profit_ratio"`
	OperatingExpenses        float64 `json:"operating_expenses"`
	OperatingIncome          float64 `json:"operating_income"`
	OperatingIncomeRatio     float64 `json:"operating_income_ratio"`
	NetIncome                float64 `json:"net_income"`
	NetIncomeRatio           float64 `json:"net_income_ratio"`
	EPS                      float64 `json:"eps"`
	EPSDiluted               float64 `json:"eps_diluted"`
	EBITDA                   float64 `json:"ebitda"`
	EBITDARatio              float64 `json:"ebitda_ratio"`
	IncomeBeforeTax          float64 `json:"income_before_tax"`
	IncomeTaxExpense         float64 `json:"income_tax_expense"`
	InterestExpense          float64 `json:"interest_expense"`
	WeightedAverageShsOutDil float64 `json:"weighted_average_shares_diluted"`
}

// BalanceSheet is one reporting period of a balance sheet.
type BalanceSheet struct {
	Date                    string  `json:"date"`
	FiscalYear              string  `json:"fiscal_year"`
	Period                  string  `json:"period"`
	CashAndCashEquivalents  float64 `json:"cash_and_cash_equivalents"`
	ShortTermInvestments    float64 `json:"short_term_investments"`
	TotalCurrentAssets      float64 `json:"total_current_assets"`
	TotalAssets             float64 `json:"total_assets"`
	TotalCurrentLiabilities float64 `json:"total_current_liabilities"`
	TotalLiabilities        float64 `json:"total_liabilities"`
	ShortTermDebt           float64 `json:"short_term_debt"`
	LongTermDebt            float64 `json:"long_term_debt"`
	TotalDebt               float64 `json:"total_debt"`
	TotalStockholdersEquity float64 `json:"total_stockholders_equity"`
	RetainedEarnings        float64 `json:"retained_earnings"`
	TotalEquity             float64 `json:"total_equity"`
}

// CashFlowStatement is one reporting period of a cash flow statement.
type CashFlowStatement struct {
	Date                   string  `json:"date"`
	FiscalYear             string  `json:"fiscal_year"`
	Period                 string  `json:"period"`
	OperatingCashFlow      float64 `json:"operating_cash_flow"`
	CapitalExpenditure     float64 `json:"capital_expenditure"`
	FreeCashFlow           float64 `json:"free_cash_flow"`
	NetCashFromInvesting   float64 `json:"net_cash_from_investing"`
	NetCashFromFinancing   float64 `json:"net_cash_from_financing"`
	NetChangeInCash        float64 `json:"net_change_in_cash"`
	DividendsPaid          float64 `json:"dividends_paid"`
	CommonStockRepurchased float64 `json:"common_stock_repurchased"`
	DebtRepayment          float64 `json:"debt_repayment"`
}

// FinancialRatios holds profitability, liquidity, leverage and valuation ratios for a period.
type FinancialRatios struct {
	Date                  string  `json:"date"`
	FiscalYear            string  `json:"fiscal_year"`
	Period                string  `json:"period"`
	GrossProfitMargin     float64 `json:"gross_profit_margin"`
	OperatingProfitMargin float64 `json:"operating_profit_margin"`
	NetProfitMargin       float64 `json:"net_profit_margin"`
	ReturnOnEquity        float64 `json:"return_on_equity"`
	ReturnOnAssets        float64 `json:"return_on_assets"`
	CurrentRatio          float64 `json:"current_ratio"`
	QuickRatio            float64 `json:"quick_ratio"`
	CashRatio             float64 `json:"cash_ratio"`
	DebtRatio             float64 `json:"debt_ratio"`
	DebtEquityRatio       float64 `json:"debt_equity_ratio"`
	AssetTurnover         float64 `json:"asset_turnover"`
	InventoryTurnover     float64 `json:"inventory_turnover"`
	PriceEarningsRatio    float64 `json:"price_earnings_ratio"`
	PriceToBookRatio      float64 `json:"price_to_book_ratio"`
}

// KeyMetrics holds per-share and valuation metrics for a period.
type KeyMetrics struct {
	Date                      string  `json:"date"`
	FiscalYear                string  `json:"fiscal_year"`
	Period                    string  `json:"period"`
	MarketCap                 float64 `json:"market_cap"`
	PERatio                   float64 `json:"pe_ratio"`
	PriceToSalesRatio         float64 `json:"price_to_sales_ratio"`
	PBRatio                   float64 `json:"pb_ratio"`
	EVToEBITDA                float64 `json:"ev_to_ebitda"`
	RevenuePerShare           float64 `json:"revenue_per_share"`
	NetIncomePerShare         float64 `json:"net_income_per_share"`
	BookValuePerShare         float64 `json:"book_value_per_share"`
	OperatingCashFlowPerShare float64 `json:"operating_cash_flow_per_share"`
	FreeCashFlowPerShare      float64 `json:"free_cash_flow_per_share"`
	DividendYield             float64 `json:"dividend_yield"`
	PayoutRatio               float64 `json:"payout_ratio"`
	Beta                      float64 `json:"beta"`
	StockPrice                float64 `json:"stock_price"`
	SharesOutstanding         float64 `json:"shares_outstanding"`
}
