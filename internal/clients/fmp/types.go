package fmp

// Wire types for FMP responses. Stable and legacy field names are both
// accepted where they differ.

type quoteResponse struct {
	Symbol            string      `json:"symbol"`
	Name              string      `json:"name"`
	Price             flexFloat64 `json:"price"`
	Change            flexFloat64 `json:"change"`
	ChangePercentage  flexFloat64 `json:"changePercentage"`
	ChangesPercentage flexFloat64 `json:"changesPercentage"`
	DayLow            flexFloat64 `json:"dayLow"`
	DayHigh           flexFloat64 `json:"dayHigh"`
	YearLow           flexFloat64 `json:"yearLow"`
	YearHigh          flexFloat64 `json:"yearHigh"`
	MarketCap         flexFloat64 `json:"marketCap"`
	Volume            flexFloat64 `json:"volume"`
	AvgVolume         flexFloat64 `json:"avgVolume"`
	Open              flexFloat64 `json:"open"`
	PreviousClose     flexFloat64 `json:"previousClose"`
	EPS               flexFloat64 `json:"eps"`
	PE                flexFloat64 `json:"pe"`
	Timestamp         flexFloat64 `json:"timestamp"`
}

type searchResponse struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Currency          string `json:"currency"`
	StockExchange     string `json:"stockExchange"`
	ExchangeFullName  string `json:"exchangeFullName"`
	ExchangeShortName string `json:"exchangeShortName"`
	Exchange          string `json:"exchange"`
}

type profileResponse struct {
	Symbol            string      `json:"symbol"`
	CompanyName       string      `json:"companyName"`
	Price             flexFloat64 `json:"price"`
	MktCap            flexFloat64 `json:"mktCap"`
	MarketCap         flexFloat64 `json:"marketCap"`
	Beta              flexFloat64 `json:"beta"`
	Currency          string      `json:"currency"`
	Sector            string      `json:"sector"`
	Industry          string      `json:"industry"`
	Website           string      `json:"website"`
	Description       string      `json:"description"`
	CEO               string      `json:"ceo"`
	FullTimeEmployees flexFloat64 `json:"fullTimeEmployees"`
	City              string      `json:"city"`
	State             string      `json:"state"`
	Country           string      `json:"country"`
	ExchangeShortName string      `json:"exchangeShortName"`
	Exchange          string      `json:"exchange"`
	IPODate           string      `json:"ipoDate"`
}

// periodFields are shared by every statement response.
type periodFields struct {
	Date         string `json:"date"`
	FiscalYear   string `json:"fiscalYear"`
	CalendarYear string `json:"calendarYear"`
	Period       string `json:"period"`
}

func (p periodFields) year() string {
	return firstNonEmpty(p.FiscalYear, p.CalendarYear)
}

type incomeResponse struct {
	periodFields
	Revenue                  flexFloat64 `json:"revenue"`
	CostOfRevenue            flexFloat64 `json:"costOfRevenue"`
	GrossProfit              flexFloat64 `json:"grossProfit"`
	GrossProfitRatio         flexFloat64 `json:"grossProfitRatio"`
	OperatingExpenses        flexFloat64 `json:"operatingExpenses"`
	OperatingIncome          flexFloat64 `json:"operatingIncome"`
	OperatingIncomeRatio     flexFloat64 `json:"operatingIncomeRatio"`
	NetIncome                flexFloat64 `json:"netIncome"`
	NetIncomeRatio           flexFloat64 `json:"netIncomeRatio"`
	EPS                      flexFloat64 `json:"eps"`
	EPSDiluted               flexFloat64 `json:"epsdiluted"`
	EPSDilutedStable         flexFloat64 `json:"epsDiluted"`
	EBITDA                   flexFloat64 `json:"ebitda"`
	EBITDARatio              flexFloat64 `json:"ebitdaratio"`
	IncomeBeforeTax          flexFloat64 `json:"incomeBeforeTax"`
	IncomeTaxExpense         flexFloat64 `json:"incomeTaxExpense"`
	InterestExpense          flexFloat64 `json:"interestExpense"`
	WeightedAverageShsOutDil flexFloat64 `json:"weightedAverageShsOutDil"`
}

type balanceResponse struct {
	periodFields
	CashAndCashEquivalents  flexFloat64 `json:"cashAndCashEquivalents"`
	ShortTermInvestments    flexFloat64 `json:"shortTermInvestments"`
	TotalCurrentAssets      flexFloat64 `json:"totalCurrentAssets"`
	TotalAssets             flexFloat64 `json:"totalAssets"`
	TotalCurrentLiabilities flexFloat64 `json:"totalCurrentLiabilities"`
	TotalLiabilities        flexFloat64 `json:"totalLiabilities"`
	ShortTermDebt           flexFloat64 `json:"shortTermDebt"`
	LongTermDebt            flexFloat64 `json:"longTermDebt"`
	TotalDebt               flexFloat64 `json:"totalDebt"`
	TotalStockholdersEquity flexFloat64 `json:"totalStockholdersEquity"`
	RetainedEarnings        flexFloat64 `json:"retainedEarnings"`
	TotalEquity             flexFloat64 `json:"totalEquity"`
}

type cashFlowResponse struct {
	periodFields
	OperatingCashFlow                        flexFloat64 `json:"operatingCashFlow"`
	CapitalExpenditure                       flexFloat64 `json:"capitalExpenditure"`
	FreeCashFlow                             flexFloat64 `json:"freeCashFlow"`
	NetCashUsedForInvestingActivites         flexFloat64 `json:"netCashUsedForInvestingActivites"`
	NetCashProvidedByInvestingActivities     flexFloat64 `json:"netCashProvidedByInvestingActivities"`
	NetCashUsedProvidedByFinancingActivities flexFloat64 `json:"netCashUsedProvidedByFinancingActivities"`
	NetCashProvidedByFinancingActivities     flexFloat64 `json:"netCashProvidedByFinancingActivities"`
	NetChangeInCash                          flexFloat64 `json:"netChangeInCash"`
	DividendsPaid                            flexFloat64 `json:"dividendsPaid"`
	CommonStockRepurchased                   flexFloat64 `json:"commonStockRepurchased"`
	DebtRepayment                            flexFloat64 `json:"debtRepayment"`
}

type ratiosResponse struct {
	periodFields
	GrossProfitMargin     flexFloat64 `json:"grossProfitMargin"`
	OperatingProfitMargin flexFloat64 `json:"operatingProfitMargin"`
	NetProfitMargin       flexFloat64 `json:"netProfitMargin"`
	ReturnOnEquity        flexFloat64 `json:"returnOnEquity"`
	ReturnOnAssets        flexFloat64 `json:"returnOnAssets"`
	CurrentRatio          flexFloat64 `json:"currentRatio"`
	QuickRatio            flexFloat64 `json:"quickRatio"`
	CashRatio             flexFloat64 `json:"cashRatio"`
	DebtRatio             flexFloat64 `json:"debtRatio"`
	DebtToAssetsRatio     flexFloat64 `json:"debtToAssetsRatio"`
	DebtEquityRatio       flexFloat64 `json:"debtEquityRatio"`
	DebtToEquityRatio     flexFloat64 `json:"debtToEquityRatio"`
	AssetTurnover         flexFloat64 `json:"assetTurnover"`
	InventoryTurnover     flexFloat64 `json:"inventoryTurnover"`
	PriceEarningsRatio    flexFloat64 `json:"priceEarningsRatio"`
	PriceToEarningsRatio  flexFloat64 `json:"priceToEarningsRatio"`
	PriceToBookRatio      flexFloat64 `json:"priceToBookRatio"`
}

type keyMetricsResponse struct {
	periodFields
	MarketCap                 flexFloat64 `json:"marketCap"`
	PERatio                   flexFloat64 `json:"peRatio"`
	PriceToSalesRatio         flexFloat64 `json:"priceToSalesRatio"`
	PBRatio                   flexFloat64 `json:"pbRatio"`
	EnterpriseValueOverEBITDA flexFloat64 `json:"enterpriseValueOverEBITDA"`
	EVToEBITDA                flexFloat64 `json:"evToEBITDA"`
	RevenuePerShare           flexFloat64 `json:"revenuePerShare"`
	NetIncomePerShare         flexFloat64 `json:"netIncomePerShare"`
	BookValuePerShare         flexFloat64 `json:"bookValuePerShare"`
	OperatingCashFlowPerShare flexFloat64 `json:"operatingCashFlowPerShare"`
	FreeCashFlowPerShare      flexFloat64 `json:"freeCashFlowPerShare"`
	DividendYield             flexFloat64 `json:"dividendYield"`
	PayoutRatio               flexFloat64 `json:"payoutRatio"`
	Beta                      flexFloat64 `json:"beta"`
	StockPrice                flexFloat64 `json:"stockPrice"`
	SharesOutstanding         flexFloat64 `json:"sharesOutstanding"`
}
