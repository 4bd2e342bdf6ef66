package fmp

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/bobmcallan/vantage/internal/models"
)

func statementParams(symbol, period string, limit int) url.Values {
	params := url.Values{}
	params.Set("symbol", normalizeSymbol(symbol))
	if period == "" {
		period = models.PeriodAnnual
	}
	params.Set("period", period)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}

// GetQuote retrieves a real-time quote
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	params := url.Values{}
	params.Set("symbol", normalizeSymbol(symbol))

	var resp []quoteResponse
	if err := c.get(ctx, "quote", params, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, ErrNoData
	}

	q := resp[0]
	quote := &models.Quote{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         float64(q.Price),
		Change:        float64(q.Change),
		ChangePercent: firstNonZero(q.ChangePercentage, q.ChangesPercentage),
		DayLow:        float64(q.DayLow),
		DayHigh:       float64(q.DayHigh),
		YearLow:       float64(q.YearLow),
		YearHigh:      float64(q.YearHigh),
		MarketCap:     float64(q.MarketCap),
		Volume:        int64(q.Volume),
		AvgVolume:     int64(q.AvgVolume),
		Open:          float64(q.Open),
		PreviousClose: float64(q.PreviousClose),
		EPS:           float64(q.EPS),
		PE:            float64(q.PE),
	}
	if q.Timestamp > 0 {
		quote.Timestamp = time.Unix(int64(q.Timestamp), 0).UTC()
	}
	return quote, nil
}

// SearchSymbols finds symbols and company names matching a query
func (c *Client) SearchSymbols(ctx context.Context, query string, limit int) ([]models.SymbolMatch, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	var resp []searchResponse
	if err := c.get(ctx, "search-symbol", params, &resp); err != nil {
		return nil, err
	}

	matches := make([]models.SymbolMatch, 0, len(resp))
	for _, r := range resp {
		matches = append(matches, models.SymbolMatch{
			Symbol:            r.Symbol,
			Name:              r.Name,
			Currency:          r.Currency,
			Exchange:          firstNonEmpty(r.ExchangeFullName, r.StockExchange),
			ExchangeShortName: firstNonEmpty(r.ExchangeShortName, r.Exchange),
		})
	}
	return matches, nil
}

// GetProfile retrieves the company profile
func (c *Client) GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	params := url.Values{}
	params.Set("symbol", normalizeSymbol(symbol))

	var resp []profileResponse
	if err := c.get(ctx, "profile", params, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, ErrNoData
	}

	p := resp[0]
	return &models.CompanyProfile{
		Symbol:      p.Symbol,
		CompanyName: p.CompanyName,
		Price:       float64(p.Price),
		MarketCap:   firstNonZero(p.MktCap, p.MarketCap),
		Beta:        float64(p.Beta),
		Currency:    p.Currency,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Website:     p.Website,
		Description: p.Description,
		CEO:         p.CEO,
		Employees:   int64(p.FullTimeEmployees),
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
		Exchange:    firstNonEmpty(p.ExchangeShortName, p.Exchange),
		IPODate:     p.IPODate,
	}, nil
}

// GetIncomeStatements retrieves income statements, newest first
func (c *Client) GetIncomeStatements(ctx context.Context, symbol, period string, limit int) ([]models.IncomeStatement, error) {
	var resp []incomeResponse
	if err := c.get(ctx, "income-statement", statementParams(symbol, period, limit), &resp); err != nil {
		return nil, err
	}

	out := make([]models.IncomeStatement, 0, len(resp))
	for _, r := range resp {
		out = append(out, models.IncomeStatement{
			Date:                     r.Date,
			FiscalYear:               r.year(),
			Period:                   r.Period,
			Revenue:                  float64(r.Revenue),
			CostOfRevenue:            float64(r.CostOfRevenue),
			GrossProfit:              float64(r.GrossProfit),
			GrossProfitRatio:         float64(r.GrossProfitRatio),
			OperatingExpenses:        float64(r.OperatingExpenses),
			OperatingIncome:          float64(r.OperatingIncome),
			OperatingIncomeRatio:     float64(r.OperatingIncomeRatio),
			NetIncome:                float64(r.NetIncome),
			NetIncomeRatio:           float64(r.NetIncomeRatio),
			EPS:                      float64(r.EPS),
			EPSDiluted:               firstNonZero(r.EPSDiluted, r.EPSDilutedStable),
			EBITDA:                   float64(r.EBITDA),
			EBITDARatio:              float64(r.EBITDARatio),
			IncomeBeforeTax:          float64(r.IncomeBeforeTax),
			IncomeTaxExpense:         float64(r.IncomeTaxExpense),
			InterestExpense:          float64(r.InterestExpense),
			WeightedAverageShsOutDil: float64(r.WeightedAverageShsOutDil),
		})
	}
	return out, nil
}

// GetBalanceSheets retrieves balance sheets, newest first
func (c *Client) GetBalanceSheets(ctx context.Context, symbol, period string, limit int) ([]models.BalanceSheet, error) {
	var resp []balanceResponse
	if err := c.get(ctx, "balance-sheet-statement", statementParams(symbol, period, limit), &resp); err != nil {
		return nil, err
	}

	out := make([]models.BalanceSheet, 0, len(resp))
	for _, r := range resp {
		out = append(out, models.BalanceSheet{
			Date:                    r.Date,
			FiscalYear:              r.year(),
			Period:                  r.Period,
			CashAndCashEquivalents:  float64(r.CashAndCashEquivalents),
			ShortTermInvestments:    float64(r.ShortTermInvestments),
			TotalCurrentAssets:      float64(r.TotalCurrentAssets),
			TotalAssets:             float64(r.TotalAssets),
			TotalCurrentLiabilities: float64(r.TotalCurrentLiabilities),
			TotalLiabilities:        float64(r.TotalLiabilities),
			ShortTermDebt:           float64(r.ShortTermDebt),
			LongTermDebt:            float64(r.LongTermDebt),
			TotalDebt:               float64(r.TotalDebt),
			TotalStockholdersEquity: float64(r.TotalStockholdersEquity),
			RetainedEarnings:        float64(r.RetainedEarnings),
			TotalEquity:             float64(r.TotalEquity),
		})
	}
	return out, nil
}

// GetCashFlowStatements retrieves cash flow statements, newest first
func (c *Client) GetCashFlowStatements(ctx context.Context, symbol, period string, limit int) ([]models.CashFlowStatement, error) {
	var resp []cashFlowResponse
	if err := c.get(ctx, "cash-flow-statement", statementParams(symbol, period, limit), &resp); err != nil {
		return nil, err
	}

	out := make([]models.CashFlowStatement, 0, len(resp))
	for _, r := range resp {
		out = append(out, models.CashFlowStatement{
			Date:                   r.Date,
			FiscalYear:             r.year(),
			Period:                 r.Period,
			OperatingCashFlow:      float64(r.OperatingCashFlow),
			CapitalExpenditure:     float64(r.CapitalExpenditure),
			FreeCashFlow:           float64(r.FreeCashFlow),
			NetCashFromInvesting:   firstNonZero(r.NetCashUsedForInvestingActivites, r.NetCashProvidedByInvestingActivities),
			NetCashFromFinancing:   firstNonZero(r.NetCashUsedProvidedByFinancingActivities, r.NetCashProvidedByFinancingActivities),
			NetChangeInCash:        float64(r.NetChangeInCash),
			DividendsPaid:          float64(r.DividendsPaid),
			CommonStockRepurchased: float64(r.CommonStockRepurchased),
			DebtRepayment:          float64(r.DebtRepayment),
		})
	}
	return out, nil
}

// GetRatios retrieves financial ratios, newest first
func (c *Client) GetRatios(ctx context.Context, symbol, period string, limit int) ([]models.FinancialRatios, error) {
	var resp []ratiosResponse
	if err := c.get(ctx, "ratios", statementParams(symbol, period, limit), &resp); err != nil {
		return nil, err
	}

	out := make([]models.FinancialRatios, 0, len(resp))
	for _, r := range resp {
		out = append(out, models.FinancialRatios{
			Date:                  r.Date,
			FiscalYear:            r.year(),
			Period:                r.Period,
			GrossProfitMargin:     float64(r.GrossProfitMargin),
			OperatingProfitMargin: float64(r.OperatingProfitMargin),
			NetProfitMargin:       float64(r.NetProfitMargin),
			ReturnOnEquity:        float64(r.ReturnOnEquity),
			ReturnOnAssets:        float64(r.ReturnOnAssets),
			CurrentRatio:          float64(r.CurrentRatio),
			QuickRatio:            float64(r.QuickRatio),
			CashRatio:             float64(r.CashRatio),
			DebtRatio:             firstNonZero(r.DebtRatio, r.DebtToAssetsRatio),
			DebtEquityRatio:       firstNonZero(r.DebtEquityRatio, r.DebtToEquityRatio),
			AssetTurnover:         float64(r.AssetTurnover),
			InventoryTurnover:     float64(r.InventoryTurnover),
			PriceEarningsRatio:    firstNonZero(r.PriceEarningsRatio, r.PriceToEarningsRatio),
			PriceToBookRatio:      float64(r.PriceToBookRatio),
		})
	}
	return out, nil
}

// GetKeyMetrics retrieves key per-share and valuation metrics, newest first
func (c *Client) GetKeyMetrics(ctx context.Context, symbol, period string, limit int) ([]models.KeyMetrics, error) {
	var resp []keyMetricsResponse
	if err := c.get(ctx, "key-metrics", statementParams(symbol, period, limit), &resp); err != nil {
		return nil, err
	}

	out := make([]models.KeyMetrics, 0, len(resp))
	for _, r := range resp {
		out = append(out, models.KeyMetrics{
			Date:                      r.Date,
			FiscalYear:                r.year(),
			Period:                    r.Period,
			MarketCap:                 float64(r.MarketCap),
			PERatio:                   float64(r.PERatio),
			PriceToSalesRatio:         float64(r.PriceToSalesRatio),
			PBRatio:                   float64(r.PBRatio),
			EVToEBITDA:                firstNonZero(r.EnterpriseValueOverEBITDA, r.EVToEBITDA),
			RevenuePerShare:           float64(r.RevenuePerShare),
			NetIncomePerShare:         float64(r.NetIncomePerShare),
			BookValuePerShare:         float64(r.BookValuePerShare),
			OperatingCashFlowPerShare: float64(r.OperatingCashFlowPerShare),
			FreeCashFlowPerShare:      float64(r.FreeCashFlowPerShare),
			DividendYield:             float64(r.DividendYield),
			PayoutRatio:               float64(r.PayoutRatio),
			Beta:                      float64(r.Beta),
			StockPrice:                float64(r.StockPrice),
			SharesOutstanding:         float64(r.SharesOutstanding),
		})
	}
	return out, nil
}
