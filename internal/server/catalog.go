package server

import (
	"github.com/bobmcallan/vantage/internal/models"
)

// buildToolCatalog returns the tool catalog describing every tool and its
// HTTP mapping. Served by GET /api/mcp/tools and registered on the MCP server.
func buildToolCatalog() []models.ToolDefinition {
	symbolParam := models.ParamDefinition{
		Name:        "symbol",
		Type:        "string",
		Description: "Stock ticker symbol (e.g., 'AAPL', 'MSFT')",
		Required:    true,
		In:          "path",
	}
	periodParam := models.ParamDefinition{
		Name:        "period",
		Type:        "string",
		Description: "Reporting period: 'annual' or 'quarter' (default: annual)",
		In:          "query",
	}
	limitParam := models.ParamDefinition{
		Name:        "limit",
		Type:        "number",
		Description: "Number of periods to return (default: 5, max: 100)",
		In:          "query",
	}
	projectionYearsParam := models.ParamDefinition{
		Name:        "projection_years",
		Type:        "number",
		Description: "Years to project free cash flow (default: 5, range 1-10)",
		In:          "query",
	}
	fcfGrowthParam := models.ParamDefinition{
		Name:        "fcf_growth_rate",
		Type:        "number",
		Description: "Annual FCF growth rate in percent. Defaults to the historical CAGR clamped to -10..30",
		In:          "query",
	}

	statement := func(name, description, path string) models.ToolDefinition {
		return models.ToolDefinition{
			Name:        name,
			Description: description,
			Method:      "GET",
			Path:        path,
			Params:      []models.ParamDefinition{symbolParam, periodParam, limitParam},
		}
	}

	tools := []models.ToolDefinition{
		// --- System ---
		{
			Name:        "get_version",
			Description: "Get the Vantage server version and status. Use this to verify connectivity.",
			Method:      "GET",
			Path:        "/api/version",
		},

		// --- Market data ---
		{
			Name:        "get_stock_price",
			Description: "Get the current stock price, day change, volume, 52-week range, market cap and P/E for a ticker.",
			Method:      "GET",
			Path:        "/api/quote/{symbol}",
			Params:      []models.ParamDefinition{symbolParam},
		},
		{
			Name:        "get_multiple_stocks",
			Description: "Get quotes for several tickers at once. Failed symbols are reported alongside successful quotes.",
			Method:      "GET",
			Path:        "/api/quotes",
			Params: []models.ParamDefinition{
				{
					Name:        "symbols",
					Type:        "string",
					Description: "Comma-separated ticker symbols (e.g., 'AAPL,MSFT,GOOGL')",
					Required:    true,
					In:          "query",
				},
			},
		},
		{
			Name:        "search_stock",
			Description: "Search for ticker symbols by company name or partial symbol.",
			Method:      "GET",
			Path:        "/api/search",
			Params: []models.ParamDefinition{
				{
					Name:        "query",
					Type:        "string",
					Description: "Company name or symbol fragment (e.g., 'apple')",
					Required:    true,
					In:          "query",
				},
				{
					Name:        "limit",
					Type:        "number",
					Description: "Maximum matches (default: 10, max: 50)",
					In:          "query",
				},
			},
		},

		// --- Company fundamentals ---
		{
			Name:        "get_company_profile",
			Description: "Get the company profile: name, sector, industry, CEO, employees, market cap, beta and description.",
			Method:      "GET",
			Path:        "/api/companies/{symbol}/profile",
			Params:      []models.ParamDefinition{symbolParam},
		},
		statement("get_income_statement",
			"Get income statements: revenue, gross profit, operating income, net income, EPS, interest and tax expense.",
			"/api/companies/{symbol}/income-statements"),
		statement("get_balance_sheet",
			"Get balance sheets: cash, assets, liabilities, total debt, net debt and shareholders' equity.",
			"/api/companies/{symbol}/balance-sheets"),
		statement("get_cash_flow_statement",
			"Get cash flow statements: operating cash flow, capital expenditure, free cash flow and dividends paid.",
			"/api/companies/{symbol}/cash-flows"),
		statement("get_financial_ratios",
			"Get financial ratios: margins, returns, liquidity, leverage and valuation multiples.",
			"/api/companies/{symbol}/ratios"),
		statement("get_key_metrics",
			"Get key metrics: market cap, enterprise value, per-share values, yields and beta.",
			"/api/companies/{symbol}/key-metrics"),
		{
			Name:        "get_comprehensive_analysis",
			Description: "Get a multi-year analysis combining profile, income statements, balance sheets, cash flows, ratios and key metrics.",
			Method:      "GET",
			Path:        "/api/companies/{symbol}/analysis",
			Params: []models.ParamDefinition{
				symbolParam,
				{
					Name:        "years",
					Type:        "number",
					Description: "Years of history (default: 3, max: 10)",
					In:          "query",
				},
			},
		},

		// --- Valuation ---
		{
			Name:        "calculate_wacc",
			Description: "Calculate the weighted average cost of capital using CAPM for equity and interest expense over debt for debt.",
			Method:      "GET",
			Path:        "/api/companies/{symbol}/wacc",
			Params: []models.ParamDefinition{
				symbolParam,
				{
					Name:        "risk_free_rate",
					Type:        "number",
					Description: "Risk-free rate in percent (default: 4.5)",
					In:          "query",
				},
				{
					Name:        "equity_risk_premium",
					Type:        "number",
					Description: "Equity risk premium in percent (default: 5.5)",
					In:          "query",
				},
			},
		},
		{
			Name:        "perform_dcf_analysis",
			Description: "Run a discounted cash flow valuation: intrinsic value per share, target price, upside and a BUY/HOLD/SELL recommendation. The run is recorded in valuation history.",
			Method:      "GET",
			Path:        "/api/companies/{symbol}/dcf",
			Params: []models.ParamDefinition{
				symbolParam,
				projectionYearsParam,
				fcfGrowthParam,
				{
					Name:        "terminal_growth_rate",
					Type:        "number",
					Description: "Perpetual growth rate in percent (default: 2.5, range 0-5)",
					In:          "query",
				},
				{
					Name:        "discount_rate",
					Type:        "number",
					Description: "Discount rate in percent. Defaults to the calculated WACC",
					In:          "query",
				},
				{
					Name:        "margin_of_safety",
					Type:        "number",
					Description: "Margin of safety in percent applied to the target price (default: 20, range 0-50)",
					In:          "query",
				},
			},
		},
		{
			Name:        "dcf_sensitivity_analysis",
			Description: "Show how intrinsic value per share changes across discount rates and terminal growth rates.",
			Method:      "GET",
			Path:        "/api/companies/{symbol}/sensitivity",
			Params: []models.ParamDefinition{
				symbolParam,
				{
					Name:        "terminal_growth_range",
					Type:        "string",
					Description: "Comma-separated terminal growth rates in percent (default: '1.5,2.0,2.5,3.0,3.5')",
					In:          "query",
				},
				{
					Name:        "discount_rate_range",
					Type:        "string",
					Description: "Comma-separated discount rates in percent (default: '8,9,10,11,12')",
					In:          "query",
				},
				projectionYearsParam,
				fcfGrowthParam,
			},
		},
		{
			Name:        "research_note",
			Description: "Write a narrative equity research note from the comprehensive analysis and DCF valuation.",
			Method:      "GET",
			Path:        "/api/companies/{symbol}/note",
			Params:      []models.ParamDefinition{symbolParam},
		},
		{
			Name:        "get_valuation_history",
			Description: "List recorded DCF valuations for a ticker, newest first.",
			Method:      "GET",
			Path:        "/api/companies/{symbol}/valuations",
			Params: []models.ParamDefinition{
				symbolParam,
				{
					Name:        "limit",
					Type:        "number",
					Description: "Maximum records (default: 20, max: 100)",
					In:          "query",
				},
			},
		},
		{
			Name:        "get_valuation",
			Description: "Get one recorded DCF valuation by ID, including its projections.",
			Method:      "GET",
			Path:        "/api/valuations/{valuation_id}",
			Params: []models.ParamDefinition{
				{
					Name:        "valuation_id",
					Type:        "string",
					Description: "Valuation ID (e.g., 'val_1a2b3c4d')",
					Required:    true,
					In:          "path",
				},
			},
		},
	}

	tools = append(tools, mathTools()...)

	// --- Web ---
	for _, def := range []struct{ name, description, path string }{
		{"web_search", "Search the web for current information on a company, industry or topic.", "/api/web/search"},
		{"web_search_news", "Search news from the past week.", "/api/web/news"},
	} {
		tools = append(tools, models.ToolDefinition{
			Name:        def.name,
			Description: def.description,
			Method:      "GET",
			Path:        def.path,
			Params: []models.ParamDefinition{
				{
					Name:        "query",
					Type:        "string",
					Description: "Search query",
					Required:    true,
					In:          "query",
				},
				{
					Name:        "max_results",
					Type:        "number",
					Description: "Maximum results (default: 5, max: 10)",
					In:          "query",
				},
			},
		})
	}

	return tools
}

// mathTools describes the arithmetic helpers, one tool per operation.
func mathTools() []models.ToolDefinition {
	number := func(name, description string) models.ParamDefinition {
		return models.ParamDefinition{Name: name, Type: "number", Description: description, Required: true, In: "body"}
	}
	numbers := models.ParamDefinition{
		Name:        "numbers",
		Type:        "array",
		Items:       "number",
		Description: "List of numbers",
		Required:    true,
		In:          "body",
	}
	pair := []models.ParamDefinition{number("a", "First number"), number("b", "Second number")}

	tool := func(name, description string, params ...models.ParamDefinition) models.ToolDefinition {
		return models.ToolDefinition{
			Name:        name,
			Description: description,
			Method:      "POST",
			Path:        "/api/math/" + name,
			Params:      params,
		}
	}

	return []models.ToolDefinition{
		tool("add", "Add two numbers.", pair...),
		tool("subtract", "Subtract b from a.", pair...),
		tool("multiply", "Multiply two numbers.", pair...),
		tool("divide", "Divide a by b. Fails when b is zero.", pair...),
		tool("percentage", "Calculate a percentage of a value.",
			number("value", "Base value"), number("percent", "Percentage to take")),
		tool("percentage_change", "Calculate the percentage change from an old value to a new value.",
			number("old_value", "Original value"), number("new_value", "New value")),
		tool("average", "Calculate the average of a list of numbers.", numbers),
		tool("compound_growth", "Calculate compound growth: principal * (1 + rate/100)^periods.",
			number("principal", "Starting value"), number("rate", "Growth rate per period in percent"),
			number("periods", "Number of periods")),
		tool("ratio", "Calculate the ratio a:b.", pair...),
		tool("sum_list", "Sum a list of numbers.", numbers),
	}
}
