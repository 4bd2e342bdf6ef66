package models

// CompanyProfile describes a listed company.
type CompanyProfile struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	Price       float64 `json:"price"`
	MarketCap   float64 `json:"market_cap"`
	Beta        float64 `json:"beta"`
	Currency    string  `json:"currency,omitempty"`
	Sector      string  `json:"sector"`
	Industry    string  `json:"industry"`
	Website     string  `json:"website,omitempty"`
	Description string  `json:"description,omitempty"`
	CEO         string  `json:"ceo,omitempty"`
	Employees   int64   `json:"employees,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Country     string  `json:"country,omitempty"`
	Exchange    string  `json:"exchange,omitempty"`
	IPODate     string  `json:"ipo_date,omitempty"`
}

// SharesFromMarketCap derives shares outstanding from market cap and price.
func (p *CompanyProfile) SharesFromMarketCap() float64 {
	if p == nil || p.Price <= 0 {
		return 0
	}
	return p.MarketCap / p.Price
}
