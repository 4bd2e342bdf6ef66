// Package models defines data structures for Vantage
package models

import "time"

// Quote is a real-time price snapshot for one symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	DayLow        float64   `json:"day_low"`
	DayHigh       float64   `json:"day_high"`
	YearLow       float64   `json:"year_low"`
	YearHigh      float64   `json:"year_high"`
	MarketCap     float64   `json:"market_cap"`
	Volume        int64     `json:"volume"`
	AvgVolume     int64     `json:"avg_volume"`
	Open          float64   `json:"open"`
	PreviousClose float64   `json:"previous_close"`
	EPS           float64   `json:"eps"`
	PE            float64   `json:"pe"`
	Timestamp     time.Time `json:"timestamp"`
}

// QuoteResult is one entry of a multi-symbol quote request.
// Exactly one of Quote or Error is set.
type QuoteResult struct {
	Symbol string `json:"symbol"`
	Quote  *Quote `json:"quote,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SymbolMatch is a symbol search hit.
type SymbolMatch struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Currency          string `json:"currency"`
	Exchange          string `json:"exchange"`
	ExchangeShortName string `json:"exchange_short_name"`
}
