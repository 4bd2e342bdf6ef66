// Package common provides shared utilities for Vantage
package common

import "time"

// Freshness TTLs for cached FMP responses
const (
	FreshnessQuote      = 1 * time.Minute
	FreshnessSearch     = 24 * time.Hour
	FreshnessProfile    = 24 * time.Hour
	FreshnessStatements = 1 * time.Hour
)
