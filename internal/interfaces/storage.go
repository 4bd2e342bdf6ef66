// Package interfaces defines service contracts for Vantage
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/vantage/internal/models"
)

// ResponseCache stores raw upstream response bodies keyed by request
type ResponseCache interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value for the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases backend resources
	Close() error
}

// ValuationStore persists DCF runs for later review
type ValuationStore interface {
	// Save stores a record, assigning an ID and CreatedAt when empty
	Save(ctx context.Context, record *models.ValuationRecord) error

	// Get returns a record by ID, or nil if not found
	Get(ctx context.Context, id string) (*models.ValuationRecord, error)

	// ListBySymbol returns records for a symbol, newest first
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*models.ValuationRecord, error)

	// DeleteBySymbol removes all records for a symbol and returns the count deleted
	DeleteBySymbol(ctx context.Context, symbol string) (int, error)

	// Close releases the connection
	Close() error
}
