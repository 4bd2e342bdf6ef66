package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
)

// Manager owns the SurrealDB connection and the stores built on it.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	valuationStore *ValuationStore
}

// NewManager connects to SurrealDB, selects the namespace and database and
// defines the tables the stores use.
func NewManager(ctx context.Context, cfg common.StorageConfig, logger *common.Logger) (*Manager, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	// Connect to SurrealDB
	db, err := surrealdb.New(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	// Sign in
	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": cfg.Username,
		"pass": cfg.Password,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	// Select namespace and database
	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	if err := defineSchema(ctx, db); err != nil {
		db.Close(ctx)
		return nil, err
	}

	m := &Manager{
		db:             db,
		logger:         logger,
		valuationStore: NewValuationStore(db, logger),
	}

	logger.Info().
		Str("address", cfg.Address).
		Str("namespace", cfg.Namespace).
		Str("database", cfg.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// defineSchema creates tables and indexes (SurrealDB v3 errors on querying non-existent tables).
func defineSchema(ctx context.Context, db *surrealdb.DB) error {
	statements := []string{
		"DEFINE TABLE IF NOT EXISTS valuation SCHEMALESS",
		"DEFINE INDEX IF NOT EXISTS valuation_symbol ON valuation FIELDS symbol",
	}
	for _, sql := range statements {
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return fmt.Errorf("failed to define schema (%s): %w", sql, err)
		}
	}
	return nil
}

// ValuationStore returns the valuation history store.
func (m *Manager) ValuationStore() interfaces.ValuationStore {
	return m.valuationStore
}

// Close closes the database connection.
func (m *Manager) Close() error {
	return m.db.Close(context.Background())
}
