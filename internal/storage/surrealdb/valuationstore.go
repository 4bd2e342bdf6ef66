package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
	"github.com/bobmcallan/vantage/internal/models"
)

const (
	valuationTable = "valuation"

	DefaultListLimit = 20
	MaxListLimit     = 100
)

// valuationSelectFields lists the fields to select from valuation. The record
// ID lives in valuation_id so CONTENT never carries a conflicting id field.
const valuationSelectFields = `valuation_id, symbol, intrinsic_value, target_price, current_price,
	upside_percent, recommendation, discount_rate, terminal_growth_rate, result, created_at`

// valuationRow is the stored shape of a ValuationRecord.
type valuationRow struct {
	ValuationID        string            `json:"valuation_id"`
	Symbol             string            `json:"symbol"`
	IntrinsicValue     float64           `json:"intrinsic_value"`
	TargetPrice        float64           `json:"target_price"`
	CurrentPrice       float64           `json:"current_price"`
	UpsidePercent      float64           `json:"upside_percent"`
	Recommendation     string            `json:"recommendation"`
	DiscountRate       float64           `json:"discount_rate"`
	TerminalGrowthRate float64           `json:"terminal_growth_rate"`
	Result             *models.DCFResult `json:"result,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

func toRow(r *models.ValuationRecord) valuationRow {
	return valuationRow{
		ValuationID:        r.ID,
		Symbol:             r.Symbol,
		IntrinsicValue:     r.IntrinsicValue,
		TargetPrice:        r.TargetPrice,
		CurrentPrice:       r.CurrentPrice,
		UpsidePercent:      r.UpsidePercent,
		Recommendation:     r.Recommendation,
		DiscountRate:       r.DiscountRate,
		TerminalGrowthRate: r.TerminalGrowthRate,
		Result:             r.Result,
		CreatedAt:          r.CreatedAt,
	}
}

func (row *valuationRow) record() *models.ValuationRecord {
	return &models.ValuationRecord{
		ID:                 row.ValuationID,
		Symbol:             row.Symbol,
		IntrinsicValue:     row.IntrinsicValue,
		TargetPrice:        row.TargetPrice,
		CurrentPrice:       row.CurrentPrice,
		UpsidePercent:      row.UpsidePercent,
		Recommendation:     row.Recommendation,
		DiscountRate:       row.DiscountRate,
		TerminalGrowthRate: row.TerminalGrowthRate,
		Result:             row.Result,
		CreatedAt:          row.CreatedAt,
	}
}

// ValuationStore implements interfaces.ValuationStore using SurrealDB.
type ValuationStore struct {
	db     *surrealdb.DB
	logger *common.Logger
	now    func() time.Time
}

var _ interfaces.ValuationStore = (*ValuationStore)(nil)

// NewValuationStore creates a new ValuationStore.
func NewValuationStore(db *surrealdb.DB, logger *common.Logger) *ValuationStore {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &ValuationStore{db: db, logger: logger, now: time.Now}
}

func (s *ValuationStore) Save(ctx context.Context, record *models.ValuationRecord) error {
	if record.ID == "" {
		record.ID = fmt.Sprintf("val_%s", uuid.New().String()[:8])
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	record.Symbol = strings.ToUpper(record.Symbol)
	if record.Result != nil {
		record.Result.ValuationID = record.ID
	}

	sql := "UPSERT $rid CONTENT $row"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID(valuationTable, record.ID),
		"row": toRow(record),
	}

	if _, err := surrealdb.Query[[]valuationRow](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save valuation: %w", err)
	}

	s.logger.Debug().Str("id", record.ID).Str("symbol", record.Symbol).Msg("Valuation saved")
	return nil
}

func (s *ValuationStore) Get(ctx context.Context, id string) (*models.ValuationRecord, error) {
	sql := "SELECT " + valuationSelectFields + " FROM $rid"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID(valuationTable, id),
	}

	results, err := surrealdb.Query[[]valuationRow](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get valuation: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return (*results)[0].Result[0].record(), nil
}

func (s *ValuationStore) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*models.ValuationRecord, error) {
	if limit < 1 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	// valuation_id as tiebreaker for deterministic ordering when timestamps are equal
	sql := "SELECT " + valuationSelectFields + " FROM valuation WHERE symbol = $symbol ORDER BY created_at DESC, valuation_id DESC LIMIT $limit"
	vars := map[string]any{
		"symbol": strings.ToUpper(symbol),
		"limit":  limit,
	}

	results, err := surrealdb.Query[[]valuationRow](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuations: %w", err)
	}

	items := make([]*models.ValuationRecord, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, (*results)[0].Result[i].record())
		}
	}
	return items, nil
}

func (s *ValuationStore) DeleteBySymbol(ctx context.Context, symbol string) (int, error) {
	sql := "DELETE valuation WHERE symbol = $symbol RETURN BEFORE"
	vars := map[string]any{"symbol": strings.ToUpper(symbol)}

	results, err := surrealdb.Query[[]map[string]any](ctx, s.db, sql, vars)
	if err != nil && !isNotFoundError(err) {
		return 0, fmt.Errorf("failed to delete valuations: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	return count, nil
}

// Close closes the underlying connection.
func (s *ValuationStore) Close() error {
	return s.db.Close(context.Background())
}
