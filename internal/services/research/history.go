package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/vantage/internal/models"
)

// ValuationHistory lists stored DCF runs for a symbol, newest first.
func (s *Service) ValuationHistory(ctx context.Context, symbol string, limit int) ([]*models.ValuationRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("valuation history: %w", ErrNotConfigured)
	}
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListBySymbol(ctx, sym, clampInt(limit, DefaultHistoryLimit, MaxHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list valuations: %w", err)
	}
	if records == nil {
		records = []*models.ValuationRecord{}
	}
	return records, nil
}

// GetValuation returns one stored DCF run.
func (s *Service) GetValuation(ctx context.Context, id string) (*models.ValuationRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("valuation history: %w", ErrNotConfigured)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("valuation %w", ErrNotFound)
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get valuation: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("valuation %s %w", id, ErrNotFound)
	}
	return record, nil
}

// ClearValuationHistory deletes every stored DCF run for a symbol and returns the count removed.
func (s *Service) ClearValuationHistory(ctx context.Context, symbol string) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("valuation history: %w", ErrNotConfigured)
	}
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return 0, err
	}

	n, err := s.store.DeleteBySymbol(ctx, sym)
	if err != nil {
		return 0, fmt.Errorf("failed to clear valuations: %w", err)
	}
	s.logger.Info().Str("symbol", sym).Int("deleted", n).Msg("Valuation history cleared")
	return n, nil
}
