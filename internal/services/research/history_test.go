package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vantage/internal/models"
)

func TestValuationHistory_NotConfigured(t *testing.T) {
	svc := newTestService(newFakeFMP(), nil, nil)

	_, err := svc.ValuationHistory(context.Background(), "ACME", 10)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.GetValuation(context.Background(), "val_1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestValuationHistory(t *testing.T) {
	store := &fakeStore{records: []*models.ValuationRecord{
		{ID: "val_1", Symbol: "ACME"},
		{ID: "val_2", Symbol: "OTHER"},
	}}
	svc := newTestService(newFakeFMP(), store, nil)

	records, err := svc.ValuationHistory(context.Background(), "acme", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "val_1", records[0].ID)

	records, err = svc.ValuationHistory(context.Background(), "NONE", 5)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGetValuation(t *testing.T) {
	store := &fakeStore{records: []*models.ValuationRecord{{ID: "val_1", Symbol: "ACME"}}}
	svc := newTestService(newFakeFMP(), store, nil)

	rec, err := svc.GetValuation(context.Background(), "val_1")
	require.NoError(t, err)
	assert.Equal(t, "ACME", rec.Symbol)

	_, err = svc.GetValuation(context.Background(), "val_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetValuation(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearValuationHistory(t *testing.T) {
	store := &fakeStore{records: []*models.ValuationRecord{
		{ID: "val_1", Symbol: "ACME"},
		{ID: "val_2", Symbol: "OTHER"},
		{ID: "val_3", Symbol: "ACME"},
	}}
	svc := newTestService(newFakeFMP(), store, nil)

	n, err := svc.ClearValuationHistory(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := svc.ValuationHistory(context.Background(), "ACME", 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = svc.ValuationHistory(context.Background(), "OTHER", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClearValuationHistory_NotConfigured(t *testing.T) {
	svc := newTestService(newFakeFMP(), nil, nil)

	_, err := svc.ClearValuationHistory(context.Background(), "ACME")
	assert.ErrorIs(t, err, ErrNotConfigured)

	svc = newTestService(newFakeFMP(), &fakeStore{}, nil)
	_, err = svc.ClearValuationHistory(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}
