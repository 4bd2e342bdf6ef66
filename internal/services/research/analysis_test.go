package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComprehensiveAnalysis_Summary(t *testing.T) {
	f := newFakeFMP()
	svc := newTestService(f, nil, nil)

	a, err := svc.ComprehensiveAnalysis(context.Background(), "acme", 0)
	require.NoError(t, err)

	assert.Equal(t, "ACME", a.Symbol)
	assert.Equal(t, "Acme Corp", a.Summary.CompanyName)
	assert.Equal(t, "Industrials", a.Summary.Sector)
	assert.Equal(t, "Machinery", a.Summary.Industry)
	assert.Equal(t, 20.0, a.Summary.Price)
	assert.Equal(t, 800.0, a.Summary.MarketCap)
	assert.Equal(t, DefaultAnalysisYears, a.Summary.YearsAnalyzed)
	assert.Equal(t, "2025", a.Summary.LatestFiscalYear)
	assert.Empty(t, a.Failures)
	assert.Len(t, a.CashFlows, 3)
	assert.Equal(t, fixedNow, a.GeneratedAt)

	for _, m := range []string{"income", "balance", "cashflow", "ratios", "metrics"} {
		assert.Equal(t, DefaultAnalysisYears, f.lastLimit(m), m)
	}
}

func TestComprehensiveAnalysis_ClampsYears(t *testing.T) {
	f := newFakeFMP()
	svc := newTestService(f, nil, nil)

	a, err := svc.ComprehensiveAnalysis(context.Background(), "ACME", 50)
	require.NoError(t, err)
	assert.Equal(t, MaxAnalysisYears, a.Summary.YearsAnalyzed)
	assert.Equal(t, MaxAnalysisYears, f.lastLimit("income"))
}

func TestComprehensiveAnalysis_CollectsCriticalFailures(t *testing.T) {
	f := newFakeFMP()
	f.errs["profile"] = errUpstream
	f.errs["cashflow"] = errUpstream
	svc := newTestService(f, nil, nil)

	_, err := svc.ComprehensiveAnalysis(context.Background(), "ACME", 3)

	var partial *PartialDataError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "ACME", partial.Symbol)
	assert.Equal(t, []string{"Profile: upstream down", "Cash Flow: upstream down"}, partial.Failures)
	assert.Contains(t, err.Error(), "failed to retrieve some financial data for ACME")
}

func TestComprehensiveAnalysis_ToleratesOptionalFailures(t *testing.T) {
	f := newFakeFMP()
	f.errs["ratios"] = errUpstream
	f.errs["metrics"] = errUpstream
	svc := newTestService(f, nil, nil)

	a, err := svc.ComprehensiveAnalysis(context.Background(), "ACME", 3)
	require.NoError(t, err)
	assert.NotNil(t, a.Ratios)
	assert.Empty(t, a.Ratios)
	assert.NotNil(t, a.KeyMetrics)
	assert.Empty(t, a.KeyMetrics)
}

func TestComprehensiveAnalysis_CancelledContext(t *testing.T) {
	f := newFakeFMP()
	svc := newTestService(f, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ComprehensiveAnalysis(ctx, "ACME", 3)
	assert.ErrorIs(t, err, context.Canceled)
}
