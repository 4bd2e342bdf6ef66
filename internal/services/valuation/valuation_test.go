package valuation

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vantage/internal/common"
)

func TestComputeWACC(t *testing.T) {
	res := ComputeWACC(WACCInputs{
		Beta:              1.2,
		MarketCap:         800,
		TotalDebt:         200,
		InterestExpense:   -10,
		IncomeTaxExpense:  21,
		IncomeBeforeTax:   100,
		RiskFreeRate:      4.5,
		EquityRiskPremium: 5.5,
	})

	assert.Equal(t, 11.1, res.CostOfEquity)
	assert.Equal(t, 21.0, res.TaxRate)
	assert.Equal(t, 5.0, res.CostOfDebtPreTax)
	assert.Equal(t, 3.95, res.CostOfDebtAfterTax)
	assert.Equal(t, 0.8, res.EquityWeight)
	assert.Equal(t, 0.2, res.DebtWeight)
	assert.Equal(t, 9.67, res.WACC)
	assert.Equal(t, 1.2, res.Beta)
}

func TestComputeWACC_MissingInputsUseFallbacks(t *testing.T) {
	res := ComputeWACC(WACCInputs{RiskFreeRate: 4.5, EquityRiskPremium: 5.5})

	assert.Equal(t, 1.0, res.Beta)
	assert.Equal(t, 10.0, res.CostOfEquity)
	assert.Equal(t, DefaultTaxRate, res.TaxRate)
	assert.Equal(t, DefaultCostOfDebt, res.CostOfDebtPreTax)
	assert.Equal(t, 1.0, res.EquityWeight)
	assert.Equal(t, 0.0, res.DebtWeight)
	assert.Equal(t, 10.0, res.WACC)
}

func TestCapitalWeights_SumToOne(t *testing.T) {
	for _, tc := range []struct{ e, d float64 }{{1, 0}, {0, 1}, {3e12, 1e11}, {5, 5}} {
		we, wd := CapitalWeights(tc.e, tc.d)
		assert.InDelta(t, 1.0, we+wd, 1e-12)
	}
}

func TestHistoricalGrowthRate(t *testing.T) {
	tests := []struct {
		name string
		fcf  []float64
		want float64
	}{
		{"cagr over two years", []float64{121, 110, 100}, 10},
		{"capped high", []float64{1000, 1}, MaxFCFGrowthRate},
		{"capped low", []float64{1, 1000}, MinFCFGrowthRate},
		{"single period", []float64{100}, DefaultFCFGrowthRate},
		{"non-positive oldest", []float64{100, -50}, DefaultFCFGrowthRate},
		{"sign flip newest", []float64{-50, 100}, DefaultFCFGrowthRate},
		{"zero oldest", []float64{100, 0}, DefaultFCFGrowthRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HistoricalGrowthRate(tt.fcf)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestProjectDCF_SingleYear(t *testing.T) {
	out, err := ProjectDCF(DCFInputs{
		BaseFCF:           100,
		GrowthRate:        10,
		DiscountRate:      10,
		Years:             1,
		SharesOutstanding: 1,
	})
	require.NoError(t, err)

	require.Len(t, out.Projections, 1)
	assert.InDelta(t, 110, out.Projections[0].FreeCashFlow, 1e-9)
	assert.InDelta(t, 1/1.1, out.Projections[0].DiscountFactor, 1e-12)
	assert.InDelta(t, 100, out.Projections[0].PresentValue, 1e-9)
	assert.InDelta(t, 1100, out.TerminalValue, 1e-9)
	assert.InDelta(t, 1000, out.PVTerminalValue, 1e-9)
	assert.InDelta(t, 1100, out.EnterpriseValue, 1e-9)
	assert.InDelta(t, 1100, out.IntrinsicValuePerShare, 1e-9)
}

func TestProjectDCF_EquityBridge(t *testing.T) {
	out, err := ProjectDCF(DCFInputs{
		BaseFCF:            100,
		DiscountRate:       10,
		TerminalGrowthRate: 2,
		Years:              2,
		TotalDebt:          50,
		Cash:               20,
		SharesOutstanding:  10,
	})
	require.NoError(t, err)

	assert.InDelta(t, 173.553719, out.SumPVCashFlows, 1e-6)
	assert.InDelta(t, 1275, out.TerminalValue, 1e-9)
	assert.InDelta(t, 1053.719008, out.PVTerminalValue, 1e-6)
	assert.InDelta(t, 1227.272727, out.EnterpriseValue, 1e-6)
	assert.InDelta(t, 1197.272727, out.EquityValue, 1e-6)
	assert.InDelta(t, 119.727273, out.IntrinsicValuePerShare, 1e-6)
}

func TestProjectDCF_NoSharesGivesZeroPerShare(t *testing.T) {
	out, err := ProjectDCF(DCFInputs{BaseFCF: 100, DiscountRate: 9, TerminalGrowthRate: 2, Years: 5})
	require.NoError(t, err)
	assert.Greater(t, out.EquityValue, 0.0)
	assert.Equal(t, 0.0, out.IntrinsicValuePerShare)
}

func TestProjectDCF_DiscountMustExceedTerminalGrowth(t *testing.T) {
	for _, dr := range []float64{2.5, 1} {
		_, err := ProjectDCF(DCFInputs{BaseFCF: 100, DiscountRate: dr, TerminalGrowthRate: 2.5, Years: 5, SharesOutstanding: 1})
		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr), "discount %v: expected InputError, got %v", dr, err)
		assert.Equal(t, "discount_rate", inputErr.Field)
	}
}

func TestProjectDCF_RequiresAYear(t *testing.T) {
	_, err := ProjectDCF(DCFInputs{BaseFCF: 100, DiscountRate: 10, Years: 0})
	assert.Error(t, err)
}

func TestProjectDCF_RejectsNonFiniteInputs(t *testing.T) {
	base := DCFInputs{BaseFCF: 100, DiscountRate: 10, TerminalGrowthRate: 2.5, Years: 5, SharesOutstanding: 1}
	tests := []struct {
		field string
		set   func(in *DCFInputs)
	}{
		{"discount_rate", func(in *DCFInputs) { in.DiscountRate = math.NaN() }},
		{"discount_rate", func(in *DCFInputs) { in.DiscountRate = math.Inf(1) }},
		{"terminal_growth_rate", func(in *DCFInputs) { in.TerminalGrowthRate = math.Inf(-1) }},
		{"fcf_growth_rate", func(in *DCFInputs) { in.GrowthRate = math.NaN() }},
		{"base_fcf", func(in *DCFInputs) { in.BaseFCF = math.Inf(1) }},
		{"shares_outstanding", func(in *DCFInputs) { in.SharesOutstanding = math.NaN() }},
	}
	for _, tt := range tests {
		in := base
		tt.set(&in)
		_, err := ProjectDCF(in)
		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr), "%s: expected InputError, got %v", tt.field, err)
		assert.Equal(t, tt.field, inputErr.Field)
	}
}

func TestProjectDCF_RejectsOverflow(t *testing.T) {
	_, err := ProjectDCF(DCFInputs{BaseFCF: 1e308, GrowthRate: 100, DiscountRate: 10, TerminalGrowthRate: 2, Years: 5, SharesOutstanding: 1})
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr), "expected InputError, got %v", err)
	assert.Equal(t, "valuation", inputErr.Field)
}

func TestRequireFinite(t *testing.T) {
	assert.NoError(t, RequireFinite("x", 0, -1e300, 42))
	assert.Error(t, RequireFinite("x", 1, math.NaN()))
	assert.Error(t, RequireFinite("x", math.Inf(-1)))
}

func TestClamps(t *testing.T) {
	assert.Equal(t, 5, ClampProjectionYears(0, 5))
	assert.Equal(t, 1, ClampProjectionYears(-4, 5))
	assert.Equal(t, 10, ClampProjectionYears(25, 5))
	assert.Equal(t, 7, ClampProjectionYears(7, 5))

	assert.Equal(t, 0.0, ClampTerminalGrowth(-1))
	assert.Equal(t, 5.0, ClampTerminalGrowth(8))
	assert.Equal(t, 2.5, ClampTerminalGrowth(2.5))

	assert.Equal(t, 0.0, ClampMarginOfSafety(-5))
	assert.Equal(t, 50.0, ClampMarginOfSafety(75))
}

func TestRecommend(t *testing.T) {
	intrinsic := 100.0
	target := TargetPrice(intrinsic, 20)
	assert.Equal(t, 80.0, target)

	tests := []struct {
		price float64
		want  string
	}{
		{0, RecNoPrice},
		{80, RecStrongBuy},
		{50, RecStrongBuy},
		{90, RecBuy},
		{100, RecHold},
		{109.99, RecHold},
		{110, RecOvervalued},
		{250, RecOvervalued},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Recommend(tt.price, intrinsic, target), "price %v", tt.price)
	}
}

func TestUpsidePercent(t *testing.T) {
	assert.Equal(t, 0.0, UpsidePercent(100, 0))
	assert.InDelta(t, 25.0, UpsidePercent(125, 100), 1e-9)
	assert.InDelta(t, -20.0, UpsidePercent(80, 100), 1e-9)
}

func TestSensitivityGrid(t *testing.T) {
	base := DCFInputs{BaseFCF: 100, Years: 1, SharesOutstanding: 1}
	discount := []float64{5, 10, 20}
	terminal := []float64{0, 5}

	got := SensitivityGrid(base, discount, terminal)

	f := func(v float64) *float64 { return &v }
	want := [][]*float64{
		{f(2000), nil},
		{f(1000), f(2000)},
		{f(500), f(666.67)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SensitivityGrid mismatch (-want +got):\n%s", diff)
	}

	bc := BaseCase(got, discount, terminal)
	assert.Equal(t, 10.0, bc.DiscountRate)
	assert.Equal(t, 5.0, bc.TerminalGrowthRate)
	require.NotNil(t, bc.IntrinsicValue)
	assert.Equal(t, 2000.0, *bc.IntrinsicValue)
}

func TestSensitivityGrid_DefaultRangesBaseCase(t *testing.T) {
	base := DCFInputs{BaseFCF: 1e9, GrowthRate: 5, Years: 5, SharesOutstanding: 1e8}
	grid := SensitivityGrid(base, DefaultDiscountRateRange, DefaultTerminalGrowthRange)

	require.Len(t, grid, 5)
	for _, row := range grid {
		require.Len(t, row, 5)
		for _, cell := range row {
			require.NotNil(t, cell)
		}
	}

	bc := BaseCase(grid, DefaultDiscountRateRange, DefaultTerminalGrowthRange)
	assert.Equal(t, 10.0, bc.DiscountRate)
	assert.Equal(t, 2.5, bc.TerminalGrowthRate)

	direct, err := ProjectDCF(DCFInputs{BaseFCF: 1e9, GrowthRate: 5, Years: 5, SharesOutstanding: 1e8, DiscountRate: 10, TerminalGrowthRate: 2.5})
	require.NoError(t, err)
	assert.Equal(t, Round(direct.IntrinsicValuePerShare, 2), *bc.IntrinsicValue)

	// higher discount rates lower the value along each column
	for j := range DefaultTerminalGrowthRange {
		for i := 1; i < len(grid); i++ {
			assert.Less(t, *grid[i][j], *grid[i-1][j])
		}
	}
}

func TestSensitivityGrid_ClampsTerminalGrowth(t *testing.T) {
	base := DCFInputs{BaseFCF: 100, Years: 5, SharesOutstanding: 1}
	grid := SensitivityGrid(base, []float64{8}, []float64{-2, 0, 5, 7})

	require.Len(t, grid, 1)
	row := grid[0]
	for _, cell := range row {
		require.NotNil(t, cell)
	}
	assert.Equal(t, *row[1], *row[0], "negative terminal growth should match 0")
	assert.Equal(t, *row[2], *row[3], "terminal growth above 5 should match 5")

	direct, err := ProjectDCF(DCFInputs{BaseFCF: 100, Years: 5, SharesOutstanding: 1, DiscountRate: 8, TerminalGrowthRate: ClampTerminalGrowth(7)})
	require.NoError(t, err)
	assert.Equal(t, Round(direct.IntrinsicValuePerShare, 2), *row[3])
}

func TestSensitivityGrid_NonFiniteRateGivesNilCell(t *testing.T) {
	grid := SensitivityGrid(DCFInputs{BaseFCF: 100, Years: 5, SharesOutstanding: 1}, []float64{math.NaN(), 10}, []float64{2})
	assert.Nil(t, grid[0][0])
	assert.NotNil(t, grid[1][0])
}

func TestBaseCase_EmptyRanges(t *testing.T) {
	bc := BaseCase(nil, nil, []float64{1})
	assert.Nil(t, bc.IntrinsicValue)
}

func TestAssumptionsFromConfig(t *testing.T) {
	a := AssumptionsFromConfig(common.NewDefaultConfig().Valuation)
	assert.Equal(t, DefaultAssumptions(), a)
	assert.Equal(t, 10.0, a.FallbackDiscountRate)
	assert.Equal(t, 5, a.ProjectionYears)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 9.67, Round(9.6651, 2))
	assert.Equal(t, 0.3333, Round(1.0/3, 4))
}
