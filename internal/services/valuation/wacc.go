package valuation

import (
	"math"

	"github.com/bobmcallan/vantage/internal/models"
)

// CostOfEquity applies CAPM: Rf + beta * ERP. A zero beta is treated as missing.
func CostOfEquity(riskFreeRate, beta, equityRiskPremium float64) float64 {
	if beta == 0 {
		beta = DefaultBeta
	}
	return riskFreeRate + beta*equityRiskPremium
}

// EffectiveTaxRate is income tax over pre-tax income, or 21% when pre-tax income is zero.
func EffectiveTaxRate(incomeTaxExpense, incomeBeforeTax float64) float64 {
	if incomeBeforeTax == 0 {
		return DefaultTaxRate
	}
	return incomeTaxExpense / incomeBeforeTax * 100
}

// CostOfDebt returns the pre-tax rate (interest over debt, 5% without debt)
// and the after-tax rate.
func CostOfDebt(interestExpense, totalDebt, taxRate float64) (preTax, afterTax float64) {
	preTax = DefaultCostOfDebt
	if totalDebt > 0 {
		preTax = math.Abs(interestExpense) / totalDebt * 100
	}
	return preTax, preTax * (1 - taxRate/100)
}

// CapitalWeights returns equity and debt weights of E + D. An empty
// capital structure is treated as all equity.
func CapitalWeights(marketCap, totalDebt float64) (equity, debt float64) {
	total := marketCap + totalDebt
	if total <= 0 {
		return 1, 0
	}
	return marketCap / total, totalDebt / total
}

// WACCInputs are the figures needed for a WACC calculation.
type WACCInputs struct {
	Beta              float64
	MarketCap         float64
	TotalDebt         float64
	InterestExpense   float64
	IncomeTaxExpense  float64
	IncomeBeforeTax   float64
	RiskFreeRate      float64
	EquityRiskPremium float64
}

// ComputeWACC calculates WACC and its components. Percentages are rounded
// to 2 places and weights to 4.
func ComputeWACC(in WACCInputs) models.WACCResult {
	beta := in.Beta
	if beta == 0 {
		beta = DefaultBeta
	}

	ke := CostOfEquity(in.RiskFreeRate, beta, in.EquityRiskPremium)
	tax := EffectiveTaxRate(in.IncomeTaxExpense, in.IncomeBeforeTax)
	kdPre, kdAfter := CostOfDebt(in.InterestExpense, in.TotalDebt, tax)
	we, wd := CapitalWeights(in.MarketCap, in.TotalDebt)

	wacc := we*ke + wd*kdAfter

	return models.WACCResult{
		WACC:               Round(wacc, 2),
		CostOfEquity:       Round(ke, 2),
		CostOfDebtPreTax:   Round(kdPre, 2),
		CostOfDebtAfterTax: Round(kdAfter, 2),
		TaxRate:            Round(tax, 2),
		EquityWeight:       Round(we, 4),
		DebtWeight:         Round(wd, 4),
		Beta:               Round(beta, 2),
		RiskFreeRate:       Round(in.RiskFreeRate, 2),
		EquityRiskPremium:  Round(in.EquityRiskPremium, 2),
		MarketCap:          in.MarketCap,
		TotalDebt:          in.TotalDebt,
	}
}
