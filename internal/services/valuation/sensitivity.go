package valuation

import "github.com/bobmcallan/vantage/internal/models"

// SensitivityGrid computes intrinsic value per share for every pair of
// discount rate (rows) and terminal growth rate (columns). The base inputs'
// own rates are ignored. Terminal rates are clamped to [0, 5] exactly as a
// single DCF run clamps them. Cells with no finite value are nil.
func SensitivityGrid(base DCFInputs, discountRates, terminalRates []float64) [][]*float64 {
	matrix := make([][]*float64, len(discountRates))
	for i, dr := range discountRates {
		row := make([]*float64, len(terminalRates))
		for j, tg := range terminalRates {
			in := base
			in.DiscountRate = dr
			in.TerminalGrowthRate = ClampTerminalGrowth(tg)
			out, err := ProjectDCF(in)
			if err != nil {
				continue
			}
			v := Round(out.IntrinsicValuePerShare, 2)
			row[j] = &v
		}
		matrix[i] = row
	}
	return matrix
}

// BaseCase picks the middle element of each range and its grid value.
func BaseCase(matrix [][]*float64, discountRates, terminalRates []float64) models.SensitivityBaseCase {
	var bc models.SensitivityBaseCase
	if len(discountRates) == 0 || len(terminalRates) == 0 {
		return bc
	}
	i, j := len(discountRates)/2, len(terminalRates)/2
	bc.DiscountRate = discountRates[i]
	bc.TerminalGrowthRate = terminalRates[j]
	if i < len(matrix) && j < len(matrix[i]) {
		bc.IntrinsicValue = matrix[i][j]
	}
	return bc
}
