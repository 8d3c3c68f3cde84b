package calculator

// -----------------------------------------------------------------------------

// TokenAllocation converts an annual USD compensation into tokens at the
// window-average price. A non-positive average yields zero rather than a
// division blowup.
func TokenAllocation(annualCompensation, averagePrice float64) float64 {
	if averagePrice <= 0 {
		return 0
	}
	return annualCompensation / averagePrice
}

// -----------------------------------------------------------------------------

// CurrentValue prices an allocation at the given spot price.
func CurrentValue(totalTokens, price float64) float64 {
	return totalTokens * price
}
