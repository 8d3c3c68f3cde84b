package calculator

import "math"

// MaxReasonablePrice is the sanity upper bound for a single token price.
const MaxReasonablePrice = 1_000_000

// -----------------------------------------------------------------------------

// IsValidPrice reports whether a price is usable: a real number, strictly
// positive and below the sanity bound.
func IsValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price > 0 && price < MaxReasonablePrice
}

// -----------------------------------------------------------------------------

// PriceChangePercent returns the change from previous to current as a
// percentage of previous. Zero previous yields zero.
func PriceChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
