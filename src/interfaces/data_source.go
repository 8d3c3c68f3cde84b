package interfaces

import "vesting-estimator/src/models"

// -----------------------------------------------------------------------------
// IPriceSource interface for fetching token price data from an upstream feed.
//
// Implementations absorb all transient failure themselves (caching, retries,
// fallback prices): GetCurrentPrice always yields some usable price, and
// GetHistoricalDailyPrices degrades to an empty table rather than failing
// hard. The calculation core never talks to a source directly.
// -----------------------------------------------------------------------------

type IPriceSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// GetCurrentPrice returns the latest USD price snapshot and whether a
	// fallback value was substituted for live data.
	GetCurrentPrice() (price float64, fallback bool)

	// -----------------------------------------------------------------------------

	// GetHistoricalDailyPrices returns one observed price per calendar day for
	// up to daysBack days, ordered by date ascending. An empty slice is a
	// normal result, not an error.
	GetHistoricalDailyPrices(daysBack int) []models.MPricePoint
}
