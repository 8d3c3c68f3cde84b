package interfaces

import "vesting-estimator/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the observation recorder.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SavePricePointsBulk inserts a batch of observed daily prices.
	SavePricePointsBulk(points []models.MPricePoint) error

	// -----------------------------------------------------------------------------

	// SaveSeriesSnapshot records the summary of one computed series.
	SaveSeriesSnapshot(series *models.MPriceSeries) error

	// -----------------------------------------------------------------------------

	// CleanupOldData removes data older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
