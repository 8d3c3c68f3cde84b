package interfaces

import "vesting-estimator/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger is the consumer-facing surface: it holds the latest snapshot
// and pushes refreshed state to connected clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// Start runs the server (blocking).
	Start() error

	// -----------------------------------------------------------------------------

	// UpdateLatest replaces the held snapshot without broadcasting.
	UpdateLatest(data *models.MLatestData)

	// -----------------------------------------------------------------------------

	// Broadcast replaces the held snapshot and pushes it to all clients.
	Broadcast(data *models.MLatestData)
}
