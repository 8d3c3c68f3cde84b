package storage

import "vesting-estimator/src/models"

// -----------------------------------------------------------------------------

// NoopDB satisfies IDatabase when storage is disabled (db_type: none).
type NoopDB struct{}

func NewNoopDB() *NoopDB { return &NoopDB{} }

func (d *NoopDB) Initialize() error { return nil }

func (d *NoopDB) SavePricePointsBulk(points []models.MPricePoint) error { return nil }

func (d *NoopDB) SaveSeriesSnapshot(series *models.MPriceSeries) error { return nil }

func (d *NoopDB) CleanupOldData() error { return nil }

func (d *NoopDB) Close() error { return nil }
