package storage

import (
	"database/sql"
	"fmt"
	"time"

	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// SQLiteDB records upstream price observations and per-refresh series
// snapshots for operational inspection.
type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	db, err := sql.Open("sqlite", d.Config.Storage.DBPath)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE IF NOT EXISTS price_points (
			date TEXT PRIMARY KEY,
			price REAL,
			timestamp INTEGER,
			fetched_at INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_points: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS series_snapshots (
			generated_at INTEGER PRIMARY KEY,
			window_start TEXT,
			window_end TEXT,
			total_days INTEGER,
			historical_days INTEGER,
			projected_days INTEGER,
			average_price REAL,
			current_price REAL
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create series_snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SavePricePointsBulk(points []models.MPricePoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO price_points (date, price, timestamp, fetched_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	fetchedAt := time.Now().Unix()
	for _, p := range points {
		if _, err := stmt.Exec(p.Date, p.Price, p.Timestamp, fetchedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveSeriesSnapshot(series *models.MPriceSeries) error {
	if series == nil {
		return nil
	}

	_, err := d.DB.Exec(`
		INSERT OR REPLACE INTO series_snapshots
			(generated_at, window_start, window_end, total_days, historical_days, projected_days, average_price, current_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, series.GeneratedAt, series.Window.Start, series.Window.End,
		series.Window.TotalDays, series.Window.HistoricalDays, series.Window.ProjectedDays,
		series.AveragePrice, series.CurrentPrice)

	return err
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) CleanupOldData() error {
	retention := d.Config.Storage.RetentionDays
	if retention <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -retention).Unix()

	if _, err := d.DB.Exec("DELETE FROM price_points WHERE fetched_at < ?", cutoff); err != nil {
		return fmt.Errorf("failed to clean price_points: %w", err)
	}
	if _, err := d.DB.Exec("DELETE FROM series_snapshots WHERE generated_at < ?", cutoff); err != nil {
		return fmt.Errorf("failed to clean series_snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
