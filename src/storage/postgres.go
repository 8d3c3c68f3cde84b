package storage

import (
	"database/sql"
	"fmt"
	"time"

	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// PostgresDB is the postgres flavor of the observation recorder.
type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	return &PostgresDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db
	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS price_points (
			date TEXT PRIMARY KEY,
			price DOUBLE PRECISION,
			timestamp BIGINT,
			fetched_at BIGINT
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_points: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS series_snapshots (
			generated_at BIGINT PRIMARY KEY,
			window_start TEXT,
			window_end TEXT,
			total_days INTEGER,
			historical_days INTEGER,
			projected_days INTEGER,
			average_price DOUBLE PRECISION,
			current_price DOUBLE PRECISION
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create series_snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SavePricePointsBulk(points []models.MPricePoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO price_points (date, price, timestamp, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			price = EXCLUDED.price,
			timestamp = EXCLUDED.timestamp,
			fetched_at = EXCLUDED.fetched_at
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

func (d *PostgresDB) SaveSeriesSnapshot(series *models.MPriceSeries) error {
	if series == nil {
		return nil
	}

	_, err := d.DB.Exec(`
		INSERT INTO series_snapshots
			(generated_at, window_start, window_end, total_days, historical_days, projected_days, average_price, current_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (generated_at) DO NOTHING
	`, series.GeneratedAt, series.Window.Start, series.Window.End,
		series.Window.TotalDays, series.Window.HistoricalDays, series.Window.ProjectedDays,
		series.AveragePrice, series.CurrentPrice)

	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) CleanupOldData() error {
	retention := d.Config.Storage.RetentionDays
	if retention <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -retention).Unix()

	if _, err := d.DB.Exec("DELETE FROM price_points WHERE fetched_at < $1", cutoff); err != nil {
		return fmt.Errorf("failed to clean price_points: %w", err)
	}
	if _, err := d.DB.Exec("DELETE FROM series_snapshots WHERE generated_at < $1", cutoff); err != nil {
		return fmt.Errorf("failed to clean series_snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
