package utils

import (
	"fmt"

	"vesting-estimator/src/interfaces"
	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"

	"github.com/robfig/cron/v3"
)

// -----------------------------------------------------------------------------
// RefreshScheduler
// -----------------------------------------------------------------------------

// RefreshScheduler re-runs the full estimate on a fixed cadence and pushes
// each fresh snapshot to the server hub. Re-invocation is the only refresh
// strategy: every tick recomputes everything from current inputs.
type RefreshScheduler struct {
	Cron    *cron.Cron
	Refresh func() (*models.MLatestData, error)
	Server  interfaces.IDataExchanger
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRefreshScheduler(refresh func() (*models.MLatestData, error), srv interfaces.IDataExchanger, log *logger.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		Cron:    cron.New(),
		Refresh: refresh,
		Server:  srv,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// Register schedules the refresh task with a standard cron spec.
func (s *RefreshScheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Start starts the cron scheduler.
func (s *RefreshScheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("Refresh scheduler started")
}

// -----------------------------------------------------------------------------

// Stop stops the cron scheduler gracefully.
func (s *RefreshScheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("Refresh scheduler stopped")
}

// -----------------------------------------------------------------------------

// RunNow executes the refresh task immediately (initial load / manual trigger).
func (s *RefreshScheduler) RunNow() {
	s.refreshTask()
}

// -----------------------------------------------------------------------------

func (s *RefreshScheduler) refreshTask() {
	data, err := s.Refresh()
	if err != nil {
		s.Logger.Error("Refresh failed: %v", err)
		return
	}

	s.Logger.Info("Refresh complete: price %.4f, avg %.4f (%d/%d historical days)",
		data.CurrentPrice, data.Series.AveragePrice,
		data.Series.Window.HistoricalDays, data.Series.Window.TotalDays)

	s.Server.Broadcast(data)
}
