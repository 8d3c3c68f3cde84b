package estimator

import (
	"time"

	"vesting-estimator/src/calculator"
	"vesting-estimator/src/config"
	"vesting-estimator/src/interfaces"
	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"
)

// -----------------------------------------------------------------------------
// EstimatorFacade
// -----------------------------------------------------------------------------

// EstimatorFacade composes one full refresh: pull the price snapshot and
// history from the source, build the window series, derive the per-role token
// allocations and vesting schedules, and record the observations. Each
// Refresh is a from-scratch recomputation; there is no incremental path.
type EstimatorFacade struct {
	Config  *config.Config
	Source  interfaces.IPriceSource
	DB      interfaces.IDatabase
	Builder *calculator.SeriesBuilder
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewEstimatorFacade(cfg *config.Config, source interfaces.IPriceSource, db interfaces.IDatabase, log *logger.Logger) *EstimatorFacade {
	return &EstimatorFacade{
		Config:  cfg,
		Source:  source,
		DB:      db,
		Builder: calculator.NewSeriesBuilder(log),
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// Refresh recomputes the full snapshot from current inputs.
func (e *EstimatorFacade) Refresh() (*models.MLatestData, error) {
	currentPrice, usedFallback := e.Source.GetCurrentPrice()
	history := e.Source.GetHistoricalDailyPrices(e.Config.Source.HistoryDaysBack)

	windowStart, windowEnd := e.Config.WindowDates()
	lookup := calculator.LookupTable(history)

	series, err := e.Builder.BuildSeries(currentPrice, lookup, windowStart, windowEnd)
	if err != nil {
		// Only invalid inputs reach here; the source guarantees a usable price.
		return nil, err
	}

	calculations, err := e.calculateAllRoles(series, currentPrice)
	if err != nil {
		return nil, err
	}

	e.record(history, series)

	return &models.MLatestData{
		Type:         "UPDATE",
		CurrentPrice: currentPrice,
		Series:       series,
		Calculations: calculations,
		SourceName:   e.Source.Name(),
		Fallback:     usedFallback,
		Timestamp:    time.Now().Unix(),
	}, nil
}

// -----------------------------------------------------------------------------

func (e *EstimatorFacade) calculateAllRoles(series *models.MPriceSeries, currentPrice float64) (map[string]models.MTokenCalculation, error) {
	vestingStart, distribution, vestingEnd := e.Config.VestingDates()

	calculations := make(map[string]models.MTokenCalculation, len(e.Config.Roles))
	for _, role := range e.Config.Roles {
		totalTokens := calculator.TokenAllocation(role.AnnualCompensation, series.AveragePrice)

		schedule, err := calculator.GenerateSchedule(
			totalTokens,
			vestingStart, distribution, vestingEnd,
			e.Config.Vesting.DurationMonths,
			e.Config.Vesting.DistributionFraction,
		)
		if err != nil {
			return nil, err
		}

		calculations[role.ID] = models.MTokenCalculation{
			Role: models.MStewardRole{
				ID:                  role.ID,
				Name:                role.Name,
				MonthlyCompensation: role.MonthlyCompensation,
				AnnualCompensation:  role.AnnualCompensation,
				Description:         role.Description,
			},
			AveragePrice: series.AveragePrice,
			TotalTokens:  totalTokens,
			CurrentValue: calculator.CurrentValue(totalTokens, currentPrice),
			Schedule:     schedule,
		}
	}

	return calculations, nil
}

// -----------------------------------------------------------------------------

// record persists observations and the snapshot summary; recorder failures
// are logged, never propagated into the refresh result.
func (e *EstimatorFacade) record(history []models.MPricePoint, series *models.MPriceSeries) {
	if e.DB == nil {
		return
	}

	if err := e.DB.SavePricePointsBulk(history); err != nil {
		e.Logger.Error("Failed to record price points: %v", err)
	}
	if err := e.DB.SaveSeriesSnapshot(series); err != nil {
		e.Logger.Error("Failed to record series snapshot: %v", err)
	}
	if err := e.DB.CleanupOldData(); err != nil {
		e.Logger.Error("Failed to clean up old data: %v", err)
	}
}
