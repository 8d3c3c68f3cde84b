package calculator

import (
	"time"

	"vesting-estimator/src/helpers"
	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"
	"vesting-estimator/src/utils"
)

// -----------------------------------------------------------------------------
// SeriesBuilder
// -----------------------------------------------------------------------------

// SeriesBuilder produces a complete, gap-free daily price series over a fixed
// calendar window. Days with an observed price in the lookup table are tagged
// historical; every other day is projected flat at the current price. The
// builder performs no I/O and never returns a partial series: total absence
// of historical data degrades to a fully projected window.
type SeriesBuilder struct {
	Logger *logger.Logger

	// Now supplies "today" for the past-gap data-quality check.
	// Defaults to time.Now; injectable for tests.
	Now func() time.Time
}

// -----------------------------------------------------------------------------

func NewSeriesBuilder(log *logger.Logger) *SeriesBuilder {
	return &SeriesBuilder{
		Logger: log,
		Now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

// BuildSeries builds the series for the closed interval [windowStart, windowEnd]
// (UTC midnights). lookup maps YYYY-MM-DD labels to observed USD prices; an
// absent day is a normal condition, not an error.
//
// No rounding happens here; display rounding belongs to the presentation layer.
func (b *SeriesBuilder) BuildSeries(currentPrice float64, lookup map[string]float64, windowStart, windowEnd time.Time) (*models.MPriceSeries, error) {
	if !IsValidPrice(currentPrice) {
		return nil, helpers.NewValidationError("current price %f is outside (0, %d)", currentPrice, MaxReasonablePrice)
	}

	start := utils.TruncateToDay(windowStart)
	end := utils.TruncateToDay(windowEnd)
	if end.Before(start) {
		return nil, helpers.NewValidationError("window end %s precedes start %s", utils.DayLabel(end), utils.DayLabel(start))
	}

	totalDays := utils.InclusiveDayCount(start, end)
	today := utils.DayLabel(b.Now())

	points := make([]models.MPricePoint, 0, totalDays)
	historicalDays := 0
	pastGaps := 0
	sum := 0.0

	for offset := 0; offset < totalDays; offset++ {
		day := start.AddDate(0, 0, offset)
		label := utils.DayLabel(day)

		price, observed := lookup[label]
		if observed {
			historicalDays++
		} else {
			price = currentPrice
			// A gap on a day that already passed means the upstream fetch
			// under-covered the window, unlike a genuinely future day.
			if label < today {
				pastGaps++
			}
		}

		points = append(points, models.MPricePoint{
			Date:        label,
			Price:       price,
			Timestamp:   day.Unix(),
			IsProjected: !observed,
		})
		sum += price
	}

	if pastGaps > 0 && b.Logger != nil {
		b.Logger.Warning("Series window [%s..%s]: %d past days had no historical observation and were projected", utils.DayLabel(start), utils.DayLabel(end), pastGaps)
	}

	return &models.MPriceSeries{
		Points:       points,
		AveragePrice: sum / float64(totalDays),
		CurrentPrice: currentPrice,
		GeneratedAt:  b.Now().Unix(),
		Window: models.MCalculationWindow{
			Start:          utils.DayLabel(start),
			End:            utils.DayLabel(end),
			TotalDays:      totalDays,
			HistoricalDays: historicalDays,
			ProjectedDays:  totalDays - historicalDays,
		},
	}, nil
}

// -----------------------------------------------------------------------------

// LookupTable shapes a slice of observed points into the per-day table the
// builder consumes. Later entries for the same day win.
func LookupTable(points []models.MPricePoint) map[string]float64 {
	table := make(map[string]float64, len(points))
	for _, p := range points {
		if IsValidPrice(p.Price) {
			table[p.Date] = p.Price
		}
	}
	return table
}
