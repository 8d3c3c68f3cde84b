package demo

import (
	"math/rand"
	"time"

	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"
	"vesting-estimator/src/utils"
)

// -----------------------------------------------------------------------------
// DemoSource
// -----------------------------------------------------------------------------

// DemoSource synthesizes a plausible-looking daily series when no upstream
// feed is reachable (offline development, demos). It sits behind the same
// IPriceSource contract as the live source, so the calculation engine never
// knows the data is synthetic.
type DemoSource struct {
	Config *models.MConfig
	Logger *logger.Logger
	rng    *rand.Rand

	// Now is injectable for deterministic tests.
	Now func() time.Time
}

// -----------------------------------------------------------------------------

// NewDemoSource creates a synthetic source. seed fixes the generated series;
// pass a clock-derived seed for demo variety.
func NewDemoSource(cfg *models.MConfig, log *logger.Logger, seed int64) *DemoSource {
	return &DemoSource{
		Config: cfg,
		Logger: log,
		rng:    rand.New(rand.NewSource(seed)),
		Now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

func (s *DemoSource) Name() string {
	return "demo"
}

// -----------------------------------------------------------------------------

// GetCurrentPrice returns the configured fallback price, flagged as fallback
// data so the UI can label it.
func (s *DemoSource) GetCurrentPrice() (float64, bool) {
	return s.Config.Source.FallbackPrice, true
}

// -----------------------------------------------------------------------------

// GetHistoricalDailyPrices generates daysBack days ending yesterday, varying
// within +/-20% of the configured mock average.
func (s *DemoSource) GetHistoricalDailyPrices(daysBack int) []models.MPricePoint {
	center := s.Config.Source.MockAverage
	if center <= 0 {
		center = s.Config.Source.FallbackPrice
	}

	today := utils.TruncateToDay(s.Now())
	points := make([]models.MPricePoint, 0, daysBack)

	for i := daysBack; i >= 1; i-- {
		day := today.AddDate(0, 0, -i)
		variation := (s.rng.Float64() - 0.5) * 0.4
		points = append(points, models.MPricePoint{
			Date:      utils.DayLabel(day),
			Price:     center * (1 + variation),
			Timestamp: day.Unix(),
		})
	}

	s.Logger.Info("Generated %d synthetic daily prices around %.2f", len(points), center)
	return points
}
