package calculator

import (
	"testing"
	"time"

	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(now time.Time) *SeriesBuilder {
	b := NewSeriesBuilder(logger.NewLogger("ERROR", "test"))
	b.Now = func() time.Time { return now }
	return b
}

func day(label string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", label, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// -----------------------------------------------------------------------------

func TestBuildSeries_CoversEveryDayOnce(t *testing.T) {
	b := testBuilder(day("2025-02-01"))

	series, err := b.BuildSeries(10, nil, day("2025-01-01"), day("2025-01-31"))
	require.NoError(t, err)

	assert.Equal(t, 31, series.Window.TotalDays)
	assert.Len(t, series.Points, 31)

	seen := make(map[string]bool)
	for i, p := range series.Points {
		assert.False(t, seen[p.Date], "duplicate day %s", p.Date)
		seen[p.Date] = true

		expected := day("2025-01-01").AddDate(0, 0, i)
		assert.Equal(t, expected.Format("2006-01-02"), p.Date, "gap at offset %d", i)
		assert.Equal(t, expected.Unix(), p.Timestamp)
	}
}

func TestBuildSeries_DayCountsAlwaysConsistent(t *testing.T) {
	b := testBuilder(day("2025-04-01"))

	lookup := map[string]float64{
		"2025-01-05": 15,
		"2025-01-10": 25,
	}

	series, err := b.BuildSeries(10, lookup, day("2025-01-01"), day("2025-01-15"))
	require.NoError(t, err)

	assert.Equal(t, 2, series.Window.HistoricalDays)
	assert.Equal(t, 13, series.Window.ProjectedDays)
	assert.Equal(t, series.Window.TotalDays, series.Window.HistoricalDays+series.Window.ProjectedDays)
	assert.Equal(t, series.Window.TotalDays, len(series.Points))
}

func TestBuildSeries_EmptyLookupIsFullyProjected(t *testing.T) {
	b := testBuilder(day("2025-04-01"))

	series, err := b.BuildSeries(10, map[string]float64{}, day("2025-01-01"), day("2025-07-01"))
	require.NoError(t, err)

	assert.Equal(t, 0, series.Window.HistoricalDays)
	assert.Equal(t, series.Window.TotalDays, series.Window.ProjectedDays)
	assert.Equal(t, 10.0, series.AveragePrice, "flat projection collapses the average to the current price")

	for _, p := range series.Points {
		assert.True(t, p.IsProjected)
		assert.Equal(t, 10.0, p.Price)
	}
}

func TestBuildSeries_FullLookupHasNoProjection(t *testing.T) {
	b := testBuilder(day("2025-02-01"))

	lookup := make(map[string]float64)
	sum := 0.0
	for i := 0; i < 10; i++ {
		price := 20 + float64(i)
		lookup[day("2025-01-01").AddDate(0, 0, i).Format("2006-01-02")] = price
		sum += price
	}

	series, err := b.BuildSeries(10, lookup, day("2025-01-01"), day("2025-01-10"))
	require.NoError(t, err)

	assert.Equal(t, 0, series.Window.ProjectedDays)
	assert.Equal(t, sum/10, series.AveragePrice)
	for _, p := range series.Points {
		assert.False(t, p.IsProjected)
	}
}

func TestBuildSeries_BlendedTermWindow(t *testing.T) {
	// Window 2025-01-01..2025-07-01 (181 days). History covers the first 60
	// days at a constant 20; the rest projects at the current price of 10.
	b := testBuilder(day("2025-03-02"))

	lookup := make(map[string]float64)
	for i := 0; i < 60; i++ {
		lookup[day("2025-01-01").AddDate(0, 0, i).Format("2006-01-02")] = 20
	}

	series, err := b.BuildSeries(10, lookup, day("2025-01-01"), day("2025-07-01"))
	require.NoError(t, err)

	assert.Equal(t, 181, series.Window.TotalDays)
	assert.Equal(t, 60, series.Window.HistoricalDays)
	assert.Equal(t, 121, series.Window.ProjectedDays)
	assert.InEpsilon(t, (60*20.0+121*10.0)/181.0, series.AveragePrice, 1e-12)
}

func TestBuildSeries_FutureWindowIsAllProjected(t *testing.T) {
	// "Now" precedes the window entirely.
	b := testBuilder(day("2024-06-01"))

	series, err := b.BuildSeries(42.5, nil, day("2025-01-01"), day("2025-01-10"))
	require.NoError(t, err)

	assert.Equal(t, 10, series.Window.ProjectedDays)
	assert.Equal(t, 42.5, series.AveragePrice)
}

func TestBuildSeries_SingleDayWindow(t *testing.T) {
	b := testBuilder(day("2025-01-02"))

	series, err := b.BuildSeries(10, map[string]float64{"2025-01-01": 30}, day("2025-01-01"), day("2025-01-01"))
	require.NoError(t, err)

	assert.Equal(t, 1, series.Window.TotalDays)
	assert.Equal(t, 30.0, series.AveragePrice)
	assert.False(t, series.Points[0].IsProjected)
}

func TestBuildSeries_RejectsInvalidInputs(t *testing.T) {
	b := testBuilder(day("2025-01-01"))

	_, err := b.BuildSeries(0, nil, day("2025-01-01"), day("2025-01-10"))
	assert.Error(t, err, "zero price is outside the sanity bound")

	_, err = b.BuildSeries(-5, nil, day("2025-01-01"), day("2025-01-10"))
	assert.Error(t, err)

	_, err = b.BuildSeries(2_000_000, nil, day("2025-01-01"), day("2025-01-10"))
	assert.Error(t, err)

	_, err = b.BuildSeries(10, nil, day("2025-01-10"), day("2025-01-01"))
	assert.Error(t, err, "end before start")
}

func TestBuildSeries_NoRoundingBeforeAveraging(t *testing.T) {
	b := testBuilder(day("2025-02-01"))

	lookup := map[string]float64{
		"2025-01-01": 10.123456789,
		"2025-01-02": 11.987654321,
	}

	series, err := b.BuildSeries(10, lookup, day("2025-01-01"), day("2025-01-02"))
	require.NoError(t, err)

	assert.Equal(t, (10.123456789+11.987654321)/2, series.AveragePrice)
}

// -----------------------------------------------------------------------------

func TestLookupTable_DropsInvalidPrices(t *testing.T) {
	points := []models.MPricePoint{
		{Date: "2025-01-01", Price: 12},
		{Date: "2025-01-02", Price: 0},
		{Date: "2025-01-03", Price: -3},
		{Date: "2025-01-01", Price: 13}, // later entry wins
	}

	table := LookupTable(points)
	assert.Equal(t, map[string]float64{"2025-01-01": 13}, table)
}
