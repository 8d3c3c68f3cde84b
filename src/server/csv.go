package server

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"vesting-estimator/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// CSV Export
// -----------------------------------------------------------------------------

// getExportCSV streams the day-by-day series as CSV: date, price, running
// average, historical/projected flag. Rounding happens here only; the series
// itself is never rounded.
func (s *APIServer) getExportCSV(c *gin.Context) {
	s.stateMutex.RLock()
	series := s.latestState.Series
	s.stateMutex.RUnlock()

	if series == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no price data yet"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="price-series.csv"`)

	w := csv.NewWriter(c.Writer)
	if err := writeSeriesCSV(w, series); err != nil {
		s.Logger.Error("CSV export failed: %v", err)
	}
}

// -----------------------------------------------------------------------------

func writeSeriesCSV(w *csv.Writer, series *models.MPriceSeries) error {
	if err := w.Write([]string{"date", "price", "running_average", "data"}); err != nil {
		return err
	}

	sum := 0.0
	for i, p := range series.Points {
		sum += p.Price

		kind := "historical"
		if p.IsProjected {
			kind = "projected"
		}

		record := []string{
			p.Date,
			fmt.Sprintf("%.6f", p.Price),
			fmt.Sprintf("%.6f", sum/float64(i+1)),
			kind,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
