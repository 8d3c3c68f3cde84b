package models

// MPricePoint represents one calendar day inside the averaging window.
// Date is the YYYY-MM-DD label that identifies the day (UTC); Timestamp is
// the Unix time of that day's midnight.
type MPricePoint struct {
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	Timestamp   int64   `json:"timestamp"`
	IsProjected bool    `json:"is_projected"`
}

// -----------------------------------------------------------------------------

// MCalculationWindow describes the closed date interval the series covers.
type MCalculationWindow struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	TotalDays      int    `json:"total_days"`
	HistoricalDays int    `json:"historical_days"`
	ProjectedDays  int    `json:"projected_days"`
}

// -----------------------------------------------------------------------------

// MPriceSeries is a complete, gap-free daily series over a fixed window,
// blending observed history with a flat forward projection.
type MPriceSeries struct {
	Points       []MPricePoint      `json:"points"`
	AveragePrice float64            `json:"average_price"`
	CurrentPrice float64            `json:"current_price"`
	GeneratedAt  int64              `json:"generated_at"`
	Window       MCalculationWindow `json:"window"`
}
