package models

// Vesting event kinds. A schedule is bounded by exactly one "start" and one
// "end" marker; exactly one monthly-class event carries the "distribution"
// kind instead of "monthly".
const (
	VestingEventStart        = "start"
	VestingEventMonthly      = "monthly"
	VestingEventDistribution = "distribution"
	VestingEventEnd          = "end"
)

// -----------------------------------------------------------------------------

// MVestingEvent is a dated record of tokens becoming unlocked.
type MVestingEvent struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	Tokens     float64 `json:"tokens"`
	Percentage float64 `json:"percentage"` // cumulative, 0..100
	Type       string  `json:"type"`
}

// -----------------------------------------------------------------------------

// MVestingSchedule is the full monthly vesting ledger for one allocation.
type MVestingSchedule struct {
	StartDate            string          `json:"start_date"`
	DistributionDate     string          `json:"distribution_date"`
	EndDate              string          `json:"end_date"`
	TotalTokens          float64         `json:"total_tokens"`
	TokensAtDistribution float64         `json:"tokens_at_distribution"`
	MonthlyVesting       float64         `json:"monthly_vesting"`
	Events               []MVestingEvent `json:"events"`
}
