package models

// MTokenCalculation is the derived allocation for one role at one refresh.
type MTokenCalculation struct {
	Role         MStewardRole      `json:"role"`
	AveragePrice float64           `json:"average_price"`
	TotalTokens  float64           `json:"total_tokens"`
	CurrentValue float64           `json:"current_value"` // TotalTokens x CurrentPrice
	Schedule     *MVestingSchedule `json:"vesting_schedule"`
}
