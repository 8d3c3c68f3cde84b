package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

// MLatestData is the full point-in-time snapshot the server holds and pushes
// to WebSocket clients after every refresh.
type MLatestData struct {
	Type         string                       `json:"type"` // "INITIAL" or "UPDATE"
	CurrentPrice float64                      `json:"current_price"`
	Series       *MPriceSeries                `json:"series"`
	Calculations map[string]MTokenCalculation `json:"calculations"` // keyed by role id
	SourceName   string                       `json:"source"`
	Fallback     bool                         `json:"fallback"` // true when the fallback price was substituted
	Timestamp    int64                        `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string `json:"command"`
	Role    string `json:"role"`
}
