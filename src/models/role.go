package models

// MStewardRole represents one selectable compensation role.
type MStewardRole struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	MonthlyCompensation float64 `json:"monthly_compensation"`
	AnnualCompensation  float64 `json:"annual_compensation"`
	Description         string  `json:"description"`
}
