package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	Storage  MStorageConfig `yaml:"storage"`
	Network  MNetworkConfig `yaml:"network"`
	Source   MSourceConfig  `yaml:"price_source"`
	Term     MTermConfig    `yaml:"term"`
	Vesting  MVestingConfig `yaml:"vesting"`
	Roles    []MRoleConfig  `yaml:"roles"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // "sqlite", "postgres" or "none"
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	MaxRetries     int    `yaml:"retries"`
	UserAgent      string `yaml:"user_agent"`
}

type MSourceConfig struct {
	Provider        string  `yaml:"provider"` // "coingecko" or "demo"
	CoinID          string  `yaml:"coin_id"`
	VsCurrency      string  `yaml:"vs_currency"`
	APIKey          string  `yaml:"api_key"` // Optional
	CacheTTLMinutes int     `yaml:"cache_ttl_minutes"`
	RefreshCron     string  `yaml:"refresh_cron"`
	HistoryDaysBack int     `yaml:"history_days_back"`
	FallbackPrice   float64 `yaml:"fallback_price"`
	MockAverage     float64 `yaml:"mock_average_price"`
}

// MTermConfig holds the milestone dates of one compensation term.
// All dates are calendar days in YYYY-MM-DD form, interpreted as UTC.
type MTermConfig struct {
	WindowStart      string `yaml:"window_start"`
	WindowEnd        string `yaml:"window_end"`
	VestingStart     string `yaml:"vesting_start"`
	DistributionDate string `yaml:"distribution_date"`
	VestingEnd       string `yaml:"vesting_end"`
}

type MVestingConfig struct {
	DurationMonths       int     `yaml:"duration_months"`
	DistributionFraction float64 `yaml:"distribution_fraction"`
}

type MRoleConfig struct {
	ID                  string  `yaml:"id"`
	Name                string  `yaml:"name"`
	MonthlyCompensation float64 `yaml:"monthly_compensation"`
	AnnualCompensation  float64 `yaml:"annual_compensation"`
	Description         string  `yaml:"description"`
}
