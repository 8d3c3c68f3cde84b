package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vesting-estimator/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "vesting-estimator",
		Host:     "127.0.0.1",
		Port:     8090,
		LogLevel: "INFO",
		Storage: models.MStorageConfig{
			DBType:        "sqlite",
			DBPath:        "test.db",
			RetentionDays: 90,
		},
		Network: models.MNetworkConfig{
			RequestTimeout: 10,
			MaxRetries:     3,
			UserAgent:      "test",
		},
		Source: models.MSourceConfig{
			Provider:        "coingecko",
			CoinID:          "ethereum-name-service",
			VsCurrency:      "usd",
			CacheTTLMinutes: 15,
			RefreshCron:     "*/15 * * * *",
			HistoryDaysBack: 185,
			FallbackPrice:   10,
			MockAverage:     12,
		},
		Term: models.MTermConfig{
			WindowStart:      "2025-01-01",
			WindowEnd:        "2025-07-01",
			VestingStart:     "2025-01-01",
			DistributionDate: "2025-07-01",
			VestingEnd:       "2027-01-01",
		},
		Vesting: models.MVestingConfig{
			DurationMonths:       24,
			DistributionFraction: 0.25,
		},
		Roles: []models.MRoleConfig{
			{ID: "steward", Name: "Steward", MonthlyCompensation: 4000, AnnualCompensation: 48000},
			{ID: "lead_steward", Name: "Lead Steward", MonthlyCompensation: 5500, AnnualCompensation: 66000},
		},
	}}
}

// -----------------------------------------------------------------------------

func TestValidate_AcceptsReferenceConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsBrokenConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty name", func(c *Config) { c.Name = "" }},
		{"empty host", func(c *Config) { c.Host = "" }},
		{"privileged port", func(c *Config) { c.Port = 80 }},
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"sqlite without path", func(c *Config) { c.Storage.DBPath = "" }},
		{"postgres without dsn", func(c *Config) { c.Storage.DBType = "postgres" }},
		{"unknown db type", func(c *Config) { c.Storage.DBType = "oracle" }},
		{"zero timeout", func(c *Config) { c.Network.RequestTimeout = 0 }},
		{"negative retries", func(c *Config) { c.Network.MaxRetries = -1 }},
		{"unknown provider", func(c *Config) { c.Source.Provider = "binance" }},
		{"coingecko without coin id", func(c *Config) { c.Source.CoinID = "" }},
		{"zero cache ttl", func(c *Config) { c.Source.CacheTTLMinutes = 0 }},
		{"zero history", func(c *Config) { c.Source.HistoryDaysBack = 0 }},
		{"zero fallback price", func(c *Config) { c.Source.FallbackPrice = 0 }},
		{"malformed window start", func(c *Config) { c.Term.WindowStart = "01/01/2025" }},
		{"window end before start", func(c *Config) { c.Term.WindowEnd = "2024-12-31" }},
		{"vesting end before start", func(c *Config) { c.Term.VestingEnd = "2024-01-01" }},
		{"distribution before vesting start", func(c *Config) { c.Term.DistributionDate = "2024-07-01" }},
		{"distribution after vesting end", func(c *Config) { c.Term.DistributionDate = "2027-06-01" }},
		{"distribution off the monthly grid", func(c *Config) { c.Term.DistributionDate = "2025-07-02" }},
		{"zero vesting duration", func(c *Config) { c.Vesting.DurationMonths = 0 }},
		{"fraction above one", func(c *Config) { c.Vesting.DistributionFraction = 1.5 }},
		{"no roles", func(c *Config) { c.Roles = nil }},
		{"role without id", func(c *Config) { c.Roles[0].ID = "" }},
		{"duplicate role ids", func(c *Config) { c.Roles[1].ID = "steward" }},
		{"non-positive compensation", func(c *Config) { c.Roles[0].AnnualCompensation = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// -----------------------------------------------------------------------------

func TestNewConfig_LoadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, validConfig().Save(path))

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "vesting-estimator", cfg.Name)
	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "2025-07-01", cfg.Term.DistributionDate)
	assert.Equal(t, 0.25, cfg.Vesting.DistributionFraction)
	assert.Len(t, cfg.Roles, 2)
}

func TestNewConfig_MissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewConfig_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := validConfig()
	cfg.Term.DistributionDate = "2025-07-02" // off the monthly grid
	require.NoError(t, cfg.Save(path))

	_, err := NewConfig(path)
	assert.Error(t, err)
}

func TestNewConfig_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))

	_, err := NewConfig(path)
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestAccessors(t *testing.T) {
	cfg := validConfig()

	start, end := cfg.WindowDates()
	assert.Equal(t, "2025-01-01", start.Format("2006-01-02"))
	assert.Equal(t, "2025-07-01", end.Format("2006-01-02"))

	vStart, dist, vEnd := cfg.VestingDates()
	assert.Equal(t, "2025-01-01", vStart.Format("2006-01-02"))
	assert.Equal(t, "2025-07-01", dist.Format("2006-01-02"))
	assert.Equal(t, "2027-01-01", vEnd.Format("2006-01-02"))

	role, ok := cfg.RoleByID("lead_steward")
	require.True(t, ok)
	assert.Equal(t, 66000.0, role.AnnualCompensation)

	_, ok = cfg.RoleByID("intern")
	assert.False(t, ok)

	assert.Equal(t, 15*time.Minute, cfg.CacheTTL())
}
