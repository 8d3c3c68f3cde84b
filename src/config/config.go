package config

import (
	"fmt"
	"os"
	"time"

	"vesting-estimator/src/models"
	"vesting-estimator/src/utils"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs configuration validation. Term and vesting constants are
// checked here, at construction time, so a distribution date that no monthly
// event can ever land on is rejected before any schedule is generated.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	case "none":
		// storage disabled
	default:
		return fmt.Errorf("unknown database type: %s", c.Storage.DBType)
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	// Validate Source configuration
	if c.Source.Provider != "coingecko" && c.Source.Provider != "demo" {
		return fmt.Errorf("unknown price source provider: %s", c.Source.Provider)
	}
	if c.Source.Provider == "coingecko" && c.Source.CoinID == "" {
		return fmt.Errorf("coin id cannot be empty for coingecko")
	}
	if c.Source.CacheTTLMinutes <= 0 {
		return fmt.Errorf("cache ttl must be greater than 0")
	}
	if c.Source.HistoryDaysBack <= 0 {
		return fmt.Errorf("history days back must be greater than 0")
	}
	if c.Source.FallbackPrice <= 0 {
		return fmt.Errorf("fallback price must be greater than 0")
	}

	// Validate Term dates
	windowStart, windowEnd, err := c.windowDates()
	if err != nil {
		return err
	}
	if windowEnd.Before(windowStart) {
		return fmt.Errorf("window end %s precedes window start %s", c.Term.WindowEnd, c.Term.WindowStart)
	}

	vestingStart, distribution, vestingEnd, err := c.vestingDates()
	if err != nil {
		return err
	}
	if !vestingStart.Before(vestingEnd) {
		return fmt.Errorf("vesting start %s must precede vesting end %s", c.Term.VestingStart, c.Term.VestingEnd)
	}
	if !vestingStart.Before(distribution) || !distribution.Before(vestingEnd) {
		return fmt.Errorf("distribution date %s must fall strictly between vesting start and end", c.Term.DistributionDate)
	}

	// Validate Vesting policy
	if c.Vesting.DurationMonths <= 0 {
		return fmt.Errorf("vesting duration must be greater than 0 months")
	}
	if c.Vesting.DistributionFraction < 0 || c.Vesting.DistributionFraction > 1 {
		return fmt.Errorf("distribution fraction must be within [0, 1]")
	}
	// The distribution tranche is a policy constant decoupled from the monthly
	// stream; require the date to coincide with a monthly boundary so the
	// schedule always contains a distribution event.
	if _, ok := utils.MonthsBetween(vestingStart, distribution, c.Vesting.DurationMonths); !ok {
		return fmt.Errorf("distribution date %s is not an exact number of months after vesting start %s", c.Term.DistributionDate, c.Term.VestingStart)
	}

	// Validate Roles
	if len(c.Roles) == 0 {
		return fmt.Errorf("at least one role must be configured")
	}
	seen := make(map[string]bool, len(c.Roles))
	for i, role := range c.Roles {
		if role.ID == "" {
			return fmt.Errorf("role %d must have an id", i)
		}
		if seen[role.ID] {
			return fmt.Errorf("duplicate role id: %s", role.ID)
		}
		seen[role.ID] = true
		if role.AnnualCompensation <= 0 {
			return fmt.Errorf("role '%s' must have a positive annual compensation", role.ID)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (c *Config) windowDates() (time.Time, time.Time, error) {
	start, err := utils.ParseDay(c.Term.WindowStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid window start '%s': %w", c.Term.WindowStart, err)
	}
	end, err := utils.ParseDay(c.Term.WindowEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid window end '%s': %w", c.Term.WindowEnd, err)
	}
	return start, end, nil
}

// -----------------------------------------------------------------------------

func (c *Config) vestingDates() (time.Time, time.Time, time.Time, error) {
	start, err := utils.ParseDay(c.Term.VestingStart)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("invalid vesting start '%s': %w", c.Term.VestingStart, err)
	}
	distribution, err := utils.ParseDay(c.Term.DistributionDate)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("invalid distribution date '%s': %w", c.Term.DistributionDate, err)
	}
	end, err := utils.ParseDay(c.Term.VestingEnd)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("invalid vesting end '%s': %w", c.Term.VestingEnd, err)
	}
	return start, distribution, end, nil
}

// -----------------------------------------------------------------------------

// WindowDates returns the averaging window as UTC midnights.
func (c *Config) WindowDates() (start, end time.Time) {
	start, end, _ = c.windowDates()
	return start, end
}

// -----------------------------------------------------------------------------

// VestingDates returns the vesting milestones as UTC midnights.
func (c *Config) VestingDates() (start, distribution, end time.Time) {
	start, distribution, end, _ = c.vestingDates()
	return start, distribution, end
}

// -----------------------------------------------------------------------------

// RoleByID returns the configured role, if any.
func (c *Config) RoleByID(id string) (models.MRoleConfig, bool) {
	for _, role := range c.Roles {
		if role.ID == id {
			return role, true
		}
	}
	return models.MRoleConfig{}, false
}

// -----------------------------------------------------------------------------

// CacheTTL returns the upstream response freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Source.CacheTTLMinutes) * time.Minute
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
