package main

import (
	"flag"
	"fmt"
	"os"

	"vesting-estimator/src/config"
	"vesting-estimator/src/data_source/demo"
	"vesting-estimator/src/estimator"
	"vesting-estimator/src/helpers"
	"vesting-estimator/src/logger"
	"vesting-estimator/src/storage"
)

// -----------------------------------------------------------------------------
// Offline run: computes one estimate against the synthetic source and prints
// the result per role. Useful for checking configuration without network.
// -----------------------------------------------------------------------------

func main() {

	configPath := flag.String("config", "config/default.yaml", "path to config file")
	seed := flag.Int64("seed", 42, "seed for the synthetic price series")
	flag.Parse()

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLogger(cfg.LogLevel, "Demo")

	source := demo.NewDemoSource(cfg.MConfig, appLogger, *seed)
	facade := estimator.NewEstimatorFacade(cfg, source, storage.NewNoopDB(), appLogger)

	data, err := facade.Refresh()
	if err != nil {
		appLogger.Critical("Estimate failed: %v", err)
	}

	fmt.Printf("\nWindow %s..%s: %d days (%d historical, %d projected)\n",
		data.Series.Window.Start, data.Series.Window.End,
		data.Series.Window.TotalDays, data.Series.Window.HistoricalDays, data.Series.Window.ProjectedDays)
	fmt.Printf("Average price: %s   Current price: %s\n\n",
		helpers.FormatCurrency(data.Series.AveragePrice, 2),
		helpers.FormatCurrency(data.CurrentPrice, 2))

	for _, role := range cfg.Roles {
		calc := data.Calculations[role.ID]
		fmt.Printf("%-14s %s/year -> %s tokens (%s today)\n",
			role.Name,
			helpers.FormatCurrency(role.AnnualCompensation, 0),
			helpers.FormatTokens(calc.TotalTokens, 2),
			helpers.FormatCurrency(calc.CurrentValue, 2))
		fmt.Printf("%-14s %s tokens/month, %s at distribution (%s)\n\n", "",
			helpers.FormatTokens(calc.Schedule.MonthlyVesting, 2),
			helpers.FormatTokens(calc.Schedule.TokensAtDistribution, 2),
			calc.Schedule.DistributionDate)
	}
}
