package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vesting-estimator/src/cache"
	"vesting-estimator/src/config"
	"vesting-estimator/src/data_source/coingecko"
	"vesting-estimator/src/data_source/demo"
	"vesting-estimator/src/estimator"
	"vesting-estimator/src/interfaces"
	"vesting-estimator/src/logger"
	"vesting-estimator/src/network"
	"vesting-estimator/src/server"
	"vesting-estimator/src/storage"
	"vesting-estimator/src/utils"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// 1. Storage
	var db interfaces.IDatabase

	switch cfg.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(cfg.MConfig, appLogger)
	case "none":
		db = storage.NewNoopDB()
	default:
		// Default to SQLite
		db, err = storage.NewSQLiteDB(cfg.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// 2. Upstream collaborators: one response cache per process, injected
	responseCache := cache.NewTTLCache()
	netManager := network.NewHTTPNetworkManager(cfg.MConfig, logger.NewLogger(cfg.LogLevel, "Network"))

	var source interfaces.IPriceSource
	switch cfg.Source.Provider {
	case "demo":
		source = demo.NewDemoSource(cfg.MConfig, logger.NewLogger(cfg.LogLevel, "DemoSource"), time.Now().UnixNano())
	default:
		source = coingecko.NewCoinGeckoSource(cfg.MConfig, netManager, responseCache, logger.NewLogger(cfg.LogLevel, "CoinGeckoSource"))
	}

	// 3. Estimator + server
	facade := estimator.NewEstimatorFacade(cfg, source, db, appLogger)
	srv := server.NewAPIServer(cfg, logger.NewLogger(cfg.LogLevel, "APIServer"))

	// 4. Initial estimate so the first client sees data immediately
	appLogger.Info("Computing initial estimate...")
	initial, err := facade.Refresh()
	if err != nil {
		appLogger.Critical("Initial estimate failed: %v", err)
	}
	initial.Type = "INITIAL"
	srv.UpdateLatest(initial)

	appLogger.Info("Initialization complete: average price %.4f over %d days (%d historical, %d projected)",
		initial.Series.AveragePrice, initial.Series.Window.TotalDays,
		initial.Series.Window.HistoricalDays, initial.Series.Window.ProjectedDays)

	// 5. Start server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 6. Periodic refresh
	scheduler := utils.NewRefreshScheduler(facade.Refresh, srv, logger.NewLogger(cfg.LogLevel, "RefreshScheduler"))
	if err := scheduler.Register(cfg.Source.RefreshCron); err != nil {
		appLogger.Critical("Failed to register refresh task: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
}
