// Package app wires configuration, storage, clients and services into the
// shared application core used by cmd/folio-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arjunmehra/folio/internal/clients/marketdata"
	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
	"github.com/arjunmehra/folio/internal/notify"
	"github.com/arjunmehra/folio/internal/services/alerts"
	"github.com/arjunmehra/folio/internal/services/analytics"
	"github.com/arjunmehra/folio/internal/services/tax"
	"github.com/arjunmehra/folio/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	Market      interfaces.MarketDataClient
	Notifier    interfaces.Notifier
	Analytics   interfaces.AnalyticsService
	Tax         interfaces.TaxService
	Alerts      interfaces.AlertService
	StartupTime time.Time

	scheduler *Scheduler
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients and services. configPath may be
// empty; resolution order is FOLIO_CONFIG, then folio.toml next to the
// binary, then config/folio.toml.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	marketOpts := []marketdata.ClientOption{
		marketdata.WithLogger(logger),
		marketdata.WithRateLimit(config.Market.RateLimit),
	}
	if config.Market.Seed != 0 {
		marketOpts = append(marketOpts, marketdata.WithSeed(config.Market.Seed))
	}
	marketClient := marketdata.NewClient(marketOpts...)

	notifier := notify.NewEmailNotifier(config.Email, logger)
	if !notifier.Configured() {
		logger.Warn().Msg("SMTP not configured - alert emails will be logged only")
	}

	analyticsService := analytics.NewService(storageManager, marketClient, logger, config.Market.Benchmark)
	taxService := tax.NewService(storageManager, logger)
	alertService := alerts.NewService(storageManager, marketClient, notifier, logger)

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Market:      marketClient,
		Notifier:    notifier,
		Analytics:   analyticsService,
		Tax:         taxService,
		Alerts:      alertService,
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// StartAlertScheduler launches periodic alert evaluation when enabled.
func (a *App) StartAlertScheduler() error {
	if !a.Config.Alerts.Enabled {
		a.Logger.Info().Msg("Alert scheduler disabled by configuration")
		return nil
	}

	scheduler := NewScheduler(a.Logger)
	if err := scheduler.Add(a.Config.Alerts.Schedule, &alertEvaluationJob{service: a.Alerts}); err != nil {
		return fmt.Errorf("failed to schedule alert evaluation: %w", err)
	}
	scheduler.Start()
	a.scheduler = scheduler

	a.Logger.Info().Str("schedule", a.Config.Alerts.Schedule).Msg("Alert scheduler started")
	return nil
}

// Close releases all resources. Shutdown order: stop scheduler, close
// storage.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		a.scheduler = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
