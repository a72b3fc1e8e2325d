package cmd

import (
	"fmt"

	"tablediff/core/config"
	"tablediff/core/database"
	"tablediff/core/diff"
	"tablediff/core/history"
	"tablediff/core/logger"
	"tablediff/core/source"
	"tablediff/core/storage"
	"tablediff/feature/compare"

	"go.uber.org/zap"
)

// app holds the dependencies shared by the commands.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store storage.Client
	runs  *history.Repository
}

// setup loads configuration and connects the optional backends. History is
// opened when enabled in the configuration or when forced by a flag.
func setup(forceHistory bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: logg}

	if cfg.Storage.Enabled {
		if a.store, err = storage.NewClient(cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	if cfg.Database.Enabled || forceHistory {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		a.runs = history.NewRepository(db)
		if err := a.runs.Migrate(); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *app) service() *compare.Service {
	engine := diff.NewEngine(source.NewFileLoader(a.store))
	return compare.NewService(engine, compare.NewReportWriter(a.store), a.runs, a.cfg.Diff, a.cfg.Server.MaxJobs, a.log)
}
