package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb"
	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb/gitsawe"
	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb/presentation"
	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb/rule"
	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb/template"
	"github.com/YaredDejene/kidase-presentation/internal/config"
	"github.com/YaredDejene/kidase-presentation/internal/service/render"
)

// App holds the wired application: configuration, logger, database and the
// render service built on top of it.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	DB       *sqldb.DB
	Registry *prometheus.Registry
	Render   *render.Service
}

// New loads configuration from configPath (or CONFIG_PATH when empty),
// initializes the logger, connects to the database, applies migrations when
// auto_migrate is set and wires the render service.
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig wires the application from an already loaded configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg.Log)

	logger.Info("starting kidase",
		slog.String("version", BuildVersion()),
		slog.String("driver", cfg.Database.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	db, err := sqldb.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		version, err := db.Migrate(ctx)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("schema migrated", slog.Int64("version", version))
	}

	registry := prometheus.NewRegistry()
	svc := render.NewService(
		logger,
		cfg.Render,
		render.NewMetrics(registry),
		presentation.New(db),
		template.New(db),
		rule.New(db),
		gitsawe.New(db),
		sqldb.NewTxManager(db),
	)

	return &App{
		Config:   cfg,
		Log:      logger,
		DB:       db,
		Registry: registry,
		Render:   svc,
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
