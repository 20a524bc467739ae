package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/music-backend/app/modules/music"
	musicmigrations "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/music-backend/app/server"
	"github.com/Black-And-White-Club/music-backend/config"
	"github.com/Black-And-White-Club/music-backend/db/bundb"
	"github.com/Black-And-White-Club/music-backend/pkg/observability"
	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
	"github.com/uptrace/bun"
)

// App holds the process-wide components.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Modules       *Modules
	DB            *bun.DB
	Router        http.Handler
	Server        *http.Server
	logger        *slog.Logger
}

// Modules groups the domain modules.
type Modules struct {
	MusicModule *music.Module
}

// NewApp opens the database, builds every module and the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(config.ToObsConfig(cfg))
	return NewAppWithObservability(ctx, cfg, obs)
}

// NewAppWithObservability is NewApp with caller supplied observability components.
func NewAppWithObservability(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing application",
		attr.String("environment", cfg.Observability.Environment),
		attr.String("database_driver", cfg.Database.Driver),
	)

	db, err := bundb.NewDB(ctx, cfg.Database, logger, cfg.Observability.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// SQLite databases are local and usually in memory, so they are migrated on start.
	// Postgres schemas are managed with cmd/bun.
	if cfg.Database.Driver == config.DriverSQLite {
		group, err := musicmigrations.Apply(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		logger.InfoContext(ctx, "Applied sqlite migrations", attr.String("group", group.String()))
	}

	router := server.NewRouter(cfg, obs, db)

	musicModule, err := music.NewModule(ctx, cfg, obs, db, router, server.APIMiddlewares(cfg)...)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize music module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		Modules:       &Modules{MusicModule: musicModule},
		DB:            db,
		Router:        router,
		Server:        server.NewHTTPServer(cfg, router),
		logger:        logger,
	}, nil
}

// Close shuts down the HTTP server, the modules and the database pool.
func (app *App) Close(ctx context.Context) error {
	app.logger.InfoContext(ctx, "Shutting down application")

	var firstErr error
	if app.Server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, app.Config.HTTP.ShutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			app.logger.ErrorContext(ctx, "Server forced to shutdown", attr.Error(err))
			firstErr = err
		}
	}

	if app.Modules != nil && app.Modules.MusicModule != nil {
		if err := app.Modules.MusicModule.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.logger.ErrorContext(ctx, "Error closing database connection", attr.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	app.logger.InfoContext(ctx, "Application shut down")
	return firstErr
}
