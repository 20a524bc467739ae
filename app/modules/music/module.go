package music

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musichandlers "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/handlers"
	musicmetrics "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/metrics"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	musicrouter "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/router"
	"github.com/Black-And-White-Club/music-backend/config"
	"github.com/Black-And-White-Club/music-backend/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the music module.
type Module struct {
	config   *config.Config
	service  musicservice.Service
	handlers musichandlers.Handlers
	router   *musicrouter.Router
	logger   *slog.Logger
}

// NewModule wires the music repositories, service and HTTP handlers and
// mounts the routes on httpRouter when one is given.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	middlewares ...func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing music module")

	metrics := musicmetrics.NewNoop()
	if cfg.Observability.MetricsEnabled && obs.Registry != nil {
		m, err := musicmetrics.NewPrometheus(obs.Registry, "music_backend")
		if err != nil {
			return nil, fmt.Errorf("failed to register music metrics: %w", err)
		}
		metrics = m
	}

	service := musicservice.NewMusicService(
		musicdb.NewBandRepository(db),
		musicdb.NewMusicianRepository(db),
		musicdb.NewMembershipRepository(db),
		logger,
		metrics,
		tracer,
		db,
	)

	handlers := musichandlers.NewMusicHandlers(service, logger, tracer)
	router := musicrouter.NewRouter(handlers)

	if httpRouter != nil {
		router.Mount(httpRouter, middlewares...)
	}

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		router:   router,
		logger:   logger,
	}, nil
}

// Close stops the music module. Requests drain with the HTTP server.
func (m *Module) Close() error {
	m.logger.Info("Music module stopped")
	return nil
}

// GetService returns the music service for use by other modules.
func (m *Module) GetService() musicservice.Service {
	return m.service
}
