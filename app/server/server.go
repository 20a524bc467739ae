// Package server builds the HTTP surface shared by every module: the root
// router, cross-cutting middleware, health probes and the metrics endpoint.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/music-backend/config"
	"github.com/Black-And-White-Club/music-backend/pkg/observability"
	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const readyTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// NewRouter returns the root router with request id, logging, panic recovery
// and CORS installed, plus /health, /ready and (when enabled) /metrics.
func NewRouter(cfg *config.Config, obs observability.Observability, db Pinger) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(obs.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(cfg.HTTP.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "OK", Environment: cfg.Observability.Environment})
	})

	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(req.Context(), readyTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				obs.Logger.WarnContext(ctx, "Readiness check failed",
					attr.ExtractCorrelationID(ctx),
					attr.Error(err),
				)
				writeDetail(w, http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "OK", Environment: cfg.Observability.Environment})
	})

	if cfg.Observability.MetricsEnabled && obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}

	return r
}

// APIMiddlewares returns the middleware applied to module API routes.
func APIMiddlewares(cfg *config.Config) []func(http.Handler) http.Handler {
	if cfg.HTTP.RateLimitRPS <= 0 {
		return nil
	}
	limiter := NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst)
	return []func(http.Handler) http.Handler{RateLimitMiddleware(limiter)}
}

// NewHTTPServer wraps handler in an http.Server configured from cfg.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}
}
