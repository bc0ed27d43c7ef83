package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/goaccounts/internal/adapter/http/handler"
	"github.com/iho/goaccounts/internal/adapter/http/middleware"
	"github.com/iho/goaccounts/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CurrentAccountHandler *handler.CurrentAccountHandler
	StatementHandler      *handler.StatementHandler
	HealthHandler         *handler.HealthHandler

	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	HTTPMetrics      *middleware.HTTPMetrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Single current account, {kind} is customers or suppliers
		r.Route("/{kind}/{id}/account", func(r chi.Router) {
			r.Get("/", cfg.CurrentAccountHandler.Report)
			r.Get("/statement.xlsx", cfg.StatementHandler.Export)
			r.Post("/statement", cfg.StatementHandler.Send)
		})

		// Company rollups
		r.Route("/companies/{companyID}/{kind}/accounts", func(r chi.Router) {
			r.Get("/", cfg.CurrentAccountHandler.List)
			r.Get("/overview", cfg.CurrentAccountHandler.Overview)
		})
	})

	return r
}
