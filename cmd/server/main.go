package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/goaccounts/internal/adapter/http"
	"github.com/iho/goaccounts/internal/adapter/http/handler"
	"github.com/iho/goaccounts/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/goaccounts/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/goaccounts/internal/adapter/repository/redis"
	"github.com/iho/goaccounts/internal/infrastructure/config"
	"github.com/iho/goaccounts/internal/infrastructure/eventpublisher"
	"github.com/iho/goaccounts/internal/infrastructure/export"
	"github.com/iho/goaccounts/internal/infrastructure/logger"
	"github.com/iho/goaccounts/internal/infrastructure/metrics"
	"github.com/iho/goaccounts/internal/infrastructure/postgres"
	"github.com/iho/goaccounts/internal/infrastructure/redis"
	"github.com/iho/goaccounts/internal/usecase"
)

const (
	serviceName         = "goaccounts"
	limiterCleanupEvery = 10 * time.Minute
	limiterMaxIdle      = time.Hour
	redisDialTimeout    = 5 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
		Output:  os.Stderr,
	})
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, redisDialTimeout)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to redis")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Statement delivery
	publisher, closePublisher := newPublisher(cfg, logger, appMetrics)
	defer closePublisher()

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(logger)
	entityRepo := postgresRepo.NewEntityRepository(pool, retrier)
	documentRepo := postgresRepo.NewDocumentRepository(pool, retrier)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	accountsUC := usecase.NewCurrentAccountUseCase(entityRepo, documentRepo, usecase.CurrentAccountConfig{
		Logger:      &logger,
		Recorder:    appMetrics,
		Concurrency: cfg.RollupConcurrency,
	})
	statementUC := usecase.NewStatementUseCase(accountsUC, export.NewXLSXRenderer(), publisher, idGen, usecase.StatementConfig{
		Logger:   &logger,
		Recorder: appMetrics,
	})

	// Rate limiting
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	rateLimiter.OnLimited = appMetrics.IncRateLimitHit

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CurrentAccountHandler: handler.NewCurrentAccountHandler(accountsUC),
		StatementHandler:      handler.NewStatementHandler(statementUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		Logger:                logger,
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		RateLimiter:           rateLimiter,
		HTTPMetrics:           middleware.NewHTTPMetrics(registry),
		MetricsHandler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})

	server := newServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		rateLimiter.Run(gctx, limiterCleanupEvery, limiterMaxIdle)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newPublisher returns the Kafka publisher, or a logging one when no brokers
// are configured. The returned func closes it.
func newPublisher(cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (usecase.StatementPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn().Msg("no kafka brokers configured, statements will only be logged")
		return eventpublisher.NewLogPublisher(logger), func() {}
	}

	p := eventpublisher.NewKafkaPublisher(eventpublisher.Config{
		Brokers:    cfg.KafkaBrokers,
		Topic:      cfg.StatementTopic,
		MaxRetries: cfg.PublishMaxRetries,
		Logger:     &logger,
		OnRetry:    m.IncPublishRetry,
	})

	return p, func() {
		if err := p.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close kafka writer")
		}
	}
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}
