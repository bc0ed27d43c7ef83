package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goaccounts/internal/adapter/http/handler"
	apimiddleware "github.com/iho/goaccounts/internal/adapter/http/middleware"
	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	require.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

func TestNewRouter_ServesReport(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers/c1/account", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"entity_id":"c1"`)
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/c1/account/statement", strings.NewReader(`{"email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, store.checkCalled, "expected idempotency store to be used")
	assert.True(t, store.updateCalled, "expected accepted response to be stored")
}

func TestNewRouter_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.HTTPMetrics = apimiddleware.NewHTTPMetrics(reg)
		cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/customers/c1/account", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/api/v1/{kind}/{id}/account`)
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	require.True(t, ok, "router does not implement chi.Routes")

	seen := map[string]bool{}
	err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /api/v1/{kind}/{id}/account/",
		"GET /api/v1/{kind}/{id}/account/statement.xlsx",
		"POST /api/v1/{kind}/{id}/account/statement",
		"GET /api/v1/companies/{companyID}/{kind}/accounts/",
		"GET /api/v1/companies/{companyID}/{kind}/accounts/overview",
	}

	for _, route := range expected {
		assert.True(t, seen[route], "expected route %s to be registered", route)
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler:         handler.NewHealthHandler(stubPinger{}, nil),
		CurrentAccountHandler: handler.NewCurrentAccountHandler(stubAccountService{}),
		StatementHandler:      handler.NewStatementHandler(stubStatementService{}),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubPinger struct{}

func (stubPinger) Ping(ctx context.Context) error { return nil }

type stubAccountService struct{}

func (stubAccountService) GetCurrentAccountReport(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) (*domain.CurrentAccountReport, error) {
	return &domain.CurrentAccountReport{
		EntityID:       entityID,
		EntityType:     kind,
		CurrentBalance: decimal.Zero,
	}, nil
}

func (stubAccountService) BuildRollup(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*usecase.Rollup, error) {
	return &usecase.Rollup{}, nil
}

func (stubAccountService) GetAccountsOverview(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*domain.AccountsOverview, error) {
	return &domain.AccountsOverview{CompanyID: companyID, Kind: kind}, nil
}

type stubStatementService struct{}

func (stubStatementService) SendAccountStatement(ctx context.Context, entityID string, kind domain.EntityKind, email string) usecase.StatementResult {
	return usecase.StatementResult{Success: true, Message: "Estado de cuenta enviado a " + email, EventID: "evt"}
}

func (stubStatementService) ExportStatement(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) ([]byte, string, error) {
	return []byte("xlsx"), "statement.xlsx", nil
}

type stubIdempotencyStore struct {
	checkCalled  bool
	updateCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.updateCalled = true
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
