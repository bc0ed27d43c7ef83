package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goaccounts/internal/adapter/http/dto"
	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

type accountServiceStub struct {
	reportFn   func(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) (*domain.CurrentAccountReport, error)
	rollupFn   func(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*usecase.Rollup, error)
	overviewFn func(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*domain.AccountsOverview, error)
}

func (s *accountServiceStub) GetCurrentAccountReport(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) (*domain.CurrentAccountReport, error) {
	return s.reportFn(ctx, entityID, kind, filters)
}

func (s *accountServiceStub) BuildRollup(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*usecase.Rollup, error) {
	return s.rollupFn(ctx, companyID, kind, filters)
}

func (s *accountServiceStub) GetAccountsOverview(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*domain.AccountsOverview, error) {
	return s.overviewFn(ctx, companyID, kind, filters)
}

func newAccountRouter(svc CurrentAccountService) http.Handler {
	h := NewCurrentAccountHandler(svc)
	r := chi.NewRouter()
	r.Get("/{kind}/{id}/account", h.Report)
	r.Get("/companies/{companyID}/{kind}/accounts", h.List)
	r.Get("/companies/{companyID}/{kind}/accounts/overview", h.Overview)
	return r
}

func testReport(id, name string, balance int64) *domain.CurrentAccountReport {
	return &domain.CurrentAccountReport{
		EntityID:       id,
		EntityName:     name,
		EntityType:     domain.EntityKindCustomer,
		CurrentBalance: decimal.NewFromInt(balance),
		Aging: domain.AgingAnalysis{
			Current:    decimal.NewFromInt(balance),
			Days30To60: decimal.Zero,
			Days61To90: decimal.Zero,
			Over90:     decimal.Zero,
		},
		GeneratedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCurrentAccountHandler_Report(t *testing.T) {
	var (
		gotID      string
		gotKind    domain.EntityKind
		gotFilters domain.ReportFilters
	)
	router := newAccountRouter(&accountServiceStub{
		reportFn: func(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) (*domain.CurrentAccountReport, error) {
			gotID, gotKind, gotFilters = entityID, kind, filters
			return testReport(entityID, "Acme", 300), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/suppliers/p1/account?movement_types=purchase&start_date=2024-01-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "p1", gotID)
	assert.Equal(t, domain.EntityKindSupplier, gotKind)
	assert.Equal(t, []domain.MovementType{domain.MovementTypePurchase}, gotFilters.MovementTypes)
	require.NotNil(t, gotFilters.Window)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gotFilters.Window.Start)

	var resp dto.ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Acme", resp.EntityName)
	assert.Equal(t, "300", resp.CurrentBalance.String())
}

func TestCurrentAccountHandler_ReportErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		expected int
	}{
		{"unknown kind", "/employees/e1/account", nil, http.StatusBadRequest},
		{"bad movement type", "/customers/c1/account?movement_types=refund", nil, http.StatusBadRequest},
		{"not found", "/customers/c1/account", &domain.AccountError{Message: domain.MsgCustomerNotFound, Err: domain.ErrEntityNotFound}, http.StatusNotFound},
		{"query failure", "/customers/c1/account", &domain.AccountError{Message: domain.MsgReportFailed, Err: domain.ErrQueryFailure}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountRouter(&accountServiceStub{
				reportFn: func(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) (*domain.CurrentAccountReport, error) {
					if tt.err == nil {
						t.Fatalf("service should not be called")
					}
					return nil, tt.err
				},
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestCurrentAccountHandler_List(t *testing.T) {
	var gotFilters domain.RollupFilters
	router := newAccountRouter(&accountServiceStub{
		rollupFn: func(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*usecase.Rollup, error) {
			assert.Equal(t, "co1", companyID)
			assert.Equal(t, domain.EntityKindCustomer, kind)
			gotFilters = filters
			return &usecase.Rollup{Reports: []*domain.CurrentAccountReport{
				testReport("c2", "Beta", 900),
				testReport("c1", "Acme", 100),
			}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/companies/co1/customers/accounts?min_balance=50&status=active", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, gotFilters.MinBalance)
	assert.Equal(t, "50", gotFilters.MinBalance.String())
	assert.Equal(t, domain.AccountStatusActive, gotFilters.Status)

	var resp dto.RollupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "c2", resp.Accounts[0].EntityID)
	assert.Equal(t, "c1", resp.Accounts[1].EntityID)
}

func TestCurrentAccountHandler_ListInvalidFilters(t *testing.T) {
	router := newAccountRouter(&accountServiceStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/co1/customers/accounts?status=closed", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCurrentAccountHandler_Overview(t *testing.T) {
	router := newAccountRouter(&accountServiceStub{
		overviewFn: func(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*domain.AccountsOverview, error) {
			return &domain.AccountsOverview{
				CompanyID:      companyID,
				Kind:           kind,
				Accounts:       2,
				ActiveAccounts: 1,
				TotalBalance:   decimal.NewFromInt(1500),
				Aging: domain.AgingAnalysis{
					Current:    decimal.NewFromInt(1500),
					Days30To60: decimal.Zero,
					Days61To90: decimal.Zero,
					Over90:     decimal.Zero,
				},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/co1/suppliers/accounts/overview", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.OverviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "co1", resp.CompanyID)
	assert.Equal(t, "supplier", resp.Kind)
	assert.Equal(t, 2, resp.Accounts)
	assert.Equal(t, "1500", resp.TotalBalance.String())
}
