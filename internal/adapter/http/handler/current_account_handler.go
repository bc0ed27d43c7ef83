package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goaccounts/internal/adapter/http/dto"
	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

// CurrentAccountService defines the report operations used by the handler.
type CurrentAccountService interface {
	GetCurrentAccountReport(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) (*domain.CurrentAccountReport, error)
	BuildRollup(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*usecase.Rollup, error)
	GetAccountsOverview(ctx context.Context, companyID string, kind domain.EntityKind, filters domain.RollupFilters) (*domain.AccountsOverview, error)
}

// CurrentAccountHandler handles current-account report requests.
type CurrentAccountHandler struct {
	accounts CurrentAccountService
}

// NewCurrentAccountHandler creates a new CurrentAccountHandler.
func NewCurrentAccountHandler(accounts CurrentAccountService) *CurrentAccountHandler {
	return &CurrentAccountHandler{accounts: accounts}
}

// Report handles GET /api/v1/{kind}/{id}/account.
func (h *CurrentAccountHandler) Report(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filters, err := dto.ParseReportFilters(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	report, err := h.accounts.GetCurrentAccountReport(r.Context(), chi.URLParam(r, "id"), kind, filters)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// List handles GET /api/v1/companies/{companyID}/{kind}/accounts.
func (h *CurrentAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, filters, ok := h.rollupParams(w, r)
	if !ok {
		return
	}

	rollup, err := h.accounts.BuildRollup(r.Context(), chi.URLParam(r, "companyID"), kind, filters)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RollupFromDomain(kind, rollup))
}

// Overview handles GET /api/v1/companies/{companyID}/{kind}/accounts/overview.
func (h *CurrentAccountHandler) Overview(w http.ResponseWriter, r *http.Request) {
	kind, filters, ok := h.rollupParams(w, r)
	if !ok {
		return
	}

	overview, err := h.accounts.GetAccountsOverview(r.Context(), chi.URLParam(r, "companyID"), kind, filters)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OverviewFromDomain(overview))
}

func (h *CurrentAccountHandler) rollupParams(w http.ResponseWriter, r *http.Request) (domain.EntityKind, domain.RollupFilters, bool) {
	kind, err := parseKind(r)
	if err != nil {
		writeDomainError(w, r, err)
		return "", domain.RollupFilters{}, false
	}

	filters, err := dto.ParseRollupFilters(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, err)
		return "", domain.RollupFilters{}, false
	}

	return kind, filters, true
}
