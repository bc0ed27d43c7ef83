package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goaccounts/internal/adapter/http/dto"
	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatementService defines the statement operations used by the handler.
type StatementService interface {
	SendAccountStatement(ctx context.Context, entityID string, kind domain.EntityKind, email string) usecase.StatementResult
	ExportStatement(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) ([]byte, string, error)
}

// StatementHandler handles statement export and delivery requests.
type StatementHandler struct {
	statements StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statements StatementService) *StatementHandler {
	return &StatementHandler{statements: statements}
}

// Send handles POST /api/v1/{kind}/{id}/account/statement. A queued
// statement answers 202; a failed one answers 422 with the Spanish message.
func (h *StatementHandler) Send(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req dto.SendStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	result := h.statements.SendAccountStatement(r.Context(), chi.URLParam(r, "id"), kind, req.Email)

	status := http.StatusAccepted
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, dto.StatementFromResult(result))
}

// Export handles GET /api/v1/{kind}/{id}/account/statement.xlsx.
func (h *StatementHandler) Export(w http.ResponseWriter, r *http.Request) {
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

	data, name, err := h.statements.ExportStatement(r.Context(), chi.URLParam(r, "id"), kind, filters)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
