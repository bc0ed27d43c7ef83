package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/goaccounts/internal/adapter/http/dto"
	"github.com/iho/goaccounts/internal/domain"
)

// Error codes returned in ErrorResponse.Error.
const (
	codeInvalidParameters = "invalid_parameters"
	codeNotFound          = "not_found"
	codeQueryFailed       = "query_failed"
	codeInternal          = "internal_error"
	codeInvalidBody       = "invalid_body"
	codeTimeout           = "timeout"
	codeCanceled          = "request_canceled"
)

// statusClientClosedRequest answers a request whose client went away.
const statusClientClosedRequest = 499

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// writeDomainError maps err to a status and writes the user-facing message.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapDomainError(err)

	log := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeError(w, status, errorCode(status), userMessage(err, status))
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, domain.ErrQueryFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return codeInvalidParameters
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusBadGateway:
		return codeQueryFailed
	case http.StatusGatewayTimeout:
		return codeTimeout
	case statusClientClosedRequest:
		return codeCanceled
	default:
		return codeInternal
	}
}

// userMessage prefers the Spanish message of an AccountError. Validation
// errors also carry the cause so clients can fix the request.
func userMessage(err error, status int) string {
	var accountErr *domain.AccountError
	if errors.As(err, &accountErr) {
		if status == http.StatusBadRequest && accountErr.Err != nil {
			return accountErr.Message + ": " + accountErr.Err.Error()
		}
		return accountErr.Message
	}

	switch status {
	case http.StatusBadRequest:
		return domain.MsgInvalidParameters + ": " + err.Error()
	default:
		return domain.MsgReportFailed
	}
}

// parseKind reads the {kind} URL parameter.
func parseKind(r *http.Request) (domain.EntityKind, error) {
	return domain.ParseEntityKind(chi.URLParam(r, "kind"))
}
