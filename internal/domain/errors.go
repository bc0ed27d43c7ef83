package domain

import (
	"context"
	"errors"
)

var (
	// Lookup errors
	ErrEntityNotFound = errors.New("entity not found")
	ErrQueryFailure   = errors.New("query failure")

	// Validation errors
	ErrValidation          = errors.New("validation failed")
	ErrInvalidEntityKind   = errors.New("invalid entity kind")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrInvalidMovementType = errors.New("invalid movement type")
	ErrInvalidBalanceRange = errors.New("invalid balance range")
	ErrInvalidStatus       = errors.New("invalid account status")
)

// Messages shown to users of the report pages.
const (
	MsgCustomerNotFound  = "Cliente no encontrado"
	MsgSupplierNotFound  = "Proveedor no encontrado"
	MsgReportFailed      = "Error al obtener el estado de cuenta"
	MsgInvalidParameters = "Parámetros inválidos"
)

// AccountError is returned by the current-account use cases. Message is a
// user-facing Spanish text; Err keeps the cause for errors.Is.
type AccountError struct {
	Op       string
	EntityID string
	Kind     EntityKind
	Message  string
	Err      error
}

func (e *AccountError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// NotFoundMessage returns the user-facing message for a missing entity.
func NotFoundMessage(kind EntityKind) string {
	if kind == EntityKindSupplier {
		return MsgSupplierNotFound
	}
	return MsgCustomerNotFound
}

// IsCanceled reports whether err comes from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsValidationError reports whether err is any validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidEntityKind) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidMovementType) ||
		errors.Is(err, ErrInvalidBalanceRange) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidEmail)
}
