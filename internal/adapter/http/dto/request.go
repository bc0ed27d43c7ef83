package dto

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goaccounts/internal/domain"
)

const dateOnly = "2006-01-02"

// SendStatementRequest represents a request to e-mail an account statement.
type SendStatementRequest struct {
	Email string `json:"email"`
}

// Validate checks the request body.
func (r *SendStatementRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return nil
}

// ParseReportFilters reads start_date, end_date and movement_types.
func ParseReportFilters(q url.Values) (domain.ReportFilters, error) {
	var filters domain.ReportFilters

	start, err := parseDate(q.Get("start_date"), false)
	if err != nil {
		return filters, fmt.Errorf("%w: start_date: %w", domain.ErrValidation, err)
	}
	end, err := parseDate(q.Get("end_date"), true)
	if err != nil {
		return filters, fmt.Errorf("%w: end_date: %w", domain.ErrValidation, err)
	}
	if !start.IsZero() || !end.IsZero() {
		filters.Window = &domain.DateRange{Start: start, End: end}
	}

	filters.MovementTypes, err = domain.ParseMovementTypes(q.Get("movement_types"))
	if err != nil {
		return filters, err
	}

	return filters, nil
}

// ParseRollupFilters reads the report filters plus min_balance, max_balance
// and status.
func ParseRollupFilters(q url.Values) (domain.RollupFilters, error) {
	var filters domain.RollupFilters

	reportFilters, err := ParseReportFilters(q)
	if err != nil {
		return filters, err
	}
	filters.ReportFilters = reportFilters

	if filters.MinBalance, err = parseDecimal(q.Get("min_balance")); err != nil {
		return filters, fmt.Errorf("%w: min_balance: %w", domain.ErrValidation, err)
	}
	if filters.MaxBalance, err = parseDecimal(q.Get("max_balance")); err != nil {
		return filters, fmt.Errorf("%w: max_balance: %w", domain.ErrValidation, err)
	}

	if filters.Status, err = domain.ParseAccountStatus(q.Get("status")); err != nil {
		return filters, err
	}

	return filters, nil
}

// parseDate accepts RFC3339 or a plain date. A plain end date covers the
// whole day.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or %s, got %q", dateOnly, s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return t, nil
}

func parseDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
