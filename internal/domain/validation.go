package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email format")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateDateRange rejects windows whose start is after their end.
func ValidateDateRange(r *DateRange) error {
	if r == nil || r.Start.IsZero() || r.End.IsZero() {
		return nil
	}

	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidDateRange,
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}

	return nil
}

// ValidateMovementTypes rejects unknown movement types
func ValidateMovementTypes(types []MovementType) error {
	for _, t := range types {
		if !t.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidMovementType, t)
		}
	}
	return nil
}

// ValidateReportFilters validates the filters of a single report.
func ValidateReportFilters(f ReportFilters) error {
	if err := ValidateDateRange(f.Window); err != nil {
		return err
	}
	return ValidateMovementTypes(f.MovementTypes)
}

// ValidateRollupFilters validates rollup filters, including the embedded report filters.
func ValidateRollupFilters(f RollupFilters) error {
	if err := ValidateReportFilters(f.ReportFilters); err != nil {
		return err
	}

	if f.MinBalance != nil && f.MaxBalance != nil && f.MinBalance.GreaterThan(*f.MaxBalance) {
		return fmt.Errorf("%w: min %s is greater than max %s", ErrInvalidBalanceRange,
			f.MinBalance.String(), f.MaxBalance.String())
	}

	switch f.Status {
	case AccountStatusAny, AccountStatusActive, AccountStatusInactive:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}

	return nil
}

// ParseAccountStatus parses a rollup status filter
func ParseAccountStatus(s string) (AccountStatus, error) {
	status := AccountStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case AccountStatusAny, AccountStatusActive, AccountStatusInactive:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ParseMovementTypes parses a comma separated list of movement types.
func ParseMovementTypes(csv string) ([]MovementType, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}

	parts := strings.Split(csv, ",")
	types := make([]MovementType, 0, len(parts))
	for _, p := range parts {
		t := MovementType(strings.ToLower(strings.TrimSpace(p)))
		if t == "" {
			continue
		}
		types = append(types, t)
	}

	if err := ValidateMovementTypes(types); err != nil {
		return nil, err
	}

	return types, nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
