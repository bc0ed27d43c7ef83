package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSummary holds totals computed over the unfiltered movement list.
type AccountSummary struct {
	TotalDebits        decimal.Decimal
	TotalCredits       decimal.Decimal
	OldestMovement     *time.Time
	LastMovement       *time.Time
	AveragePaymentDays int
}

// CurrentAccountReport is the full current-account view of one entity. It is
// built fresh for every request.
type CurrentAccountReport struct {
	EntityID       string
	EntityName     string
	EntityType     EntityKind
	CurrentBalance decimal.Decimal
	CreditLimit    *decimal.Decimal
	Movements      []AccountMovement
	Summary        AccountSummary
	Aging          AgingAnalysis
	GeneratedAt    time.Time
}

// IsActive reports whether the account carries a nonzero balance.
func (r *CurrentAccountReport) IsActive() bool {
	return !r.CurrentBalance.IsZero()
}

// AvailableCredit returns the unused credit line, or nil without a limit.
func (r *CurrentAccountReport) AvailableCredit() *decimal.Decimal {
	if r.CreditLimit == nil {
		return nil
	}
	available := r.CreditLimit.Sub(r.CurrentBalance)
	return &available
}

// OverCreditLimit reports whether the balance exceeds the credit limit.
func (r *CurrentAccountReport) OverCreditLimit() bool {
	return r.CreditLimit != nil && r.CurrentBalance.GreaterThan(*r.CreditLimit)
}

// ReportFilters narrows a single report.
type ReportFilters struct {
	Window        *DateRange
	MovementTypes []MovementType
}

// AccountStatus filters rollups by activity.
type AccountStatus string

const (
	AccountStatusAny      AccountStatus = ""
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// RollupFilters narrows a multi-entity rollup after the reports are built.
type RollupFilters struct {
	ReportFilters
	MinBalance *decimal.Decimal
	MaxBalance *decimal.Decimal
	Status     AccountStatus
}

// Match reports whether r passes the balance and status filters.
func (f RollupFilters) Match(r *CurrentAccountReport) bool {
	if f.MinBalance != nil && r.CurrentBalance.LessThan(*f.MinBalance) {
		return false
	}
	if f.MaxBalance != nil && r.CurrentBalance.GreaterThan(*f.MaxBalance) {
		return false
	}

	switch f.Status {
	case AccountStatusActive:
		return r.IsActive()
	case AccountStatusInactive:
		return !r.IsActive()
	}

	return true
}

// AccountsOverview aggregates a rollup for dashboards.
type AccountsOverview struct {
	CompanyID       string
	Kind            EntityKind
	Accounts        int
	ActiveAccounts  int
	OverCreditLimit int
	FailedAccounts  int
	TotalBalance    decimal.Decimal
	Aging           AgingAnalysis
	GeneratedAt     time.Time
}
