package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

// MovementResponse represents one ledger line in API responses.
type MovementResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Reference   string          `json:"reference"`
}

// SummaryResponse represents the report totals.
type SummaryResponse struct {
	TotalDebits        decimal.Decimal `json:"total_debits"`
	TotalCredits       decimal.Decimal `json:"total_credits"`
	OldestMovement     *time.Time      `json:"oldest_movement,omitempty"`
	LastMovement       *time.Time      `json:"last_movement,omitempty"`
	AveragePaymentDays int             `json:"average_payment_days"`
}

// AgingResponse represents the aging buckets.
type AgingResponse struct {
	Current    decimal.Decimal `json:"current"`
	Days30To60 decimal.Decimal `json:"days_30_to_60"`
	Days61To90 decimal.Decimal `json:"days_61_to_90"`
	Over90     decimal.Decimal `json:"over_90"`
	Total      decimal.Decimal `json:"total"`
}

// ReportResponse represents a current-account report in API responses.
type ReportResponse struct {
	EntityID        string             `json:"entity_id"`
	EntityName      string             `json:"entity_name"`
	EntityType      string             `json:"entity_type"`
	CurrentBalance  decimal.Decimal    `json:"current_balance"`
	CreditLimit     *decimal.Decimal   `json:"credit_limit,omitempty"`
	AvailableCredit *decimal.Decimal   `json:"available_credit,omitempty"`
	OverCreditLimit bool               `json:"over_credit_limit"`
	Movements       []MovementResponse `json:"movements"`
	Summary         SummaryResponse    `json:"summary"`
	Aging           AgingResponse      `json:"aging"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// AgingFromDomain converts domain aging buckets to response.
func AgingFromDomain(a domain.AgingAnalysis) AgingResponse {
	return AgingResponse{
		Current:    a.Current,
		Days30To60: a.Days30To60,
		Days61To90: a.Days61To90,
		Over90:     a.Over90,
		Total:      a.Total(),
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []domain.AccountMovement) []MovementResponse {
	result := make([]MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementResponse{
			ID:          m.ID,
			Date:        m.Date,
			Type:        string(m.Type),
			Description: m.Description,
			Debit:       m.Debit,
			Credit:      m.Credit,
			Balance:     m.Balance,
			Reference:   m.Reference,
		}
	}
	return result
}

// ReportFromDomain converts a domain report to response.
func ReportFromDomain(r *domain.CurrentAccountReport) *ReportResponse {
	return &ReportResponse{
		EntityID:        r.EntityID,
		EntityName:      r.EntityName,
		EntityType:      string(r.EntityType),
		CurrentBalance:  r.CurrentBalance,
		CreditLimit:     r.CreditLimit,
		AvailableCredit: r.AvailableCredit(),
		OverCreditLimit: r.OverCreditLimit(),
		Movements:       MovementsFromDomain(r.Movements),
		Summary: SummaryResponse{
			TotalDebits:        r.Summary.TotalDebits,
			TotalCredits:       r.Summary.TotalCredits,
			OldestMovement:     r.Summary.OldestMovement,
			LastMovement:       r.Summary.LastMovement,
			AveragePaymentDays: r.Summary.AveragePaymentDays,
		},
		Aging:       AgingFromDomain(r.Aging),
		GeneratedAt: r.GeneratedAt,
	}
}

// AccountRowResponse is one line of a rollup. Movements are left out.
type AccountRowResponse struct {
	EntityID           string           `json:"entity_id"`
	EntityName         string           `json:"entity_name"`
	CurrentBalance     decimal.Decimal  `json:"current_balance"`
	CreditLimit        *decimal.Decimal `json:"credit_limit,omitempty"`
	OverCreditLimit    bool             `json:"over_credit_limit"`
	LastMovement       *time.Time       `json:"last_movement,omitempty"`
	AveragePaymentDays int              `json:"average_payment_days"`
	Aging              AgingResponse    `json:"aging"`
}

// RollupFailureResponse names an entity left out of a rollup.
type RollupFailureResponse struct {
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Error      string `json:"error"`
}

// RollupResponse represents a company's current accounts.
type RollupResponse struct {
	Kind     string                  `json:"kind"`
	Count    int                     `json:"count"`
	Accounts []AccountRowResponse    `json:"accounts"`
	Failures []RollupFailureResponse `json:"failures,omitempty"`
}

// RollupFromDomain converts a rollup to response.
func RollupFromDomain(kind domain.EntityKind, rollup *usecase.Rollup) *RollupResponse {
	resp := &RollupResponse{
		Kind:     string(kind),
		Count:    len(rollup.Reports),
		Accounts: make([]AccountRowResponse, len(rollup.Reports)),
	}

	for i, r := range rollup.Reports {
		resp.Accounts[i] = AccountRowResponse{
			EntityID:           r.EntityID,
			EntityName:         r.EntityName,
			CurrentBalance:     r.CurrentBalance,
			CreditLimit:        r.CreditLimit,
			OverCreditLimit:    r.OverCreditLimit(),
			LastMovement:       r.Summary.LastMovement,
			AveragePaymentDays: r.Summary.AveragePaymentDays,
			Aging:              AgingFromDomain(r.Aging),
		}
	}

	for _, f := range rollup.Failures {
		resp.Failures = append(resp.Failures, RollupFailureResponse{
			EntityID:   f.EntityID,
			EntityName: f.EntityName,
			Error:      f.Err.Error(),
		})
	}

	return resp
}

// OverviewResponse represents dashboard totals.
type OverviewResponse struct {
	CompanyID       string          `json:"company_id"`
	Kind            string          `json:"kind"`
	Accounts        int             `json:"accounts"`
	ActiveAccounts  int             `json:"active_accounts"`
	OverCreditLimit int             `json:"over_credit_limit"`
	FailedAccounts  int             `json:"failed_accounts"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	Aging           AgingResponse   `json:"aging"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// OverviewFromDomain converts an overview to response.
func OverviewFromDomain(o *domain.AccountsOverview) *OverviewResponse {
	return &OverviewResponse{
		CompanyID:       o.CompanyID,
		Kind:            string(o.Kind),
		Accounts:        o.Accounts,
		ActiveAccounts:  o.ActiveAccounts,
		OverCreditLimit: o.OverCreditLimit,
		FailedAccounts:  o.FailedAccounts,
		TotalBalance:    o.TotalBalance,
		Aging:           AgingFromDomain(o.Aging),
		GeneratedAt:     o.GeneratedAt,
	}
}

// StatementResponse represents the outcome of a statement request.
type StatementResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EventID string `json:"event_id,omitempty"`
}

// StatementFromResult converts a statement result to response.
func StatementFromResult(r usecase.StatementResult) *StatementResponse {
	return &StatementResponse{
		Success: r.Success,
		Message: r.Message,
		EventID: r.EventID,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
