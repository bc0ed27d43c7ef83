package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

func sampleReport() *domain.CurrentAccountReport {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	limit := decimal.NewFromInt(1000)

	return &domain.CurrentAccountReport{
		EntityID:       "c1",
		EntityName:     "Acme",
		EntityType:     domain.EntityKindCustomer,
		CurrentBalance: decimal.RequireFromString("1250.50"),
		CreditLimit:    &limit,
		Movements: []domain.AccountMovement{{
			ID: "s1", Date: day, Type: domain.MovementTypeSale, Description: "Venta #1", Reference: "1",
			Debit: decimal.RequireFromString("1250.50"), Credit: decimal.Zero, Balance: decimal.RequireFromString("1250.50"),
		}},
		Summary: domain.AccountSummary{
			TotalDebits:    decimal.RequireFromString("1250.50"),
			TotalCredits:   decimal.Zero,
			OldestMovement: &day,
			LastMovement:   &day,
		},
		Aging: domain.AgingAnalysis{
			Current:    decimal.RequireFromString("1250.50"),
			Days30To60: decimal.Zero,
			Days61To90: decimal.Zero,
			Over90:     decimal.Zero,
		},
		GeneratedAt: day,
	}
}

func TestReportFromDomain(t *testing.T) {
	resp := ReportFromDomain(sampleReport())

	assert.Equal(t, "c1", resp.EntityID)
	assert.Equal(t, "customer", resp.EntityType)
	assert.True(t, resp.OverCreditLimit)
	require.NotNil(t, resp.AvailableCredit)
	assert.Equal(t, "-250.5", resp.AvailableCredit.String())
	require.Len(t, resp.Movements, 1)
	assert.Equal(t, "sale", resp.Movements[0].Type)
	assert.Equal(t, "1250.5", resp.Aging.Total.String())
}

func TestReportResponse_JSONUsesStringDecimals(t *testing.T) {
	body, err := json.Marshal(ReportFromDomain(sampleReport()))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))

	assert.Equal(t, "1250.5", raw["current_balance"])
	assert.Equal(t, "1000", raw["credit_limit"])

	aging, ok := raw["aging"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0", aging["over_90"])
}

func TestReportFromDomain_WithoutCreditLimit(t *testing.T) {
	report := sampleReport()
	report.CreditLimit = nil

	body, err := json.Marshal(ReportFromDomain(report))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))

	assert.NotContains(t, raw, "credit_limit")
	assert.NotContains(t, raw, "available_credit")
	assert.Equal(t, false, raw["over_credit_limit"])
}

func TestRollupFromDomain(t *testing.T) {
	rollup := &usecase.Rollup{
		Reports: []*domain.CurrentAccountReport{sampleReport()},
		Failures: []usecase.RollupFailure{
			{EntityID: "c2", EntityName: "Broken", Err: errors.New("timeout")},
		},
	}

	resp := RollupFromDomain(domain.EntityKindCustomer, rollup)

	assert.Equal(t, "customer", resp.Kind)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Accounts, 1)
	assert.Equal(t, "Acme", resp.Accounts[0].EntityName)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, RollupFailureResponse{EntityID: "c2", EntityName: "Broken", Error: "timeout"}, resp.Failures[0])
}

func TestOverviewFromDomain(t *testing.T) {
	overview := &domain.AccountsOverview{
		CompanyID:      "co1",
		Kind:           domain.EntityKindSupplier,
		Accounts:       3,
		ActiveAccounts: 2,
		FailedAccounts: 1,
		TotalBalance:   decimal.NewFromInt(900),
		Aging: domain.AgingAnalysis{
			Current:    decimal.NewFromInt(400),
			Days30To60: decimal.Zero,
			Days61To90: decimal.Zero,
			Over90:     decimal.NewFromInt(500),
		},
	}

	resp := OverviewFromDomain(overview)

	assert.Equal(t, "supplier", resp.Kind)
	assert.Equal(t, 3, resp.Accounts)
	assert.Equal(t, 2, resp.ActiveAccounts)
	assert.Equal(t, 1, resp.FailedAccounts)
	assert.Equal(t, "900", resp.Aging.Total.String())
}

func TestStatementFromResult(t *testing.T) {
	resp := StatementFromResult(usecase.StatementResult{Success: true, Message: "ok", EventID: "evt-1"})
	assert.Equal(t, &StatementResponse{Success: true, Message: "ok", EventID: "evt-1"}, resp)
}
