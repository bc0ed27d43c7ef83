package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goaccounts/internal/adapter/repository/postgres"
	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
	"github.com/iho/goaccounts/tests/testutil"
)

var reportDay = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 10, 0, 0, 0, time.UTC)
}

func newAccountsUseCase(db *testutil.TestDB) *usecase.CurrentAccountUseCase {
	return usecase.NewCurrentAccountUseCase(
		postgres.NewEntityRepository(db.Pool, nil),
		postgres.NewDocumentRepository(db.Pool, nil),
		usecase.CurrentAccountConfig{
			Concurrency: 4,
			Now:         func() time.Time { return reportDay },
		},
	)
}

// seedCustomer creates a customer with one settled and one open sale.
func seedCustomer(ctx context.Context, db *testutil.TestDB, companyID, name string, limit *decimal.Decimal) *domain.Entity {
	customer := db.CreateCustomer(ctx, companyID, name, limit)

	paid := db.CreateSale(ctx, customer, "0001", day(time.February, 20), dec(1000), domain.PaymentStatusPaid)
	db.AddSalePayment(ctx, paid, dec(1000), day(time.February, 25))
	db.CreateSale(ctx, customer, "0002", day(time.March, 25), dec(500), domain.PaymentStatusPending)

	return customer
}

func TestCurrentAccountReport_Customer(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	db.TruncateAll(ctx)

	limit := dec(400)
	customer := seedCustomer(ctx, db, testutil.GenerateID(), "Acme", &limit)

	report, err := newAccountsUseCase(db).GetCurrentAccountReport(ctx, customer.ID, domain.EntityKindCustomer, domain.ReportFilters{})
	require.NoError(t, err)

	assert.Equal(t, "Acme", report.EntityName)
	assert.True(t, report.CurrentBalance.Equal(dec(500)), "balance %s", report.CurrentBalance)
	require.Len(t, report.Movements, 3)
	assert.Equal(t, domain.MovementTypeSale, report.Movements[0].Type)
	assert.Equal(t, domain.MovementTypePayment, report.Movements[1].Type)
	assert.True(t, report.Movements[1].Balance.IsZero())
	assert.Equal(t, domain.MovementTypeSale, report.Movements[2].Type)

	assert.True(t, report.Aging.Days30To60.Equal(dec(1000)))
	assert.True(t, report.Aging.Current.Equal(dec(500)))
	assert.Equal(t, 5, report.Summary.AveragePaymentDays)

	require.NotNil(t, report.CreditLimit)
	assert.True(t, report.OverCreditLimit())
}

func TestCurrentAccountReport_WindowIsAppliedInSQL(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	db.TruncateAll(ctx)

	customer := seedCustomer(ctx, db, testutil.GenerateID(), "Acme", nil)

	filters := domain.ReportFilters{Window: &domain.DateRange{Start: day(time.March, 1)}}
	report, err := newAccountsUseCase(db).GetCurrentAccountReport(ctx, customer.ID, domain.EntityKindCustomer, filters)
	require.NoError(t, err)

	require.Len(t, report.Movements, 1)
	assert.Equal(t, "0002", report.Movements[0].Reference)
	assert.True(t, report.CurrentBalance.Equal(dec(500)))
	assert.Equal(t, 0, report.Summary.AveragePaymentDays)
}

func TestCurrentAccountReport_Supplier(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	db.TruncateAll(ctx)

	supplier := db.CreateSupplier(ctx, testutil.GenerateID(), "Widgets")
	order := db.CreatePurchaseOrder(ctx, supplier, "OC-1", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), dec(5000), domain.PaymentStatusPartial)
	db.AddPurchaseOrderPayment(ctx, order, dec(1000), time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC))

	report, err := newAccountsUseCase(db).GetCurrentAccountReport(ctx, supplier.ID, domain.EntityKindSupplier, domain.ReportFilters{})
	require.NoError(t, err)

	assert.True(t, report.CurrentBalance.Equal(dec(4000)), "balance %s", report.CurrentBalance)
	assert.True(t, report.Aging.Over90.Equal(dec(5000)))
	assert.Nil(t, report.CreditLimit)
	require.Len(t, report.Movements, 2)
	assert.Equal(t, domain.MovementTypePurchase, report.Movements[0].Type)
}

func TestCurrentAccountReport_NotFound(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	_, err := newAccountsUseCase(db).GetCurrentAccountReport(ctx, testutil.GenerateID(), domain.EntityKindSupplier, domain.ReportFilters{})

	assert.ErrorIs(t, err, domain.ErrEntityNotFound)

	var accountErr *domain.AccountError
	require.ErrorAs(t, err, &accountErr)
	assert.Equal(t, domain.MsgSupplierNotFound, accountErr.Message)
}

func TestCurrentAccountRollup(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	db.TruncateAll(ctx)

	companyID := testutil.GenerateID()

	seedCustomer(ctx, db, companyID, "Acme", nil)

	big := db.CreateCustomer(ctx, companyID, "Beta", nil)
	db.CreateSale(ctx, big, "0100", time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), dec(2000), domain.PaymentStatusPending)

	db.CreateCustomer(ctx, companyID, "Gamma", nil)

	// Another company's customer must not show up.
	seedCustomer(ctx, db, testutil.GenerateID(), "Outsider", nil)

	uc := newAccountsUseCase(db)

	reports, err := uc.GetAllCurrentAccounts(ctx, companyID, domain.EntityKindCustomer, domain.RollupFilters{})
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, []string{"Beta", "Acme", "Gamma"}, []string{reports[0].EntityName, reports[1].EntityName, reports[2].EntityName})

	active, err := uc.GetAllCurrentAccounts(ctx, companyID, domain.EntityKindCustomer, domain.RollupFilters{Status: domain.AccountStatusActive})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	overview, err := uc.GetAccountsOverview(ctx, companyID, domain.EntityKindCustomer, domain.RollupFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, overview.Accounts)
	assert.Equal(t, 2, overview.ActiveAccounts)
	assert.True(t, overview.TotalBalance.Equal(dec(2500)))
	assert.True(t, overview.Aging.Over90.Equal(dec(2000)))
}
