package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/infrastructure/postgres"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool *pgxpool.Pool
	URL  string
	t    *testing.T
}

// NewTestDB connects to DATABASE_URL and applies the migrations. The test is
// skipped in -short mode or when DATABASE_URL is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	if err := postgres.RunMigrations(dbURL, MigrationsPath()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{DatabaseURL: dbURL, MaxConns: 10})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	db := &TestDB{Pool: pool, URL: dbURL, t: t}
	t.Cleanup(db.Cleanup)

	return db
}

// MigrationsPath finds the migrations from the module root or a test package.
func MigrationsPath() string {
	candidates := []string{
		"internal/infrastructure/postgres/migrations",
		"../../internal/infrastructure/postgres/migrations",
		"../../../internal/infrastructure/postgres/migrations",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return candidates[0]
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE sale_payments, sales, customers CASCADE;
		TRUNCATE TABLE purchase_order_payments, purchase_orders, suppliers CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateCustomer inserts a customer and returns it.
func (db *TestDB) CreateCustomer(ctx context.Context, companyID, name string, creditLimit *decimal.Decimal) *domain.Entity {
	db.t.Helper()

	id := GenerateID()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO customers (id, company_id, name, email, credit_limit) VALUES ($1, $2, $3, $4, $5)`,
		id, companyID, name, "billing@"+id+".test", numericArg(creditLimit))
	if err != nil {
		db.t.Fatalf("failed to create customer: %v", err)
	}

	return &domain.Entity{
		ID:          id,
		CompanyID:   companyID,
		Name:        name,
		Kind:        domain.EntityKindCustomer,
		CreditLimit: creditLimit,
	}
}

// CreateSupplier inserts a supplier and returns it.
func (db *TestDB) CreateSupplier(ctx context.Context, companyID, name string) *domain.Entity {
	db.t.Helper()

	id := GenerateID()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO suppliers (id, company_id, name, email) VALUES ($1, $2, $3, $4)`,
		id, companyID, name, "billing@"+id+".test")
	if err != nil {
		db.t.Fatalf("failed to create supplier: %v", err)
	}

	return &domain.Entity{ID: id, CompanyID: companyID, Name: name, Kind: domain.EntityKindSupplier}
}

// CreateSale inserts a sale for a customer and returns its ID.
func (db *TestDB) CreateSale(ctx context.Context, customer *domain.Entity, number string, date time.Time, total decimal.Decimal, status domain.PaymentStatus) string {
	db.t.Helper()

	id := GenerateID()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO sales (id, company_id, customer_id, number, date, total, payment_status) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, customer.CompanyID, customer.ID, number, date, total.String(), string(status))
	if err != nil {
		db.t.Fatalf("failed to create sale: %v", err)
	}

	return id
}

// AddSalePayment records a payment against a sale.
func (db *TestDB) AddSalePayment(ctx context.Context, saleID string, amount decimal.Decimal, date time.Time) string {
	db.t.Helper()

	id := GenerateID()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO sale_payments (id, sale_id, amount, date, method) VALUES ($1, $2, $3, $4, 'transfer')`,
		id, saleID, amount.String(), date)
	if err != nil {
		db.t.Fatalf("failed to add sale payment: %v", err)
	}

	return id
}

// CreatePurchaseOrder inserts a purchase order for a supplier and returns its ID.
func (db *TestDB) CreatePurchaseOrder(ctx context.Context, supplier *domain.Entity, number string, date time.Time, total decimal.Decimal, status domain.PaymentStatus) string {
	db.t.Helper()

	id := GenerateID()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO purchase_orders (id, company_id, supplier_id, number, date, total, payment_status) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, supplier.CompanyID, supplier.ID, number, date, total.String(), string(status))
	if err != nil {
		db.t.Fatalf("failed to create purchase order: %v", err)
	}

	return id
}

// AddPurchaseOrderPayment records a payment against a purchase order.
func (db *TestDB) AddPurchaseOrderPayment(ctx context.Context, orderID string, amount decimal.Decimal, date time.Time) string {
	db.t.Helper()

	id := GenerateID()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO purchase_order_payments (id, purchase_order_id, amount, date, method) VALUES ($1, $2, $3, $4, 'transfer')`,
		id, orderID, amount.String(), date)
	if err != nil {
		db.t.Fatalf("failed to add purchase order payment: %v", err)
	}

	return id
}

func numericArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
