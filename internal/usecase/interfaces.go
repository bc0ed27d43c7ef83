package usecase

import (
	"context"
	"time"

	"github.com/iho/goaccounts/internal/domain"
)

// EntityRepository defines data access for customers and suppliers.
type EntityRepository interface {
	// GetByID returns domain.ErrEntityNotFound when the entity does not exist.
	GetByID(ctx context.Context, id string, kind domain.EntityKind) (*domain.Entity, error)
	ListByCompany(ctx context.Context, companyID string, kind domain.EntityKind, limit, offset int) ([]*domain.Entity, error)
}

// DocumentRepository reads an entity's billing documents with their payments.
type DocumentRepository interface {
	// ListBillingDocuments returns documents ascending by date, each with its
	// payments ascending by date. A non-nil window is applied to both.
	// Returns domain.ErrEntityNotFound when the entity does not exist.
	ListBillingDocuments(ctx context.Context, entityID string, kind domain.EntityKind, window *domain.DateRange) ([]domain.BillingDocument, error)
}

// ReportBuilder builds a single current-account report.
type ReportBuilder interface {
	GetCurrentAccountReport(ctx context.Context, entityID string, kind domain.EntityKind, filters domain.ReportFilters) (*domain.CurrentAccountReport, error)
}

// StatementRenderer renders a report as a downloadable document.
type StatementRenderer interface {
	Render(report *domain.CurrentAccountReport) ([]byte, error)
	FileName(report *domain.CurrentAccountReport) string
}

// StatementPublisher hands statement requests to the mail delivery pipeline.
type StatementPublisher interface {
	Publish(ctx context.Context, event *domain.StatementRequested) error
}

// Recorder receives operational measurements from the use cases.
type Recorder interface {
	ObserveReport(kind domain.EntityKind, status string, duration time.Duration, movements int)
	IncRollupFailure(kind domain.EntityKind)
	IncStatement(status string)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyPending is the value held by an idempotency key while the first
// request using it is still running.
const IdempotencyPending = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}

type noopRecorder struct{}

func (noopRecorder) ObserveReport(domain.EntityKind, string, time.Duration, int) {}
func (noopRecorder) IncRollupFailure(domain.EntityKind)                          {}
func (noopRecorder) IncStatement(string)                                         {}
