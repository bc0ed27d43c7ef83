package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
)

// EntityStore is an in-memory implementation of EntityRepository.
type EntityStore struct {
	mu       sync.RWMutex
	entities map[string]*domain.Entity

	GetByIDFunc       func(ctx context.Context, id string, kind domain.EntityKind) (*domain.Entity, error)
	ListByCompanyFunc func(ctx context.Context, companyID string, kind domain.EntityKind, limit, offset int) ([]*domain.Entity, error)
}

func NewEntityStore(entities ...*domain.Entity) *EntityStore {
	s := &EntityStore{entities: make(map[string]*domain.Entity)}
	for _, e := range entities {
		s.Add(e)
	}
	return s
}

func (s *EntityStore) Add(e *domain.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[string(e.Kind)+"/"+e.ID] = e
}

func (s *EntityStore) GetByID(ctx context.Context, id string, kind domain.EntityKind) (*domain.Entity, error) {
	if s.GetByIDFunc != nil {
		return s.GetByIDFunc(ctx, id, kind)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entities[string(kind)+"/"+id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntityNotFound
}

// ListByCompany returns entities ordered by ID.
func (s *EntityStore) ListByCompany(ctx context.Context, companyID string, kind domain.EntityKind, limit, offset int) ([]*domain.Entity, error) {
	if s.ListByCompanyFunc != nil {
		return s.ListByCompanyFunc(ctx, companyID, kind, limit, offset)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Entity
	for _, e := range s.entities {
		if e.CompanyID == companyID && e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// DocumentStore is an in-memory implementation of DocumentRepository.
// Errors registered with Fail are returned for that entity.
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[string][]domain.BillingDocument
	errors map[string]error

	ListBillingDocumentsFunc func(ctx context.Context, entityID string, kind domain.EntityKind, window *domain.DateRange) ([]domain.BillingDocument, error)
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs:   make(map[string][]domain.BillingDocument),
		errors: make(map[string]error),
	}
}

func (s *DocumentStore) Add(entityID string, docs ...domain.BillingDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[entityID] = append(s.docs[entityID], docs...)
}

func (s *DocumentStore) Fail(entityID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[entityID] = err
}

// ListBillingDocuments applies the window to documents and payments the same
// way the postgres repository does.
func (s *DocumentStore) ListBillingDocuments(ctx context.Context, entityID string, kind domain.EntityKind, window *domain.DateRange) ([]domain.BillingDocument, error) {
	if s.ListBillingDocumentsFunc != nil {
		return s.ListBillingDocumentsFunc(ctx, entityID, kind, window)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.errors[entityID]; ok {
		return nil, err
	}

	var out []domain.BillingDocument
	for _, doc := range s.docs[entityID] {
		if !window.Contains(doc.Date) {
			continue
		}
		var payments []domain.Payment
		for _, p := range doc.Payments {
			if window.Contains(p.Date) {
				payments = append(payments, p)
			}
		}
		doc.Payments = payments
		out = append(out, doc)
	}
	return out, nil
}

// StatementOutbox records published statements.
type StatementOutbox struct {
	mu     sync.Mutex
	Events []*domain.StatementRequested

	PublishFunc func(ctx context.Context, event *domain.StatementRequested) error
}

func (o *StatementOutbox) Publish(ctx context.Context, event *domain.StatementRequested) error {
	if o.PublishFunc != nil {
		return o.PublishFunc(ctx, event)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, event)
	return nil
}

var (
	_ usecase.EntityRepository   = (*EntityStore)(nil)
	_ usecase.DocumentRepository = (*DocumentStore)(nil)
	_ usecase.StatementPublisher = (*StatementOutbox)(nil)
)
