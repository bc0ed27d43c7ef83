package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/infrastructure/postgres/generated"
)

// EntityRepository implements usecase.EntityRepository over the customers
// and suppliers tables.
type EntityRepository struct {
	queries *generated.Queries
	retrier *Retrier
}

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository(db generated.DBTX, retrier *Retrier) *EntityRepository {
	return &EntityRepository{
		queries: generated.New(db),
		retrier: retrier,
	}
}

// GetByID retrieves a customer or supplier by ID.
func (r *EntityRepository) GetByID(ctx context.Context, id string, kind domain.EntityKind) (*domain.Entity, error) {
	var entity *domain.Entity

	err := r.retrier.Retry(ctx, func() error {
		switch kind {
		case domain.EntityKindCustomer:
			row, err := r.queries.GetCustomerByID(ctx, id)
			if err != nil {
				return err
			}
			entity = customerToEntity(row)
		case domain.EntityKindSupplier:
			row, err := r.queries.GetSupplierByID(ctx, id)
			if err != nil {
				return err
			}
			entity = supplierToEntity(row)
		default:
			return fmt.Errorf("%w: %q", domain.ErrInvalidEntityKind, kind)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		if errors.Is(err, domain.ErrInvalidEntityKind) {
			return nil, err
		}

		return nil, queryError("get "+string(kind), err)
	}

	return entity, nil
}

// ListByCompany lists a company's customers or suppliers ordered by name.
func (r *EntityRepository) ListByCompany(ctx context.Context, companyID string, kind domain.EntityKind, limit, offset int) ([]*domain.Entity, error) {
	var entities []*domain.Entity

	err := r.retrier.Retry(ctx, func() error {
		switch kind {
		case domain.EntityKindCustomer:
			rows, err := r.queries.ListCustomersByCompany(ctx, generated.ListCustomersByCompanyParams{
				CompanyID: companyID,
				Limit:     int32(limit),
				Offset:    int32(offset),
			})
			if err != nil {
				return err
			}

			entities = make([]*domain.Entity, 0, len(rows))
			for _, row := range rows {
				entities = append(entities, customerToEntity(row))
			}
		case domain.EntityKindSupplier:
			rows, err := r.queries.ListSuppliersByCompany(ctx, generated.ListSuppliersByCompanyParams{
				CompanyID: companyID,
				Limit:     int32(limit),
				Offset:    int32(offset),
			})
			if err != nil {
				return err
			}

			entities = make([]*domain.Entity, 0, len(rows))
			for _, row := range rows {
				entities = append(entities, supplierToEntity(row))
			}
		default:
			return fmt.Errorf("%w: %q", domain.ErrInvalidEntityKind, kind)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEntityKind) {
			return nil, err
		}
		return nil, queryError("list "+string(kind)+"s", err)
	}

	return entities, nil
}

func customerToEntity(row generated.Customer) *domain.Entity {
	return &domain.Entity{
		ID:          row.ID,
		CompanyID:   row.CompanyID,
		Name:        row.Name,
		Email:       textToString(row.Email),
		Kind:        domain.EntityKindCustomer,
		CreditLimit: numericToDecimalPtr(row.CreditLimit),
	}
}

func supplierToEntity(row generated.Supplier) *domain.Entity {
	return &domain.Entity{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		Name:      row.Name,
		Email:     textToString(row.Email),
		Kind:      domain.EntityKindSupplier,
	}
}
