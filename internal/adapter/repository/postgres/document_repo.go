package postgres

import (
	"context"
	"fmt"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/infrastructure/postgres/generated"
)

// DocumentRepository implements usecase.DocumentRepository. Customers read
// sales and sale payments; suppliers read purchase orders and their payments.
type DocumentRepository struct {
	queries *generated.Queries
	retrier *Retrier
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db generated.DBTX, retrier *Retrier) *DocumentRepository {
	return &DocumentRepository{
		queries: generated.New(db),
		retrier: retrier,
	}
}

// paymentRow is a payment tagged with the document it settles.
type paymentRow struct {
	documentID string
	payment    domain.Payment
}

// ListBillingDocuments returns the entity's documents ascending by date, each
// with its payments ascending by date. The window is applied to documents and
// payments independently, so a payment outside the window is dropped even if
// its document is inside.
func (r *DocumentRepository) ListBillingDocuments(
	ctx context.Context,
	entityID string,
	kind domain.EntityKind,
	window *domain.DateRange,
) ([]domain.BillingDocument, error) {
	var docs []domain.BillingDocument

	err := r.retrier.Retry(ctx, func() error {
		var err error
		switch kind {
		case domain.EntityKindCustomer:
			docs, err = r.listSales(ctx, entityID, window)
		case domain.EntityKindSupplier:
			docs, err = r.listPurchaseOrders(ctx, entityID, window)
		default:
			err = fmt.Errorf("%w: %q", domain.ErrInvalidEntityKind, kind)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *DocumentRepository) listSales(ctx context.Context, customerID string, window *domain.DateRange) ([]domain.BillingDocument, error) {
	exists, err := r.queries.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, queryError("check customer", err)
	}
	if !exists {
		return nil, domain.ErrEntityNotFound
	}

	start, end := windowBounds(window)

	sales, err := r.queries.ListSalesByCustomer(ctx, generated.ListSalesByCustomerParams{
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return nil, queryError("list sales", err)
	}
	if len(sales) == 0 {
		return []domain.BillingDocument{}, nil
	}

	docs := make([]domain.BillingDocument, 0, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		docs = append(docs, domain.BillingDocument{
			ID:            s.ID,
			Number:        s.Number,
			Date:          s.Date.Time,
			Total:         numericToDecimal(s.Total),
			PaymentStatus: domain.PaymentStatus(s.PaymentStatus),
		})
		ids = append(ids, s.ID)
	}

	rows, err := r.queries.ListSalePayments(ctx, generated.ListSalePaymentsParams{
		SaleIds:   ids,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, queryError("list sale payments", err)
	}

	payments := make([]paymentRow, 0, len(rows))
	for _, p := range rows {
		payments = append(payments, paymentRow{
			documentID: p.SaleID,
			payment: domain.Payment{
				ID:     p.ID,
				Amount: numericToDecimal(p.Amount),
				Date:   p.Date.Time,
				Method: p.Method,
			},
		})
	}

	return attachPayments(docs, payments), nil
}

func (r *DocumentRepository) listPurchaseOrders(ctx context.Context, supplierID string, window *domain.DateRange) ([]domain.BillingDocument, error) {
	exists, err := r.queries.SupplierExists(ctx, supplierID)
	if err != nil {
		return nil, queryError("check supplier", err)
	}
	if !exists {
		return nil, domain.ErrEntityNotFound
	}

	start, end := windowBounds(window)

	orders, err := r.queries.ListPurchaseOrdersBySupplier(ctx, generated.ListPurchaseOrdersBySupplierParams{
		SupplierID: supplierID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return nil, queryError("list purchase orders", err)
	}
	if len(orders) == 0 {
		return []domain.BillingDocument{}, nil
	}

	docs := make([]domain.BillingDocument, 0, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, domain.BillingDocument{
			ID:            o.ID,
			Number:        o.Number,
			Date:          o.Date.Time,
			Total:         numericToDecimal(o.Total),
			PaymentStatus: domain.PaymentStatus(o.PaymentStatus),
		})
		ids = append(ids, o.ID)
	}

	rows, err := r.queries.ListPurchaseOrderPayments(ctx, generated.ListPurchaseOrderPaymentsParams{
		PurchaseOrderIds: ids,
		StartDate:        start,
		EndDate:          end,
	})
	if err != nil {
		return nil, queryError("list purchase order payments", err)
	}

	payments := make([]paymentRow, 0, len(rows))
	for _, p := range rows {
		payments = append(payments, paymentRow{
			documentID: p.PurchaseOrderID,
			payment: domain.Payment{
				ID:     p.ID,
				Amount: numericToDecimal(p.Amount),
				Date:   p.Date.Time,
				Method: p.Method,
			},
		})
	}

	return attachPayments(docs, payments), nil
}

// attachPayments groups payments under their documents, keeping the order in
// which the payments were read.
func attachPayments(docs []domain.BillingDocument, payments []paymentRow) []domain.BillingDocument {
	index := make(map[string]int, len(docs))
	for i := range docs {
		index[docs[i].ID] = i
	}

	for _, p := range payments {
		i, ok := index[p.documentID]
		if !ok {
			continue
		}
		docs[i].Payments = append(docs[i].Payments, p.payment)
	}

	return docs
}
