package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the result of walking an entity's billing documents in
// document-major order.
type Ledger struct {
	Kind           EntityKind
	Movements      []AccountMovement
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
	Balance        decimal.Decimal
	OldestMovement *time.Time
	LastMovement   *time.Time
}

// ledgerEvent is one step of the walk before the running balance is applied.
type ledgerEvent struct {
	id          string
	date        time.Time
	typ         MovementType
	description string
	reference   string
	debit       decimal.Decimal
	credit      decimal.Decimal
}

// BuildLedger turns documents (ascending by date, each with payments ascending
// by date) into a flat movement list with a running balance.
//
// Every document is immediately followed by its own payments. Movements are
// not re-sorted across documents, so a payment of an earlier document can
// appear after a later document even when it is dated before it.
func BuildLedger(kind EntityKind, docs []BillingDocument) Ledger {
	ledger := Ledger{
		Kind:      kind,
		Movements: make([]AccountMovement, 0, countEvents(docs)),
	}

	if len(docs) > 0 {
		oldest := docs[0].Date
		ledger.OldestMovement = &oldest
	}

	for _, e := range ledgerEvents(kind, docs) {
		ledger = ledger.apply(e)
	}

	return ledger
}

// apply folds one event into the ledger.
func (l Ledger) apply(e ledgerEvent) Ledger {
	l.Balance = l.Balance.Add(signedDelta(l.Kind, e.debit, e.credit))
	l.TotalDebits = l.TotalDebits.Add(e.debit)
	l.TotalCredits = l.TotalCredits.Add(e.credit)

	if l.LastMovement == nil || e.date.After(*l.LastMovement) {
		last := e.date
		l.LastMovement = &last
	}

	l.Movements = append(l.Movements, AccountMovement{
		ID:          e.id,
		Date:        e.date,
		Type:        e.typ,
		Description: e.description,
		Debit:       e.debit,
		Credit:      e.credit,
		Balance:     l.Balance,
		Reference:   e.reference,
	})

	return l
}

// signedDelta orients a line so the balance always reads as the amount
// outstanding for the entity: owed to the business by a customer, owed by the
// business to a supplier.
func signedDelta(kind EntityKind, debit, credit decimal.Decimal) decimal.Decimal {
	if kind == EntityKindSupplier {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

func ledgerEvents(kind EntityKind, docs []BillingDocument) []ledgerEvent {
	events := make([]ledgerEvent, 0, countEvents(docs))

	for _, doc := range docs {
		events = append(events, principalEvent(kind, doc))
		for i, p := range doc.Payments {
			events = append(events, paymentEvent(kind, doc, i, p))
		}
	}

	return events
}

func principalEvent(kind EntityKind, doc BillingDocument) ledgerEvent {
	e := ledgerEvent{
		id:        doc.ID,
		date:      doc.Date,
		typ:       kind.PrincipalType(),
		reference: doc.Number,
		debit:     decimal.Zero,
		credit:    decimal.Zero,
	}

	if kind == EntityKindSupplier {
		e.description = fmt.Sprintf("Compra #%s", doc.Number)
		e.credit = doc.Total
	} else {
		e.description = fmt.Sprintf("Venta #%s", doc.Number)
		e.debit = doc.Total
	}

	return e
}

func paymentEvent(kind EntityKind, doc BillingDocument, index int, p Payment) ledgerEvent {
	e := ledgerEvent{
		id:        fmt.Sprintf("%s-payment-%d", doc.ID, index),
		date:      p.Date,
		typ:       MovementTypePayment,
		reference: doc.Number,
		debit:     decimal.Zero,
		credit:    decimal.Zero,
	}

	if kind == EntityKindSupplier {
		e.description = fmt.Sprintf("Pago compra #%s", doc.Number)
		e.debit = p.Amount
	} else {
		e.description = fmt.Sprintf("Pago venta #%s", doc.Number)
		e.credit = p.Amount
	}

	return e
}

func countEvents(docs []BillingDocument) int {
	n := len(docs)
	for _, doc := range docs {
		n += len(doc.Payments)
	}
	return n
}

// AveragePaymentDays averages, over fully paid documents, the whole days
// between the document date and its last payment. Returns 0 when no document
// qualifies.
func AveragePaymentDays(docs []BillingDocument) int {
	var total, count int64

	for i := range docs {
		if docs[i].PaymentStatus != PaymentStatusPaid {
			continue
		}

		last, ok := docs[i].LastPayment()
		if !ok {
			continue
		}

		total += int64(DaysBetween(docs[i].Date, last.Date))
		count++
	}

	if count == 0 {
		return 0
	}

	return int(decimal.NewFromInt(total).Div(decimal.NewFromInt(count)).Round(0).IntPart())
}

// DaysBetween returns the whole days elapsed from from to to, floored.
func DaysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
