package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a billing document.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Payment is a single payment applied to a billing document.
type Payment struct {
	ID     string
	Amount decimal.Decimal
	Date   time.Time
	Method string
}

// BillingDocument is a sale (customers) or purchase order (suppliers) together
// with its payments, ordered ascending by payment date.
type BillingDocument struct {
	ID            string
	Number        string
	Date          time.Time
	Total         decimal.Decimal
	PaymentStatus PaymentStatus
	Payments      []Payment
}

// LastPayment returns the chronologically last payment, if any.
func (d *BillingDocument) LastPayment() (Payment, bool) {
	if len(d.Payments) == 0 {
		return Payment{}, false
	}

	last := d.Payments[0]
	for _, p := range d.Payments[1:] {
		if !p.Date.Before(last.Date) {
			last = p
		}
	}

	return last, true
}

// DateRange is an optional reporting window. A zero Start or End leaves that
// side unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}
