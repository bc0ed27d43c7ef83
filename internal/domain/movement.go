package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tags a ledger line.
type MovementType string

const (
	MovementTypeSale     MovementType = "sale"
	MovementTypePurchase MovementType = "purchase"
	MovementTypePayment  MovementType = "payment"
)

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypePayment:
		return true
	}
	return false
}

// IsPrincipal reports whether t is a sale or purchase line.
func (t MovementType) IsPrincipal() bool {
	return t == MovementTypeSale || t == MovementTypePurchase
}

// AccountMovement is one ledger line of a current account.
type AccountMovement struct {
	ID          string
	Date        time.Time
	Type        MovementType
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
	Reference   string
}

// Amount returns the nonzero side of the line.
func (m AccountMovement) Amount() decimal.Decimal {
	if !m.Debit.IsZero() {
		return m.Debit
	}
	return m.Credit
}

// FilterMovements keeps the movements whose type is in types. An empty types
// list keeps everything.
func FilterMovements(movements []AccountMovement, types []MovementType) []AccountMovement {
	if len(types) == 0 {
		return movements
	}

	wanted := make(map[MovementType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	filtered := make([]AccountMovement, 0, len(movements))
	for _, m := range movements {
		if wanted[m.Type] {
			filtered = append(filtered, m)
		}
	}

	return filtered
}
