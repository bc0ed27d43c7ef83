package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EntityKind identifies the counterparty side of a current account.
type EntityKind string

const (
	EntityKindCustomer EntityKind = "customer"
	EntityKindSupplier EntityKind = "supplier"
)

// ParseEntityKind accepts the singular or plural form of a kind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "customers":
		return EntityKindCustomer, nil
	case "supplier", "suppliers":
		return EntityKindSupplier, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEntityKind, s)
	}
}

// IsValid reports whether k is a known kind.
func (k EntityKind) IsValid() bool {
	return k == EntityKindCustomer || k == EntityKindSupplier
}

// PrincipalType returns the movement type of the kind's billing documents.
func (k EntityKind) PrincipalType() MovementType {
	if k == EntityKindSupplier {
		return MovementTypePurchase
	}
	return MovementTypeSale
}

// Entity is a customer or supplier, the subject of one current-account report.
type Entity struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Kind      EntityKind
	// CreditLimit is only set for customers.
	CreditLimit *decimal.Decimal
}
