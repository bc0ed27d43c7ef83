package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aging bucket upper bounds in days, inclusive.
const (
	AgingCurrentDays = 30
	Aging60Days      = 60
	Aging90Days      = 90
)

// AgingAnalysis splits outstanding principal by age.
type AgingAnalysis struct {
	Current    decimal.Decimal
	Days30To60 decimal.Decimal
	Days61To90 decimal.Decimal
	Over90     decimal.Decimal
}

// Total returns the sum of all buckets.
func (a AgingAnalysis) Total() decimal.Decimal {
	return a.Current.Add(a.Days30To60).Add(a.Days61To90).Add(a.Over90)
}

// Add returns the bucket-wise sum of a and b.
func (a AgingAnalysis) Add(b AgingAnalysis) AgingAnalysis {
	return AgingAnalysis{
		Current:    a.Current.Add(b.Current),
		Days30To60: a.Days30To60.Add(b.Days30To60),
		Days61To90: a.Days61To90.Add(b.Days61To90),
		Over90:     a.Over90.Add(b.Over90),
	}
}

// ClassifyAging buckets principal movements that still carry a positive
// running balance at their own position. The balance read is the account's
// aggregate position at that line, not what remains of that document.
func ClassifyAging(movements []AccountMovement, now time.Time) AgingAnalysis {
	aging := AgingAnalysis{
		Current:    decimal.Zero,
		Days30To60: decimal.Zero,
		Days61To90: decimal.Zero,
		Over90:     decimal.Zero,
	}

	for _, m := range movements {
		if !m.Type.IsPrincipal() || !m.Balance.IsPositive() {
			continue
		}

		amount := m.Amount()
		switch days := DaysBetween(m.Date, now); {
		case days <= AgingCurrentDays:
			aging.Current = aging.Current.Add(amount)
		case days <= Aging60Days:
			aging.Days30To60 = aging.Days30To60.Add(amount)
		case days <= Aging90Days:
			aging.Days61To90 = aging.Days61To90.Add(amount)
		default:
			aging.Over90 = aging.Over90.Add(amount)
		}
	}

	return aging
}
