package budget

import (
	"time"
)

type Budget struct {
	Id    int
	Name  string
	Items []BudgetItem
}

// BudgetItem accumulates funds toward a target within one cadence period.
// It belongs to exactly one category within exactly one budget. Items are
// never mutated across periods: when a period elapses the rollover job
// creates a successor item and the old one stays behind as history.
type BudgetItem struct {
	Id         int
	BudgetId   int
	CategoryId int
	Cadence    Cadence
	// Amount is the funds accumulated so far in the period, in cents.
	Amount int64
	// TargetAmount is the cap/goal for the period, in cents. Zero means
	// the item has no cap and CadenceAmount is allocated unconditionally.
	TargetAmount int64
	// CadenceAmount is allocated toward the item on every transfer job
	// tick, in cents.
	CadenceAmount int64
	PeriodStart   time.Time
	PeriodEnd     time.Time
}

// IsCurrent reports whether t falls within the item's [PeriodStart, PeriodEnd].
func (i BudgetItem) IsCurrent(t time.Time) bool {
	return !t.Before(i.PeriodStart) && !t.After(i.PeriodEnd)
}
