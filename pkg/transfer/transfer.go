package transfer

import (
	"time"
)

// TransferLedgerEntry is an append-only record of a completed fund movement
// credited to a budget item. Entries are created once, by the automated
// transfer job or a manual transfer, and never mutated or deleted.
type TransferLedgerEntry struct {
	Id  int
	Uid string
	// FromItemId is zero when the funds originate outside the tracked
	// budget items, e.g. external income allocated by the automated job.
	FromItemId int
	ToItemId   int
	// Amount in cents, always positive.
	Amount int64
	Date   time.Time
}
