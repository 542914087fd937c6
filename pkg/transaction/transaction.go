package transaction

import (
	"time"
)

// Transaction is a spending record ingested from a linked bank account.
// The engine never writes transactions; they are read-only input for
// reporting and transfer classification.
type Transaction struct {
	Id        int
	AccountId int
	// Amount in cents; negative denotes an inflow.
	Amount     int64
	Date       time.Time
	CategoryId int
}
