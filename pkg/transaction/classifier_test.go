package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func txnOn(id int, accountId int, amount int64, day int) Transaction {
	return Transaction{
		Id:        id,
		AccountId: accountId,
		Amount:    amount,
		Date:      time.Date(2025, time.March, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestMatchPool_IsTransfer(t *testing.T) {
	t.Run("should pair opposite amounts on different accounts within 3 days", func(t *testing.T) {
		// given
		outgoing := txnOn(1, 1, 5000, 10)
		incoming := txnOn(2, 2, -5000, 12)
		pool := NewMatchPool([]Transaction{outgoing, incoming})

		// when / then
		assert.True(t, pool.IsTransfer(outgoing))
		assert.Equal(t, 1, pool.Len())
	})

	t.Run("should consume the counterpart so it cannot match a third transaction", func(t *testing.T) {
		// given: two outgoing legs could both claim the single incoming one
		outgoing := txnOn(1, 1, 5000, 10)
		incoming := txnOn(2, 2, -5000, 11)
		other := txnOn(3, 3, 5000, 12)
		pool := NewMatchPool([]Transaction{outgoing, incoming, other})

		// when
		first := pool.IsTransfer(outgoing)
		second := pool.IsTransfer(other)

		// then: the incoming leg is consumed by the first call; the second
		// outgoing transaction is left unmatched
		assert.True(t, first)
		assert.False(t, second)
	})

	t.Run("should not pair transactions on the same account", func(t *testing.T) {
		// given
		a := txnOn(1, 1, 5000, 10)
		b := txnOn(2, 1, -5000, 10)
		pool := NewMatchPool([]Transaction{a, b})

		// when / then
		assert.False(t, pool.IsTransfer(a))
		assert.Equal(t, 2, pool.Len())
	})

	t.Run("should not pair beyond the 3 day window", func(t *testing.T) {
		// given
		a := txnOn(1, 1, 5000, 10)
		b := txnOn(2, 2, -5000, 14)
		pool := NewMatchPool([]Transaction{a, b})

		// when / then
		assert.False(t, pool.IsTransfer(a))
	})

	t.Run("should require exactly opposite amounts", func(t *testing.T) {
		// given
		a := txnOn(1, 1, 5000, 10)
		b := txnOn(2, 2, -4999, 10)
		pool := NewMatchPool([]Transaction{a, b})

		// when / then
		assert.False(t, pool.IsTransfer(a))
	})

	t.Run("should match the counterpart regardless of leg order", func(t *testing.T) {
		// given: the inflow is classified first
		outgoing := txnOn(1, 1, 5000, 12)
		incoming := txnOn(2, 2, -5000, 10)
		pool := NewMatchPool([]Transaction{outgoing, incoming})

		// when / then
		assert.True(t, pool.IsTransfer(incoming))
		assert.True(t, pool.IsTransfer(outgoing))
		assert.Equal(t, 0, pool.Len())
	})

	t.Run("should not mutate the seed slice", func(t *testing.T) {
		// given
		txns := []Transaction{txnOn(1, 1, 5000, 10), txnOn(2, 2, -5000, 10)}
		pool := NewMatchPool(txns)

		// when
		pool.IsTransfer(txns[0])

		// then
		assert.Len(t, txns, 2)
	})
}
