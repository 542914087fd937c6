package transaction

import (
	"time"
)

// matchWindow is how far apart the two legs of an inter-account transfer
// may settle and still be paired.
const matchWindow = 3 * 24 * time.Hour

// MatchPool is a consumable bag of candidate transactions for transfer
// classification. Seed it with a full copy of the set under consideration,
// then call IsTransfer once per transaction in a stable order: each pooled
// transaction can be consumed as the counterpart of at most one other, so a
// physical transfer between two accounts is paired exactly once.
//
// The matching is deliberately greedy and order-dependent: the first pooled
// candidate satisfying the window/amount/account conditions wins, which can
// pick the "wrong" leg when three or more transactions are pairwise
// compatible. That is an accepted limitation of the heuristic, not
// something callers should compensate for.
type MatchPool struct {
	candidates []Transaction
}

// NewMatchPool copies txns so callers can keep iterating their own slice
// while the pool is consumed.
func NewMatchPool(txns []Transaction) *MatchPool {
	candidates := make([]Transaction, len(txns))
	copy(candidates, txns)
	return &MatchPool{candidates: candidates}
}

// IsTransfer reports whether txn looks like one leg of an inter-account
// transfer: some pooled transaction within 3 days of it carries the exact
// opposite amount on a different account. On a match the counterpart is
// removed from the pool and cannot be matched again.
func (p *MatchPool) IsTransfer(txn Transaction) bool {
	for i, candidate := range p.candidates {
		if candidate.AccountId == txn.AccountId {
			continue
		}
		if candidate.Amount != -txn.Amount {
			continue
		}
		gap := candidate.Date.Sub(txn.Date)
		if gap < 0 {
			gap = -gap
		}
		if gap > matchWindow {
			continue
		}
		p.candidates = append(p.candidates[:i], p.candidates[i+1:]...)
		return true
	}
	return false
}

// Len returns the number of unconsumed candidates.
func (p *MatchPool) Len() int {
	return len(p.candidates)
}
