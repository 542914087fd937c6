package transaction

import (
	"context"
	"sort"
	"time"
)

type RepositoryStub struct {
	transactions []Transaction
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) Add(txns ...Transaction) {
	s.transactions = append(s.transactions, txns...)
}

func (s *RepositoryStub) GetForPeriod(ctx context.Context, userId int, from time.Time, to time.Time) ([]Transaction, error) {
	var result []Transaction
	for _, txn := range s.transactions {
		if txn.Date.Before(from) || txn.Date.After(to) {
			continue
		}
		result = append(result, txn)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].Id < result[j].Id
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (s *RepositoryStub) Cleanup() {
	s.transactions = nil
}
