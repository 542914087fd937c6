package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/centavo/pkg/category"
	"github.com/centavo/centavo/pkg/transaction"
	"github.com/centavo/centavo/pkg/user"
	log "github.com/sirupsen/logrus"
)

type StatsService interface {
	GetStats(ctx context.Context, from time.Time, to time.Time) (SpendingSummary, error)
}

type StatsServiceImpl struct {
	transactionRepo transaction.Repository
	categoryRepo    category.Repository
}

func NewStatsServiceImpl(
	transactionRepo transaction.Repository,
	categoryRepo category.Repository,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// GetStats aggregates the user's bank transactions in [from, to] per
// category. Transactions classified as inter-account transfer legs are
// counted but excluded from the totals, so moving money between own
// accounts never shows up as spending or income.
func (s *StatsServiceImpl) GetStats(ctx context.Context, from time.Time, to time.Time) (SpendingSummary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return SpendingSummary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	txns, err := s.transactionRepo.GetForPeriod(ctx, userId, from, to)
	if err != nil {
		return SpendingSummary{}, err
	}
	log.Tracef("Aggregating %d transactions between %s and %s", len(txns), from, to)

	categories, err := s.categoryRepo.GetAll(ctx, userId)
	if err != nil {
		return SpendingSummary{}, err
	}

	pool := transaction.NewMatchPool(txns)
	spentByCategory := map[int]int64{}
	incomeByCategory := map[int]int64{}
	transferCount := 0
	totalSpent := int64(0)
	totalIncome := int64(0)
	for _, txn := range txns {
		if pool.IsTransfer(txn) {
			transferCount++
			continue
		}
		if txn.Amount >= 0 {
			spentByCategory[txn.CategoryId] += txn.Amount
			totalSpent += txn.Amount
		} else {
			incomeByCategory[txn.CategoryId] += -txn.Amount
			totalIncome += -txn.Amount
		}
	}

	categoryStats := make([]CategoryStats, 0, len(categories))
	for _, c := range categories {
		categoryStats = append(categoryStats, CategoryStats{
			Category: c,
			Spent:    spentByCategory[c.Id],
			Income:   incomeByCategory[c.Id],
		})
	}

	return SpendingSummary{
		StartDate:     from,
		EndDate:       to,
		Categories:    categoryStats,
		TotalSpent:    totalSpent,
		TotalIncome:   totalIncome,
		TransferCount: transferCount,
	}, nil
}
