package rollover

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/budget"
	"github.com/centavo/centavo/pkg/user"
	log "github.com/sirupsen/logrus"
)

// jobTimeout bounds one invocation's transaction so a hung store cannot
// leave the job half-applied: the whole invocation commits or rolls back.
const jobTimeout = 10 * time.Second

type Service interface {
	// Run replaces every expired budget item of the current user with a
	// fresh one for the period containing now. Returns the number of
	// successor items created. Running it again with the same clock value
	// creates nothing.
	Run(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	budgetRepo budget.Repository
	clock      utils.Clock
}

func NewService(budgetRepo budget.Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{budgetRepo: budgetRepo, clock: clock}
}

func (s *ServiceImpl) Run(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	now := s.clock.Now()

	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	created := 0
	err = s.budgetRepo.WithTransaction(ctx, func(repo budget.Repository) error {
		budgets, err := repo.GetUserBudgets(ctx, userId)
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}

		// Sequential per budget and category so one invocation can never
		// create two successors for the same category.
		for _, b := range budgets {
			for _, item := range latestItemPerCategory(b.Items) {
				// The latest item for the category is still current:
				// nothing to roll, and the guard that makes a repeated
				// invocation a no-op.
				if item.IsCurrent(now) {
					continue
				}

				start, end := item.Cadence.Period(now)
				successor := budget.BudgetItem{
					BudgetId:   item.BudgetId,
					CategoryId: item.CategoryId,
					Cadence:    item.Cadence,
					// The new period opens funded at the expiring item's
					// target, not at zero and not at its stale amount.
					Amount:        item.TargetAmount,
					TargetAmount:  item.TargetAmount,
					CadenceAmount: item.CadenceAmount,
					PeriodStart:   start,
					PeriodEnd:     end,
				}
				if _, err := repo.CreateItem(ctx, userId, successor); err != nil {
					return fmt.Errorf("failed to create successor for category %d in budget %d: %w",
						item.CategoryId, item.BudgetId, err)
				}
				log.Debugf("rolled over category %d in budget %d to period starting %s",
					item.CategoryId, item.BudgetId, start)
				created++
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("rollover job failed for user %d: %v", userId, err)
		return 0, err
	}
	return created, nil
}

// latestItemPerCategory reduces a budget's items to the most recent item of
// each category (the one whose period starts last), in category order.
func latestItemPerCategory(items []budget.BudgetItem) []budget.BudgetItem {
	latest := map[int]budget.BudgetItem{}
	for _, item := range items {
		current, ok := latest[item.CategoryId]
		if !ok || item.PeriodStart.After(current.PeriodStart) {
			latest[item.CategoryId] = item
		}
	}
	categoryIds := make([]int, 0, len(latest))
	for categoryId := range latest {
		categoryIds = append(categoryIds, categoryId)
	}
	sort.Ints(categoryIds)

	result := make([]budget.BudgetItem, 0, len(latest))
	for _, categoryId := range categoryIds {
		result = append(result, latest[categoryId])
	}
	return result
}
