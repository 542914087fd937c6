package budget

import (
	"context"
	"fmt"

	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Budget, error)
	Create(ctx context.Context, budget Budget) (Budget, error)
	CreateItem(ctx context.Context, item BudgetItem) (BudgetItem, error)
	UpdateItem(ctx context.Context, item BudgetItem) (BudgetItem, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetUserBudgets(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	id, err := s.repo.CreateBudget(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	budget.Id = id
	return budget, nil
}

// CreateItem stores a new budget item with its initial period computed from
// its cadence and the current time.
func (s *ServiceImpl) CreateItem(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := item.Cadence.Validate(); err != nil {
		return BudgetItem{}, fmt.Errorf("invalid cadence: %w", err)
	}
	item.PeriodStart, item.PeriodEnd = item.Cadence.Period(s.clock.Now())

	created, err := s.repo.CreateItem(ctx, userId, item)
	if err != nil {
		return BudgetItem{}, err
	}
	return created, nil
}

func (s *ServiceImpl) UpdateItem(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := item.Cadence.Validate(); err != nil {
		return BudgetItem{}, fmt.Errorf("invalid cadence: %w", err)
	}

	existing, err := s.repo.GetItem(ctx, userId, item.Id)
	if err != nil {
		return BudgetItem{}, err
	}
	// The period is owned by the engine; manual edits change the cadence
	// going forward but never move an item out of its current period.
	item.BudgetId = existing.BudgetId
	item.PeriodStart = existing.PeriodStart
	item.PeriodEnd = existing.PeriodEnd

	updated, err := s.repo.UpdateItem(ctx, userId, item)
	if err != nil {
		return BudgetItem{}, err
	}
	if !updated {
		log.Warnf("budget item not updated, probably because it does not exist (%d) or the user (%d) is not the owner", item.Id, userId)
		return BudgetItem{}, fmt.Errorf("budget item not updated")
	}
	return item, nil
}
