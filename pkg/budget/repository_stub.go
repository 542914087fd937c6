package budget

import (
	"context"
)

type RepositoryStub struct {
	nextId  int
	budgets map[int]*Budget
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{budgets: map[int]*Budget{}}
}

func (s *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return fn(s)
}

func (s *RepositoryStub) GetUserBudgets(ctx context.Context, userId int) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.budgets))
	for _, budget := range s.budgets {
		budgets = append(budgets, *budget)
	}
	return budgets, nil
}

func (s *RepositoryStub) GetItem(ctx context.Context, userId int, itemId int) (BudgetItem, error) {
	for _, budget := range s.budgets {
		for _, item := range budget.Items {
			if item.Id == itemId {
				return item, nil
			}
		}
	}
	return BudgetItem{}, ErrItemNotFound
}

func (s *RepositoryStub) CreateBudget(ctx context.Context, userId int, budget Budget) (int, error) {
	s.nextId++
	budget.Id = s.nextId
	s.budgets[budget.Id] = &budget
	return budget.Id, nil
}

func (s *RepositoryStub) CreateItem(ctx context.Context, userId int, item BudgetItem) (BudgetItem, error) {
	budget, ok := s.budgets[item.BudgetId]
	if !ok {
		return BudgetItem{}, ErrBudgetNotFound
	}
	s.nextId++
	item.Id = s.nextId
	budget.Items = append(budget.Items, item)
	return item, nil
}

func (s *RepositoryStub) UpdateItem(ctx context.Context, userId int, item BudgetItem) (bool, error) {
	for _, budget := range s.budgets {
		for i, existing := range budget.Items {
			if existing.Id == item.Id {
				budget.Items[i] = item
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *RepositoryStub) UpdateItemAmount(ctx context.Context, userId int, itemId int, amount int64) (bool, error) {
	for _, budget := range s.budgets {
		for i, existing := range budget.Items {
			if existing.Id == itemId {
				budget.Items[i].Amount = amount
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.budgets = map[int]*Budget{}
	s.nextId = 0
}
