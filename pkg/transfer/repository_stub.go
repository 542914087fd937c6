package transfer

import (
	"context"
	"sort"
	"time"

	"github.com/centavo/centavo/pkg/budget"
	"github.com/centavo/centavo/pkg/category"
)

type RepositoryStub struct {
	nextId     int
	items      map[int]*budget.BudgetItem
	categories map[int]category.Category
	entries    []TransferLedgerEntry
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:      map[int]*budget.BudgetItem{},
		categories: map[int]category.Category{},
	}
}

// AddItem seeds a budget item with its category, assigning ids when absent.
func (s *RepositoryStub) AddItem(item budget.BudgetItem, cat category.Category) budget.BudgetItem {
	if item.Id == 0 {
		s.nextId++
		item.Id = s.nextId
	}
	s.items[item.Id] = &item
	s.categories[item.CategoryId] = cat
	return item
}

func (s *RepositoryStub) Entries() []TransferLedgerEntry {
	return s.entries
}

func (s *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return fn(s)
}

func (s *RepositoryStub) GetCurrentExpenseItems(ctx context.Context, userId int, now time.Time) ([]budget.BudgetItem, error) {
	var items []budget.BudgetItem
	for _, item := range s.items {
		if !item.IsCurrent(now) {
			continue
		}
		if s.categories[item.CategoryId].Type != category.TypeExpense {
			continue
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Id < items[j].Id })
	return items, nil
}

func (s *RepositoryStub) GetItem(ctx context.Context, userId int, itemId int) (budget.BudgetItem, error) {
	item, ok := s.items[itemId]
	if !ok {
		return budget.BudgetItem{}, budget.ErrItemNotFound
	}
	return *item, nil
}

func (s *RepositoryStub) UpdateItemAmount(ctx context.Context, userId int, itemId int, amount int64) (bool, error) {
	item, ok := s.items[itemId]
	if !ok {
		return false, nil
	}
	item.Amount = amount
	return true, nil
}

func (s *RepositoryStub) CreateEntry(ctx context.Context, userId int, entry TransferLedgerEntry) (TransferLedgerEntry, error) {
	s.nextId++
	entry.Id = s.nextId
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *RepositoryStub) GetEntries(ctx context.Context, userId int, from time.Time, to time.Time) ([]TransferLedgerEntry, error) {
	var entries []TransferLedgerEntry
	for _, entry := range s.entries {
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *RepositoryStub) Cleanup() {
	s.items = map[int]*budget.BudgetItem{}
	s.categories = map[int]category.Category{}
	s.entries = nil
	s.nextId = 0
}
