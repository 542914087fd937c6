package category

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId     int
	categories map[int]Category
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{categories: map[int]Category{}}
}

func (s *RepositoryStub) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id int) (Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, category Category) (int, error) {
	s.nextId++
	category.Id = s.nextId
	s.categories[category.Id] = category
	return category.Id, nil
}

func (s *RepositoryStub) Cleanup() {
	s.categories = map[int]Category{}
	s.nextId = 0
}
