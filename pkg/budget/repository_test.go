package budget

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/centavo/centavo/internal/test_utils"
	"github.com/centavo/centavo/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	defer cleanup()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	ctx := context.Background()
	repository := NewRepository(db)
	userRepo := user.NewUserRepo(db)
	userId, err := userRepo.CreateUser(ctx, user.User{Uid: t.Name(), Username: t.Name()})
	require.NoError(t, err)
	return ctx, repository, userId
}

func weeklyItem(budgetId, categoryId int) BudgetItem {
	return BudgetItem{
		BudgetId:      budgetId,
		CategoryId:    categoryId,
		Cadence:       Cadence{Type: CadenceWeekly, DayOfWeek: time.Monday},
		Amount:        1500,
		TargetAmount:  5000,
		CadenceAmount: 1000,
		PeriodStart:   time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond),
	}
}

func createCategory(t *testing.T, ctx context.Context, userId int, name string) int {
	t.Helper()
	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO category (name, type, user_id) VALUES ($1, 'expense', $2) RETURNING id`,
		name, userId,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestRepositoryImpl_CreateBudgetWithItems(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	categoryId := createCategory(t, ctx, userId, "Groceries")

	// when
	budgetId, err := repo.CreateBudget(ctx, userId, Budget{Name: "Household"})
	require.NoError(t, err)
	created, err := repo.CreateItem(ctx, userId, weeklyItem(budgetId, categoryId))
	require.NoError(t, err)

	// then
	budgets, err := repo.GetUserBudgets(ctx, userId)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Household", budgets[0].Name)
	require.Len(t, budgets[0].Items, 1)
	stored := budgets[0].Items[0]
	assert.Equal(t, created.Id, stored.Id)
	assert.Equal(t, categoryId, stored.CategoryId)
	assert.Equal(t, CadenceWeekly, stored.Cadence.Type)
	assert.Equal(t, time.Monday, stored.Cadence.DayOfWeek)
	assert.Equal(t, int64(1500), stored.Amount)
	assert.Equal(t, int64(5000), stored.TargetAmount)
	assert.Equal(t, int64(1000), stored.CadenceAmount)
	assert.True(t, stored.PeriodStart.Equal(time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)))
}

func TestRepositoryImpl_CreateItem_RejectsForeignBudget(t *testing.T) {
	// given a budget owned by another user
	ctx, repo, userId := setupTestRepository(t)
	categoryId := createCategory(t, ctx, userId, "Groceries")
	budgetId, err := repo.CreateBudget(ctx, userId, Budget{Name: "Household"})
	require.NoError(t, err)

	// when a different user tries to add an item to it
	otherUserId := userId + 1000
	_, err = repo.CreateItem(ctx, otherUserId, weeklyItem(budgetId, categoryId))

	// then
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestRepositoryImpl_CreateItem_RejectsDuplicatePeriod(t *testing.T) {
	// given an item already stored for a category and period
	ctx, repo, userId := setupTestRepository(t)
	categoryId := createCategory(t, ctx, userId, "Groceries")
	budgetId, err := repo.CreateBudget(ctx, userId, Budget{Name: "Household"})
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, userId, weeklyItem(budgetId, categoryId))
	require.NoError(t, err)

	// when the same category and period start is inserted again
	_, err = repo.CreateItem(ctx, userId, weeklyItem(budgetId, categoryId))

	// then the unique constraint rejects it
	assert.Error(t, err)
}

func TestRepositoryImpl_UpdateItemAmount(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	categoryId := createCategory(t, ctx, userId, "Groceries")
	budgetId, err := repo.CreateBudget(ctx, userId, Budget{Name: "Household"})
	require.NoError(t, err)
	created, err := repo.CreateItem(ctx, userId, weeklyItem(budgetId, categoryId))
	require.NoError(t, err)

	// when
	updated, err := repo.UpdateItemAmount(ctx, userId, created.Id, 4321)

	// then
	require.NoError(t, err)
	assert.True(t, updated)
	stored, err := repo.GetItem(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(4321), stored.Amount)

	// and another user cannot touch the item
	updated, err = repo.UpdateItemAmount(ctx, userId+1000, created.Id, 1)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestRepositoryImpl_GetItem_NotFound(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)

	_, err := repo.GetItem(ctx, userId, 99999)

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRepositoryImpl_WithTransaction_RollsBackOnError(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	categoryId := createCategory(t, ctx, userId, "Groceries")
	budgetId, err := repo.CreateBudget(ctx, userId, Budget{Name: "Household"})
	require.NoError(t, err)

	// when an item is created inside a transaction that fails afterwards
	err = repo.WithTransaction(ctx, func(txRepo Repository) error {
		if _, err := txRepo.CreateItem(ctx, userId, weeklyItem(budgetId, categoryId)); err != nil {
			return err
		}
		return assert.AnError
	})

	// then nothing was persisted
	assert.ErrorIs(t, err, assert.AnError)
	budgets, err := repo.GetUserBudgets(ctx, userId)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Empty(t, budgets[0].Items)
}
