package transfer

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/centavo/centavo/internal/test_utils"
	"github.com/centavo/centavo/pkg/budget"
	"github.com/centavo/centavo/pkg/user"
	"github.com/google/uuid"
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

type fixture struct {
	userId        int
	budgetId      int
	expenseCatId  int
	incomeCatId   int
	expenseItemId int
}

func setupFixture(t *testing.T) (context.Context, Repository, fixture) {
	t.Helper()
	ctx := context.Background()
	userRepo := user.NewUserRepo(db)
	userId, err := userRepo.CreateUser(ctx, user.User{Uid: t.Name(), Username: t.Name()})
	require.NoError(t, err)

	budgetRepo := budget.NewRepository(db)
	budgetId, err := budgetRepo.CreateBudget(ctx, userId, budget.Budget{Name: "Household"})
	require.NoError(t, err)

	expenseCatId := createCategory(t, ctx, userId, "Groceries", "expense")
	incomeCatId := createCategory(t, ctx, userId, "Salary", "income")

	item, err := budgetRepo.CreateItem(ctx, userId, budget.BudgetItem{
		BudgetId:      budgetId,
		CategoryId:    expenseCatId,
		Cadence:       budget.Cadence{Type: budget.CadenceWeekly, DayOfWeek: time.Monday},
		Amount:        1500,
		TargetAmount:  5000,
		CadenceAmount: 1000,
		PeriodStart:   time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond),
	})
	require.NoError(t, err)

	return ctx, NewRepository(db), fixture{
		userId:        userId,
		budgetId:      budgetId,
		expenseCatId:  expenseCatId,
		incomeCatId:   incomeCatId,
		expenseItemId: item.Id,
	}
}

func createCategory(t *testing.T, ctx context.Context, userId int, name string, categoryType string) int {
	t.Helper()
	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO category (name, type, user_id) VALUES ($1, $2, $3) RETURNING id`,
		name, categoryType, userId,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestRepositoryImpl_GetCurrentExpenseItems(t *testing.T) {
	// given an expense item and an income item covering the same period
	ctx, repo, f := setupFixture(t)
	budgetRepo := budget.NewRepository(db)
	_, err := budgetRepo.CreateItem(ctx, f.userId, budget.BudgetItem{
		BudgetId:    f.budgetId,
		CategoryId:  f.incomeCatId,
		Cadence:     budget.Cadence{Type: budget.CadenceWeekly, DayOfWeek: time.Monday},
		PeriodStart: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond),
	})
	require.NoError(t, err)

	// when
	now := time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC)
	items, err := repo.GetCurrentExpenseItems(ctx, f.userId, now)

	// then only the expense item qualifies
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, f.expenseItemId, items[0].Id)
	assert.Equal(t, int64(1000), items[0].CadenceAmount)
}

func TestRepositoryImpl_GetCurrentExpenseItems_ExcludesExpiredPeriods(t *testing.T) {
	// given
	ctx, repo, f := setupFixture(t)

	// when asking for a time after the item's period ended
	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	items, err := repo.GetCurrentExpenseItems(ctx, f.userId, now)

	// then
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepositoryImpl_CreateEntry_RoundTrip(t *testing.T) {
	// given
	ctx, repo, f := setupFixture(t)
	date := time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC)

	// when an external entry and an item-to-item entry are stored
	external, err := repo.CreateEntry(ctx, f.userId, TransferLedgerEntry{
		Uid:      uuid.NewString(),
		ToItemId: f.expenseItemId,
		Amount:   1000,
		Date:     date,
	})
	require.NoError(t, err)
	internal, err := repo.CreateEntry(ctx, f.userId, TransferLedgerEntry{
		Uid:        uuid.NewString(),
		FromItemId: f.expenseItemId,
		ToItemId:   f.expenseItemId,
		Amount:     250,
		Date:       date.Add(time.Hour),
	})
	require.NoError(t, err)

	// then both come back in date order, external source as zero
	entries, err := repo.GetEntries(ctx, f.userId, date.Add(-time.Hour), date.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, external.Id, entries[0].Id)
	assert.Equal(t, 0, entries[0].FromItemId)
	assert.Equal(t, int64(1000), entries[0].Amount)
	assert.Equal(t, internal.Id, entries[1].Id)
	assert.Equal(t, f.expenseItemId, entries[1].FromItemId)
}

func TestRepositoryImpl_WithTransaction_AtomicCreditAndEntry(t *testing.T) {
	// given
	ctx, repo, f := setupFixture(t)

	// when the credit succeeds but the ledger write fails
	err := repo.WithTransaction(ctx, func(txRepo Repository) error {
		updated, err := txRepo.UpdateItemAmount(ctx, f.userId, f.expenseItemId, 2500)
		require.NoError(t, err)
		require.True(t, updated)
		// duplicate uid forces the insert to fail
		uid := uuid.NewString()
		if _, err := txRepo.CreateEntry(ctx, f.userId, TransferLedgerEntry{
			Uid: uid, ToItemId: f.expenseItemId, Amount: 1000, Date: time.Now(),
		}); err != nil {
			return err
		}
		_, err = txRepo.CreateEntry(ctx, f.userId, TransferLedgerEntry{
			Uid: uid, ToItemId: f.expenseItemId, Amount: 1000, Date: time.Now(),
		})
		return err
	})

	// then the credit rolled back with the entry
	require.Error(t, err)
	item, err := repo.GetItem(ctx, f.userId, f.expenseItemId)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), item.Amount)
	entries, err := repo.GetEntries(ctx, f.userId, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
