package budget

import (
	"context"
	"testing"
	"time"

	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceTestContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Username: "test"})
}

func TestServiceImpl_CreateItem_computesInitialPeriod(t *testing.T) {
	// given a weekly cadence anchored on Monday and a Thursday clock
	repo := NewRepositoryStub()
	budgetId, err := repo.CreateBudget(serviceTestContext(), 1, Budget{Name: "Household"})
	require.NoError(t, err)
	clock := &utils.MockClock{FixedNow: time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC)}
	service := NewService(repo, clock)

	// when
	created, err := service.CreateItem(serviceTestContext(), BudgetItem{
		BudgetId:      budgetId,
		CategoryId:    10,
		Cadence:       Cadence{Type: CadenceWeekly, DayOfWeek: time.Monday},
		TargetAmount:  5000,
		CadenceAmount: 1000,
	})

	// then the period covers the week containing the clock's now
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), created.PeriodStart)
	assert.True(t, created.IsCurrent(clock.Now()))
	assert.False(t, created.IsCurrent(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)))
}

func TestServiceImpl_CreateItem_rejectsInvalidCadence(t *testing.T) {
	repo := NewRepositoryStub()
	budgetId, err := repo.CreateBudget(serviceTestContext(), 1, Budget{Name: "Household"})
	require.NoError(t, err)
	service := NewService(repo, &utils.MockClock{FixedNow: time.Now()})

	_, err = service.CreateItem(serviceTestContext(), BudgetItem{
		BudgetId: budgetId,
		Cadence:  Cadence{Type: CadenceMonthly, DayOfMonth: 0},
	})

	assert.Error(t, err)
}

func TestServiceImpl_UpdateItem_preservesPeriod(t *testing.T) {
	// given a stored item
	repo := NewRepositoryStub()
	budgetId, err := repo.CreateBudget(serviceTestContext(), 1, Budget{Name: "Household"})
	require.NoError(t, err)
	clock := &utils.MockClock{FixedNow: time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC)}
	service := NewService(repo, clock)
	created, err := service.CreateItem(serviceTestContext(), BudgetItem{
		BudgetId:   budgetId,
		CategoryId: 10,
		Cadence:    Cadence{Type: CadenceWeekly, DayOfWeek: time.Monday},
	})
	require.NoError(t, err)

	// when the cadence changes mid-period
	clock.SetNow(time.Date(2025, 1, 18, 9, 0, 0, 0, time.UTC))
	updated, err := service.UpdateItem(serviceTestContext(), BudgetItem{
		Id:            created.Id,
		CategoryId:    10,
		Cadence:       Cadence{Type: CadenceMonthly, DayOfMonth: 1},
		TargetAmount:  9000,
		CadenceAmount: 500,
	})

	// then the cadence is stored but the running period is untouched
	require.NoError(t, err)
	assert.Equal(t, CadenceMonthly, updated.Cadence.Type)
	assert.Equal(t, created.PeriodStart, updated.PeriodStart)
	assert.Equal(t, created.PeriodEnd, updated.PeriodEnd)
	assert.Equal(t, created.BudgetId, updated.BudgetId)
}

func TestServiceImpl_Create_requiresUser(t *testing.T) {
	service := NewService(NewRepositoryStub(), &utils.MockClock{FixedNow: time.Now()})

	_, err := service.Create(context.Background(), Budget{Name: "Household"})

	assert.ErrorIs(t, err, user.ErrNoUser)
}
