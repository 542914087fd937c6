package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrItemNotFound = errors.New("budget item not found")
var ErrBudgetNotFound = errors.New("budget not found")

type Repository interface {
	// WithTransaction runs fn against a repository whose operations all
	// execute inside a single database transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	GetUserBudgets(ctx context.Context, userId int) ([]Budget, error)
	GetItem(ctx context.Context, userId int, itemId int) (BudgetItem, error)
	CreateBudget(ctx context.Context, userId int, budget Budget) (int, error)
	CreateItem(ctx context.Context, userId int, item BudgetItem) (BudgetItem, error)
	UpdateItem(ctx context.Context, userId int, item BudgetItem) (bool, error)
	UpdateItemAmount(ctx context.Context, userId int, itemId int, amount int64) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *RepositoryImpl) GetUserBudgets(ctx context.Context, userId int) ([]Budget, error) {
	query := `SELECT id, name FROM budget WHERE user_id = $1 ORDER BY id`
	rows, err := r.getQueryer().Query(ctx, query, userId)
	if err != nil {
		log.Errorf("could not query budgets: %v", err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	byId := map[int]int{}
	for rows.Next() {
		var budget Budget
		if err := rows.Scan(&budget.Id, &budget.Name); err != nil {
			log.Errorf("could not scan budget: %v", err)
			return nil, err
		}
		byId[budget.Id] = len(budgets)
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsQuery := `SELECT
				item.id,
				item.budget_id,
				item.category_id,
				item.cadence_type,
				item.cadence_day_of_week,
				item.cadence_day_of_month,
				item.cadence_month,
				item.amount_cents,
				item.target_amount_cents,
				item.cadence_amount_cents,
				item.period_start,
				item.period_end
			  FROM budget_item item
			  JOIN budget ON budget.id = item.budget_id
			  WHERE budget.user_id = $1
			  ORDER BY item.budget_id, item.category_id, item.period_start`
	itemRows, err := r.getQueryer().Query(ctx, itemsQuery, userId)
	if err != nil {
		log.Errorf("could not query budget items: %v", err)
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		idx, ok := byId[item.BudgetId]
		if !ok {
			continue
		}
		budgets[idx].Items = append(budgets[idx].Items, item)
	}
	return budgets, itemRows.Err()
}

func (r *RepositoryImpl) GetItem(ctx context.Context, userId int, itemId int) (BudgetItem, error) {
	query := `SELECT
				item.id,
				item.budget_id,
				item.category_id,
				item.cadence_type,
				item.cadence_day_of_week,
				item.cadence_day_of_month,
				item.cadence_month,
				item.amount_cents,
				item.target_amount_cents,
				item.cadence_amount_cents,
				item.period_start,
				item.period_end
			  FROM budget_item item
			  JOIN budget ON budget.id = item.budget_id
			  WHERE budget.user_id = $1 AND item.id = $2`
	item, err := scanItem(r.getQueryer().QueryRow(ctx, query, userId, itemId))
	if errors.Is(err, pgx.ErrNoRows) {
		return BudgetItem{}, ErrItemNotFound
	} else if err != nil {
		log.Errorf("could not get budget item: %v", err)
		return BudgetItem{}, err
	}
	return item, nil
}

func (r *RepositoryImpl) CreateBudget(ctx context.Context, userId int, budget Budget) (int, error) {
	query := `INSERT INTO budget (name, user_id) VALUES ($1, $2) RETURNING id`
	var id int
	if err := r.getQueryer().QueryRow(ctx, query, budget.Name, userId).Scan(&id); err != nil {
		log.Errorf("could not store budget: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) CreateItem(ctx context.Context, userId int, item BudgetItem) (BudgetItem, error) {
	// Ownership check happens via the budget join: inserting into someone
	// else's budget affects zero rows.
	query := `INSERT INTO budget_item (
				budget_id,
				category_id,
				cadence_type,
				cadence_day_of_week,
				cadence_day_of_month,
				cadence_month,
				amount_cents,
				target_amount_cents,
				cadence_amount_cents,
				period_start,
				period_end
			  )
			  SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
			  WHERE EXISTS (SELECT 1 FROM budget WHERE id = $1 AND user_id = $12)
			  RETURNING id`
	err := r.getQueryer().QueryRow(ctx, query,
		item.BudgetId,
		item.CategoryId,
		string(item.Cadence.Type),
		int(item.Cadence.DayOfWeek),
		item.Cadence.DayOfMonth,
		int(item.Cadence.Month),
		item.Amount,
		item.TargetAmount,
		item.CadenceAmount,
		item.PeriodStart,
		item.PeriodEnd,
		userId,
	).Scan(&item.Id)
	if errors.Is(err, pgx.ErrNoRows) {
		return BudgetItem{}, ErrBudgetNotFound
	} else if err != nil {
		log.Errorf("could not store budget item: %v", err)
		return BudgetItem{}, err
	}
	return item, nil
}

func (r *RepositoryImpl) UpdateItem(ctx context.Context, userId int, item BudgetItem) (bool, error) {
	query := `UPDATE budget_item SET
				category_id = $1,
				cadence_type = $2,
				cadence_day_of_week = $3,
				cadence_day_of_month = $4,
				cadence_month = $5,
				amount_cents = $6,
				target_amount_cents = $7,
				cadence_amount_cents = $8,
				period_start = $9,
				period_end = $10
			  WHERE id = $11
			    AND budget_id IN (SELECT id FROM budget WHERE user_id = $12)`
	result, err := r.getQueryer().Exec(ctx, query,
		item.CategoryId,
		string(item.Cadence.Type),
		int(item.Cadence.DayOfWeek),
		item.Cadence.DayOfMonth,
		int(item.Cadence.Month),
		item.Amount,
		item.TargetAmount,
		item.CadenceAmount,
		item.PeriodStart,
		item.PeriodEnd,
		item.Id,
		userId,
	)
	if err != nil {
		log.Errorf("could not update budget item: %v", err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) UpdateItemAmount(ctx context.Context, userId int, itemId int, amount int64) (bool, error) {
	query := `UPDATE budget_item SET amount_cents = $1
			  WHERE id = $2
			    AND budget_id IN (SELECT id FROM budget WHERE user_id = $3)`
	result, err := r.getQueryer().Exec(ctx, query, amount, itemId, userId)
	if err != nil {
		log.Errorf("could not update budget item amount: %v", err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanItem(row pgx.Row) (BudgetItem, error) {
	var item BudgetItem
	var cadenceType string
	var dayOfWeek, dayOfMonth, month int
	var periodStart, periodEnd time.Time
	if err := row.Scan(
		&item.Id,
		&item.BudgetId,
		&item.CategoryId,
		&cadenceType,
		&dayOfWeek,
		&dayOfMonth,
		&month,
		&item.Amount,
		&item.TargetAmount,
		&item.CadenceAmount,
		&periodStart,
		&periodEnd,
	); err != nil {
		return BudgetItem{}, err
	}
	item.Cadence = Cadence{
		Type:       CadenceType(cadenceType),
		DayOfWeek:  time.Weekday(dayOfWeek),
		DayOfMonth: dayOfMonth,
		Month:      time.Month(month),
	}
	item.PeriodStart = periodStart
	item.PeriodEnd = periodEnd
	return item, nil
}
