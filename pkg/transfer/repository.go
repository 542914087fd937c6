package transfer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/centavo/centavo/pkg/budget"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// WithTransaction runs fn against a repository whose operations all
	// execute inside a single database transaction, committed when fn
	// returns nil and rolled back otherwise.
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// GetCurrentExpenseItems returns the user's budget items assigned to an
	// expense category whose period contains now, ordered by item id.
	GetCurrentExpenseItems(ctx context.Context, userId int, now time.Time) ([]budget.BudgetItem, error)
	GetItem(ctx context.Context, userId int, itemId int) (budget.BudgetItem, error)
	UpdateItemAmount(ctx context.Context, userId int, itemId int, amount int64) (bool, error)
	CreateEntry(ctx context.Context, userId int, entry TransferLedgerEntry) (TransferLedgerEntry, error)
	GetEntries(ctx context.Context, userId int, from time.Time, to time.Time) ([]TransferLedgerEntry, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

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

const itemColumns = `item.id,
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
				item.period_end`

func (r *RepositoryImpl) GetCurrentExpenseItems(ctx context.Context, userId int, now time.Time) ([]budget.BudgetItem, error) {
	query := `SELECT ` + itemColumns + `
			  FROM budget_item item
			  JOIN budget ON budget.id = item.budget_id
			  JOIN category ON category.id = item.category_id
			  WHERE budget.user_id = $1
			    AND category.type = 'expense'
			    AND item.period_start <= $2 AND item.period_end >= $2
			  ORDER BY item.id`
	rows, err := r.getQueryer().Query(ctx, query, userId, now)
	if err != nil {
		log.Errorf("could not query current expense items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []budget.BudgetItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Errorf("could not scan budget item: %v", err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *RepositoryImpl) GetItem(ctx context.Context, userId int, itemId int) (budget.BudgetItem, error) {
	query := `SELECT ` + itemColumns + `
			  FROM budget_item item
			  JOIN budget ON budget.id = item.budget_id
			  WHERE budget.user_id = $1 AND item.id = $2`
	item, err := scanItem(r.getQueryer().QueryRow(ctx, query, userId, itemId))
	if errors.Is(err, pgx.ErrNoRows) {
		return budget.BudgetItem{}, budget.ErrItemNotFound
	} else if err != nil {
		log.Errorf("could not get budget item: %v", err)
		return budget.BudgetItem{}, err
	}
	return item, nil
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

func (r *RepositoryImpl) CreateEntry(ctx context.Context, userId int, entry TransferLedgerEntry) (TransferLedgerEntry, error) {
	var fromItemId interface{}
	if entry.FromItemId != 0 {
		fromItemId = entry.FromItemId
	}
	query := `INSERT INTO transfer_ledger_entry (uid, from_item_id, to_item_id, amount_cents, date, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.getQueryer().QueryRow(ctx, query,
		entry.Uid,
		fromItemId,
		entry.ToItemId,
		entry.Amount,
		entry.Date,
		userId,
	).Scan(&entry.Id)
	if err != nil {
		log.Errorf("could not store transfer ledger entry: %v", err)
		return TransferLedgerEntry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) GetEntries(ctx context.Context, userId int, from time.Time, to time.Time) ([]TransferLedgerEntry, error) {
	query := `SELECT id, uid, from_item_id, to_item_id, amount_cents, date
			  FROM transfer_ledger_entry
			  WHERE user_id = $1 AND date >= $2 AND date <= $3
			  ORDER BY date, id`
	rows, err := r.getQueryer().Query(ctx, query, userId, from, to)
	if err != nil {
		log.Errorf("could not query transfer ledger entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []TransferLedgerEntry
	for rows.Next() {
		var entry TransferLedgerEntry
		var fromItemId sql.NullInt64
		if err := rows.Scan(
			&entry.Id,
			&entry.Uid,
			&fromItemId,
			&entry.ToItemId,
			&entry.Amount,
			&entry.Date,
		); err != nil {
			log.Errorf("could not scan transfer ledger entry: %v", err)
			return nil, err
		}
		if fromItemId.Valid {
			entry.FromItemId = int(fromItemId.Int64)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanItem(row pgx.Row) (budget.BudgetItem, error) {
	var item budget.BudgetItem
	var cadenceType string
	var dayOfWeek, dayOfMonth, month int
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
		&item.PeriodStart,
		&item.PeriodEnd,
	); err != nil {
		return budget.BudgetItem{}, err
	}
	item.Cadence = budget.Cadence{
		Type:       budget.CadenceType(cadenceType),
		DayOfWeek:  time.Weekday(dayOfWeek),
		DayOfMonth: dayOfMonth,
		Month:      time.Month(month),
	}
	return item, nil
}
