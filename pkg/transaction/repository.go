package transaction

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// GetForPeriod returns the user's transactions with a date inside
	// [from, to], ordered by date then id so classification runs in a
	// stable order.
	GetForPeriod(ctx context.Context, userId int, from time.Time, to time.Time) ([]Transaction, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetForPeriod(ctx context.Context, userId int, from time.Time, to time.Time) ([]Transaction, error) {
	query := `SELECT id, account_id, amount_cents, date, category_id
			  FROM bank_transaction
			  WHERE user_id = $1 AND date >= $2 AND date <= $3
			  ORDER BY date, id`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		log.Errorf("could not query transactions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		var txn Transaction
		if err := rows.Scan(
			&txn.Id,
			&txn.AccountId,
			&txn.Amount,
			&txn.Date,
			&txn.CategoryId,
		); err != nil {
			log.Errorf("could not scan transaction: %v", err)
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
