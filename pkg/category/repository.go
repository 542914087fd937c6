package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Get(ctx context.Context, userId int, id int) (Category, error)
	Store(ctx context.Context, userId int, category Category) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, type FROM category WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("could not query categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.Id, &category.Name, &category.Type); err != nil {
			log.Errorf("could not scan category: %v", err)
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Category, error) {
	query := `SELECT id, name, type FROM category WHERE user_id = $1 AND id = $2`
	var category Category
	err := r.db.QueryRow(ctx, query, userId, id).Scan(&category.Id, &category.Name, &category.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		log.Errorf("could not get category: %v", err)
		return Category{}, err
	}
	return category, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, category Category) (int, error) {
	query := `INSERT INTO category (name, type, user_id) VALUES ($1, $2, $3) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, category.Name, category.Type, userId).Scan(&id)
	if err != nil {
		log.Errorf("could not store category: %v", err)
		return 0, err
	}
	return id, nil
}
