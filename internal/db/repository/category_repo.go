package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// CategoryRepository reads the seeded categories table.
type CategoryRepository struct {
	db DBTX
}

var _ question.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := r.db.Query(ctx, "SELECT id, type FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (question.Category, error) {
		var c question.Category
		err := row.Scan(&c.ID, &c.Label)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}
