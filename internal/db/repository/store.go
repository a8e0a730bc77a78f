package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// Pool is what Store needs from *pgxpool.Pool.
type Pool interface {
	TxDB
	Ping(ctx context.Context) error
}

// Store bundles the Postgres repositories into a question.Store.
type Store struct {
	*QuestionRepository
	*CategoryRepository
	pool Pool
}

var _ question.Store = (*Store)(nil)

func NewStore(pool Pool) *Store {
	return &Store{
		QuestionRepository: NewQuestionRepository(pool),
		CategoryRepository: NewCategoryRepository(pool),
		pool:               pool,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
