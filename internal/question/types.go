package question

import (
	"context"
	"errors"
)

// Domain errors. Handlers map these onto HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("question: not found")
	ErrInvalidInput = errors.New("question: invalid input")
	ErrStoreFailure = errors.New("question: store failure")
)

// Question is a single trivia record.
type Question struct {
	ID         int    `json:"id"`
	Text       string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category labels a group of questions. Categories are seed data.
type Category struct {
	ID    int    `json:"id"`
	Label string `json:"type"`
}

// NewQuestion is a validated question that has not been assigned an id yet.
type NewQuestion struct {
	Text       string
	Answer     string
	Category   int
	Difficulty int
}

// Page is one window of an ordered result set. Total counts every record
// matching the filter, not just the ones in the window.
type Page struct {
	Questions []Question
	Total     int
}

// QuestionStore persists questions. Implementations return ErrNotFound for
// unknown ids and must evaluate each call atomically.
type QuestionStore interface {
	ListQuestions(ctx context.Context, q Query) (Page, error)
	GetQuestion(ctx context.Context, id int) (Question, error)
	InsertQuestion(ctx context.Context, in NewQuestion) (Question, error)
	DeleteQuestion(ctx context.Context, id int) error
}

// CategoryStore reads categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// Store is the full persistence surface, one implementation per engine.
type Store interface {
	QuestionStore
	CategoryStore
	Ping(ctx context.Context) error
}
