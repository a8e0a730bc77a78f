package question_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListQuestions(ctx context.Context, q question.Query) (question.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(question.Page), args.Error(1)
}

func (m *mockStore) GetQuestion(ctx context.Context, id int) (question.Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(question.Question), args.Error(1)
}

func (m *mockStore) InsertQuestion(ctx context.Context, in question.NewQuestion) (question.Question, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(question.Question), args.Error(1)
}

func (m *mockStore) DeleteQuestion(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) ListCategories(ctx context.Context) ([]question.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]question.Category), args.Error(1)
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// scenarioStore holds categories {1: Science, 2: Art} and questions
// 10, 11 in category 1 and 20 in category 2.
func scenarioStore() *memory.Store {
	store := memory.New()
	store.SeedCategories(
		question.Category{ID: 1, Label: "Science"},
		question.Category{ID: 2, Label: "Art"},
	)
	store.SeedQuestions(
		question.Question{ID: 10, Text: "What is H2O?", Answer: "Water", Category: 1, Difficulty: 1},
		question.Question{ID: 11, Text: "Closest star to Earth?", Answer: "The Sun", Category: 1, Difficulty: 2},
		question.Question{ID: 20, Text: "Who painted the Mona Lisa?", Answer: "Da Vinci", Category: 2, Difficulty: 3},
	)
	return store
}

// catalogueStore holds n questions with ids 1..n spread over categories 1..3.
// Every third question mentions "title".
func catalogueStore(n int) *memory.Store {
	store := memory.New()
	store.SeedCategories(memory.DefaultCategories()...)
	qs := make([]question.Question, 0, n)
	for id := 1; id <= n; id++ {
		text := "Question about nothing in particular"
		if id%3 == 0 {
			text = "Which book has this Title?"
		}
		qs = append(qs, question.Question{
			ID:         id,
			Text:       text,
			Answer:     "answer",
			Category:   id%3 + 1,
			Difficulty: id%5 + 1,
		})
	}
	store.SeedQuestions(qs...)
	return store
}

func questionIDs(qs []question.Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}
