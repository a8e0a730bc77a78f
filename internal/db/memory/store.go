// Package memory is an in-process question.Store used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// Store keeps questions and categories in maps guarded by a single lock, so
// every call sees and produces a consistent state.
type Store struct {
	mu         sync.RWMutex
	questions  map[int]question.Question
	categories map[int]question.Category
	nextID     int
}

var _ question.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		questions:  make(map[int]question.Question),
		categories: make(map[int]question.Category),
		nextID:     1,
	}
}

// DefaultCategories mirrors the categories seeded by the Postgres migrations.
func DefaultCategories() []question.Category {
	return []question.Category{
		{ID: 1, Label: "Science"},
		{ID: 2, Label: "Art"},
		{ID: 3, Label: "Geography"},
		{ID: 4, Label: "History"},
		{ID: 5, Label: "Entertainment"},
		{ID: 6, Label: "Sports"},
	}
}

// SeedCategories adds or replaces categories.
func (s *Store) SeedCategories(categories ...question.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		s.categories[c.ID] = c
	}
}

// SeedQuestions stores questions with their ids as given. Later inserts get
// ids above the highest seeded one.
func (s *Store) SeedQuestions(questions ...question.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range questions {
		s.questions[q.ID] = q
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
	}
}

func (s *Store) ListQuestions(_ context.Context, q question.Query) (question.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]question.Question, 0, len(s.questions))
	for _, candidate := range s.questions {
		if q.Filter.Matches(candidate) {
			matched = append(matched, candidate)
		}
	}
	// OrderByIDAsc is the only ordering.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	lo, hi := q.Window.Bounds(len(matched))
	page := make([]question.Question, hi-lo)
	copy(page, matched[lo:hi])
	return question.Page{Questions: page, Total: len(matched)}, nil
}

func (s *Store) GetQuestion(_ context.Context, id int) (question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return question.Question{}, question.ErrNotFound
	}
	return q, nil
}

func (s *Store) InsertQuestion(_ context.Context, in question.NewQuestion) (question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := question.Question{
		ID:         s.nextID,
		Text:       in.Text,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}
	s.questions[q.ID] = q
	s.nextID++
	return q, nil
}

func (s *Store) DeleteQuestion(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return question.ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]question.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]question.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}
