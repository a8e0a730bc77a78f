package question

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// QueryService serves the read side of the question catalogue.
type QueryService struct {
	store QuestionStore
}

func NewQueryService(store QuestionStore) *QueryService {
	return &QueryService{store: store}
}

// List returns one page of questions whose text contains searchTerm
// (case-insensitive). An empty term matches every question.
func (s *QueryService) List(ctx context.Context, page int, searchTerm string) (Page, error) {
	return s.list(ctx, Filter{Search: searchTerm}, page)
}

// ListByCategory returns one page of the questions in categoryID.
func (s *QueryService) ListByCategory(ctx context.Context, categoryID, page int) (Page, error) {
	return s.list(ctx, Filter{CategoryID: CategoryRef(categoryID)}, page)
}

func (s *QueryService) list(ctx context.Context, filter Filter, page int) (Page, error) {
	result, err := s.store.ListQuestions(ctx, Query{
		Filter: filter,
		Order:  OrderByIDAsc,
		Window: PageWindow(page),
	})
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}
	if result.Questions == nil {
		result.Questions = []Question{}
	}
	return result, nil
}

// Get fetches a question by id. Returns ErrNotFound when absent.
func (s *QueryService) Get(ctx context.Context, id int) (Question, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Question{}, ErrNotFound
		}
		return Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

// CreateInput is the raw create payload. Nil fields were absent from the request.
type CreateInput struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   any     `json:"category"`
	Difficulty any     `json:"difficulty"`
}

// Validate checks presence of every field and coerces category and
// difficulty to integers. Numeric strings are read as base 10.
func (in CreateInput) Validate() (NewQuestion, error) {
	switch {
	case in.Question == nil:
		return NewQuestion{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	case in.Answer == nil:
		return NewQuestion{}, fmt.Errorf("%w: answer is required", ErrInvalidInput)
	case in.Category == nil:
		return NewQuestion{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	case in.Difficulty == nil:
		return NewQuestion{}, fmt.Errorf("%w: difficulty is required", ErrInvalidInput)
	}

	text, answer := *in.Question, *in.Answer
	if strings.TrimSpace(text) == "" {
		return NewQuestion{}, fmt.Errorf("%w: question must not be blank", ErrInvalidInput)
	}
	if strings.TrimSpace(answer) == "" {
		return NewQuestion{}, fmt.Errorf("%w: answer must not be blank", ErrInvalidInput)
	}

	category, err := coerceInt(in.Category)
	if err != nil {
		return NewQuestion{}, fmt.Errorf("%w: category: %v", ErrInvalidInput, err)
	}
	difficulty, err := coerceInt(in.Difficulty)
	if err != nil {
		return NewQuestion{}, fmt.Errorf("%w: difficulty: %v", ErrInvalidInput, err)
	}

	return NewQuestion{
		Text:       text,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}, nil
}

// MutationService creates and deletes questions.
type MutationService struct {
	store QuestionStore
}

func NewMutationService(store QuestionStore) *MutationService {
	return &MutationService{store: store}
}

// Create validates in, persists it and returns the stored record.
func (s *MutationService) Create(ctx context.Context, in CreateInput) (Question, error) {
	nq, err := in.Validate()
	if err != nil {
		return Question{}, err
	}
	q, err := s.store.InsertQuestion(ctx, nq)
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w: %w", ErrStoreFailure, err)
	}
	return q, nil
}

// Delete permanently removes a question. Returns ErrNotFound when absent.
func (s *MutationService) Delete(ctx context.Context, id int) error {
	if _, err := s.store.GetQuestion(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup question %d: %w", id, err)
	}

	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		// Lost a race with another delete.
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete question %d: %w: %w", id, ErrStoreFailure, err)
	}
	return nil
}

// CategoryService lists categories.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// ListAll returns every category keyed by id.
func (s *CategoryService) ListAll(ctx context.Context) (map[int]string, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Label
	}
	return out, nil
}
