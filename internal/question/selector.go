package question

import (
	"context"
	"fmt"
)

// AllCategories is the sentinel category id meaning "no restriction".
const AllCategories = 0

// Selector picks the next quiz question for a caller that tracks which
// questions it has already seen.
type Selector struct {
	store QuestionStore
	rng   RandSource
}

func NewSelector(store QuestionStore, rng RandSource) *Selector {
	if rng == nil {
		rng = DefaultRandSource()
	}
	return &Selector{store: store, rng: rng}
}

// Select returns a question chosen uniformly at random from the questions in
// categoryID (all questions when nil or AllCategories) whose ids are not in
// excluded. It returns nil, nil when nothing is left.
//
// The base set is read with a single store call so the choice is made over
// one consistent snapshot.
func (s *Selector) Select(ctx context.Context, categoryID *int, excluded []int) (*Question, error) {
	filter := Filter{}
	if categoryID != nil && *categoryID != AllCategories {
		filter.CategoryID = CategoryRef(*categoryID)
	}

	base, err := s.store.ListQuestions(ctx, Query{Filter: filter, Order: OrderByIDAsc})
	if err != nil {
		quizSelections.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("load eligible questions: %w", err)
	}

	baseIDs := make([]int, 0, len(base.Questions))
	for _, q := range base.Questions {
		baseIDs = append(baseIDs, q.ID)
	}
	eligible := NewIDSet(baseIDs...).Difference(NewIDSet(excluded...))
	if eligible.Len() == 0 {
		quizSelections.WithLabelValues(outcomeExhausted).Inc()
		return nil, nil
	}

	// Walk the id-ordered base so a seeded source gives repeatable picks.
	remaining := make([]Question, 0, eligible.Len())
	for _, q := range base.Questions {
		if eligible.Has(q.ID) {
			remaining = append(remaining, q)
		}
	}

	picked := remaining[s.rng.IntN(len(remaining))]
	quizSelections.WithLabelValues(outcomeQuestion).Inc()
	return &picked, nil
}
