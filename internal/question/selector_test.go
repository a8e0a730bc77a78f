package question_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

func TestSelect_CategoryRestrictsPool(t *testing.T) {
	selector := question.NewSelector(scenarioStore(), question.NewSeededSource(1))

	for i := 0; i < 50; i++ {
		q, err := selector.Select(context.Background(), question.CategoryRef(1), nil)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Contains(t, []int{10, 11}, q.ID)
	}
}

func TestSelect_ExhaustedCategoryReturnsNil(t *testing.T) {
	selector := question.NewSelector(scenarioStore(), nil)

	q, err := selector.Select(context.Background(), question.CategoryRef(1), []int{10, 11})
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestSelect_UnknownCategoryReturnsNil(t *testing.T) {
	selector := question.NewSelector(scenarioStore(), nil)

	q, err := selector.Select(context.Background(), question.CategoryRef(404), nil)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestSelect_NoCategoryUsesWholeTable(t *testing.T) {
	selector := question.NewSelector(scenarioStore(), question.NewSeededSource(7))
	seen := map[int]bool{}

	for i := 0; i < 200; i++ {
		q, err := selector.Select(context.Background(), nil, nil)
		require.NoError(t, err)
		require.NotNil(t, q)
		seen[q.ID] = true
	}
	assert.Equal(t, map[int]bool{10: true, 11: true, 20: true}, seen)
}

func TestSelect_SentinelCategoryMeansAll(t *testing.T) {
	selector := question.NewSelector(scenarioStore(), nil)

	q, err := selector.Select(context.Background(), question.CategoryRef(question.AllCategories), []int{10, 11})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 20, q.ID)
}

func TestSelect_ExclusionsOutsideCategoryHaveNoEffect(t *testing.T) {
	selector := question.NewSelector(scenarioStore(), nil)

	q, err := selector.Select(context.Background(), question.CategoryRef(2), []int{10, 11, 999, 10})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 20, q.ID)
}

func TestSelect_NeverReturnsExcludedOrForeignQuestions(t *testing.T) {
	store := catalogueStore(30)
	selector := question.NewSelector(store, question.NewSeededSource(99))
	rng := rand.New(rand.NewPCG(3, 5))

	for trial := 0; trial < 300; trial++ {
		var category *int
		if c := rng.IntN(4); c > 0 {
			category = question.CategoryRef(c)
		}
		excluded := make([]int, 0, 10)
		for i := rng.IntN(25); i > 0; i-- {
			excluded = append(excluded, rng.IntN(35)+1)
		}
		excludedSet := question.NewIDSet(excluded...)

		q, err := selector.Select(context.Background(), category, excluded)
		require.NoError(t, err)
		if q == nil {
			continue
		}
		assert.False(t, excludedSet.Has(q.ID), "picked excluded id %d", q.ID)
		if category != nil {
			assert.Equal(t, *category, q.Category)
		}
	}
}

func TestSelect_SupersetExclusionExhaustsEveryCategory(t *testing.T) {
	store := catalogueStore(30)
	selector := question.NewSelector(store, nil)

	all := make([]int, 0, 40)
	for id := 1; id <= 40; id++ {
		all = append(all, id)
	}
	for category := 1; category <= 3; category++ {
		q, err := selector.Select(context.Background(), question.CategoryRef(category), all)
		require.NoError(t, err)
		assert.Nil(t, q, "category %d", category)
	}
}

func TestSelect_UniformOverRemaining(t *testing.T) {
	selector := question.NewSelector(catalogueStore(12), question.NewSeededSource(2024))

	// Category 1 holds ids 3, 6, 9, 12; excluding 6 leaves three candidates.
	const trials = 30000
	counts := map[int]int{}
	for i := 0; i < trials; i++ {
		q, err := selector.Select(context.Background(), question.CategoryRef(1), []int{6})
		require.NoError(t, err)
		require.NotNil(t, q)
		counts[q.ID]++
	}

	require.Len(t, counts, 3)
	expected := float64(trials) / 3
	for id, n := range counts {
		assert.InDelta(t, expected, float64(n), expected*0.05, "id %d picked %d times", id, n)
	}
}

func TestSelect_UsesInjectedSource(t *testing.T) {
	selector := question.NewSelector(scenarioStore(), fixedSource(1))

	q, err := selector.Select(context.Background(), nil, []int{10})
	require.NoError(t, err)
	require.NotNil(t, q)
	// Remaining ids in order are 11, 20; index 1 is 20.
	assert.Equal(t, 20, q.ID)
}

func TestSelect_StoreErrorPropagates(t *testing.T) {
	store := new(mockStore)
	boom := errors.New("connection reset")
	store.On("ListQuestions", mock.Anything, question.Query{
		Filter: question.Filter{CategoryID: question.CategoryRef(3)},
		Order:  question.OrderByIDAsc,
	}).Return(question.Page{}, boom)

	selector := question.NewSelector(store, nil)
	q, err := selector.Select(context.Background(), question.CategoryRef(3), nil)

	assert.Nil(t, q)
	assert.ErrorIs(t, err, boom)
	store.AssertExpectations(t)
}

type fixedSource int

func (f fixedSource) IntN(n int) int {
	return int(f) % n
}
