package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

func TestStore_InsertAssignsIncreasingIDs(t *testing.T) {
	store := New()
	store.SeedQuestions(question.Question{ID: 7, Text: "seed", Answer: "a", Category: 1})

	first, err := store.InsertQuestion(context.Background(), question.NewQuestion{Text: "Q1", Answer: "A1", Category: 1, Difficulty: 1})
	require.NoError(t, err)
	second, err := store.InsertQuestion(context.Background(), question.NewQuestion{Text: "Q2", Answer: "A2", Category: 2, Difficulty: 3})
	require.NoError(t, err)

	assert.Equal(t, 8, first.ID)
	assert.Equal(t, 9, second.ID)

	got, err := store.GetQuestion(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStore_ListQuestionsFiltersOrdersAndWindows(t *testing.T) {
	store := New()
	store.SeedQuestions(
		question.Question{ID: 3, Text: "What is the Title of the book?", Category: 4},
		question.Question{ID: 1, Text: "Which planet is red?", Category: 1},
		question.Question{ID: 2, Text: "Movie title with Tom Hanks", Category: 5},
		question.Question{ID: 4, Text: "Largest ocean", Category: 3},
	)

	page, err := store.ListQuestions(context.Background(), question.Query{
		Filter: question.Filter{Search: "TITLE"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, 2, page.Questions[0].ID)
	assert.Equal(t, 3, page.Questions[1].ID)

	page, err = store.ListQuestions(context.Background(), question.Query{
		Window: question.Window{Offset: 1, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []int{2, 3}, ids(page.Questions))

	page, err = store.ListQuestions(context.Background(), question.Query{
		Filter: question.Filter{CategoryID: question.CategoryRef(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(page.Questions))
}

func TestStore_ListQuestionsBeyondEnd(t *testing.T) {
	store := New()
	store.SeedQuestions(question.Question{ID: 1, Text: "only"})

	page, err := store.ListQuestions(context.Background(), question.Query{Window: question.PageWindow(5)})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.NotNil(t, page.Questions)
	assert.Empty(t, page.Questions)
}

func TestStore_DeleteQuestion(t *testing.T) {
	store := New()
	store.SeedQuestions(question.Question{ID: 1, Text: "gone soon"})

	require.NoError(t, store.DeleteQuestion(context.Background(), 1))
	assert.ErrorIs(t, store.DeleteQuestion(context.Background(), 1), question.ErrNotFound)

	_, err := store.GetQuestion(context.Background(), 1)
	assert.ErrorIs(t, err, question.ErrNotFound)
}

func TestStore_ListCategoriesSorted(t *testing.T) {
	store := New()
	store.SeedCategories(DefaultCategories()...)

	categories, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 6)
	for i, c := range categories {
		assert.Equal(t, i+1, c.ID)
	}
	assert.Equal(t, "Science", categories[0].Label)
}

func ids(qs []question.Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}
