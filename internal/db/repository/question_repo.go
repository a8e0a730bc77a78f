package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxDB is a DBTX that can also open transactions.
type TxDB interface {
	DBTX
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// QuestionRepository is the Postgres-backed question store.
type QuestionRepository struct {
	db TxDB
}

var _ question.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(db TxDB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListQuestions counts and reads one window inside a read-only repeatable
// read transaction so the total and the rows come from the same snapshot.
func (r *QuestionRepository) ListQuestions(ctx context.Context, q question.Query) (question.Page, error) {
	if q.Filter.CategoryID != nil && !fitsInteger(*q.Filter.CategoryID) {
		return question.Page{Questions: []question.Question{}}, nil
	}

	count := countQuestionsSQL(q.Filter)
	list := selectQuestionsSQL(q)

	var page question.Page
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, count.sql, count.args...).Scan(&page.Total); err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		rows, err := tx.Query(ctx, list.sql, list.args...)
		if err != nil {
			return fmt.Errorf("select questions: %w", err)
		}
		page.Questions, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (question.Question, error) {
			return scanQuestion(row)
		})
		if err != nil {
			return fmt.Errorf("scan questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return question.Page{}, err
	}
	return page, nil
}

func (r *QuestionRepository) GetQuestion(ctx context.Context, id int) (question.Question, error) {
	if !fitsInteger(id) {
		return question.Question{}, question.ErrNotFound
	}
	row := r.db.QueryRow(ctx, "SELECT "+questionColumns+" FROM questions WHERE id = $1", id)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question.Question{}, question.ErrNotFound
		}
		return question.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

func (r *QuestionRepository) InsertQuestion(ctx context.Context, in question.NewQuestion) (question.Question, error) {
	row := r.db.QueryRow(ctx,
		"INSERT INTO questions (question, answer, category, difficulty) VALUES ($1, $2, $3, $4) RETURNING "+questionColumns,
		in.Text, in.Answer, in.Category, in.Difficulty,
	)
	q, err := scanQuestion(row)
	if err != nil {
		return question.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int) error {
	if !fitsInteger(id) {
		return question.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, "DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return question.ErrNotFound
	}
	return nil
}

// fitsInteger reports whether v can be bound to an INTEGER (int4) column.
// pgx refuses to encode anything wider, and no stored row can match it.
func fitsInteger(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func scanQuestion(row pgx.Row) (question.Question, error) {
	var q question.Question
	err := row.Scan(&q.ID, &q.Text, &q.Answer, &q.Category, &q.Difficulty)
	return q, err
}
