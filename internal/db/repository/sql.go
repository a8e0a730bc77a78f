package repository

import (
	"fmt"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

const questionColumns = "id, question, answer, category, difficulty"

// statement is a parameterised SQL string with its positional arguments.
type statement struct {
	sql  string
	args []any
}

// whereClause renders a filter as a WHERE clause starting at placeholder $1.
// Values never reach the SQL text.
func whereClause(f question.Filter) statement {
	var (
		conds []string
		args  []any
	)
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		conds = append(conds, fmt.Sprintf("question ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return statement{}
	}
	return statement{sql: " WHERE " + strings.Join(conds, " AND "), args: args}
}

func countQuestionsSQL(f question.Filter) statement {
	where := whereClause(f)
	return statement{sql: "SELECT COUNT(*) FROM questions" + where.sql, args: where.args}
}

func selectQuestionsSQL(q question.Query) statement {
	where := whereClause(q.Filter)
	args := where.args

	var b strings.Builder
	b.WriteString("SELECT " + questionColumns + " FROM questions")
	b.WriteString(where.sql)
	switch q.Order {
	case question.OrderByIDAsc:
		b.WriteString(" ORDER BY id ASC")
	}
	if q.Window.Limit > 0 {
		args = append(args, q.Window.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if q.Window.Offset > 0 {
		args = append(args, q.Window.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return statement{sql: b.String(), args: args}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring ILIKE match, escaping wildcards so
// they match literally. Postgres uses backslash as the default LIKE escape.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
