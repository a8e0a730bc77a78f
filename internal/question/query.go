package question

import (
	"math"
	"strings"
)

// PageSize is the fixed number of questions per page.
const PageSize = 10

// Order selects the ordering of a query result.
type Order int

const (
	// OrderByIDAsc orders by id ascending. It is the only ordering the API exposes.
	OrderByIDAsc Order = iota
)

// Filter is the predicate half of a Query. Zero value matches everything.
type Filter struct {
	// Search matches questions whose text contains it, ignoring case.
	Search string
	// CategoryID restricts results to one category when set.
	CategoryID *int
}

// Matches reports whether q satisfies the filter. Store implementations
// must agree with it.
func (f Filter) Matches(q Question) bool {
	if f.CategoryID != nil && q.Category != *f.CategoryID {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(q.Text), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Window is an offset/limit slice of an ordered result. Limit 0 is unbounded.
type Window struct {
	Offset int
	Limit  int
}

// PageWindow returns the window for a 1-indexed page. Pages below 1 are
// treated as the first page. The offset saturates at math.MaxInt, so huge
// pages land past the end instead of wrapping.
func PageWindow(page int) Window {
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/PageSize {
		return Window{Offset: math.MaxInt, Limit: PageSize}
	}
	return Window{Offset: (page - 1) * PageSize, Limit: PageSize}
}

// Bounds clamps the window to a result of n records and returns slice indexes.
func (w Window) Bounds(n int) (lo, hi int) {
	lo = min(max(w.Offset, 0), n)
	hi = n
	if w.Limit > 0 {
		hi = min(lo+w.Limit, n)
	}
	return lo, hi
}

// Query is a typed description of a question lookup handed to a store.
type Query struct {
	Filter Filter
	Order  Order
	Window Window
}

// CategoryRef returns a pointer suitable for Filter.CategoryID.
func CategoryRef(id int) *int {
	return &id
}
