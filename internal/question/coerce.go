package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Ids, categories and difficulties are stored as Postgres INTEGER.
const (
	minStoredInt = math.MinInt32
	maxStoredInt = math.MaxInt32
)

var errNotInteger = errors.New("not a whole decimal number")

// coerceInt converts a decoded JSON value or query string to an int that fits
// the INTEGER columns. Strings must be plain base-10 numbers, floats must be
// whole, and booleans are rejected.
func coerceInt(v any) (int, error) {
	switch t := v.(type) {
	case nil, bool:
		return 0, errNotInteger
	case string:
		return parseStoredInt(t)
	case json.Number:
		return parseStoredInt(t.String())
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || t < minStoredInt || t > maxStoredInt {
			return 0, fmt.Errorf("%v: %w", t, errNotInteger)
		}
	case float32:
		if f := float64(t); f != math.Trunc(f) || f < minStoredInt || f > maxStoredInt {
			return 0, fmt.Errorf("%v: %w", t, errNotInteger)
		}
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, err
	}
	if n < minStoredInt || n > maxStoredInt {
		return 0, fmt.Errorf("%d is out of range", n)
	}
	return int(n), nil
}

func parseStoredInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errNotInteger
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errNotInteger)
	}
	return int(n), nil
}
