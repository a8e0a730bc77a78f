package question

import (
	"math/rand/v2"
	"sync"
)

// RandSource yields uniform integers in [0, n).
type RandSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRandSource returns the process-wide generator. Safe for concurrent use.
func DefaultRandSource() RandSource {
	return globalSource{}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a deterministic source that is safe for concurrent use.
func NewSeededSource(seed uint64) RandSource {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
