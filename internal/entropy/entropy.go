// Package entropy provides the seedable random stream every stochastic
// decision in the simulation draws from. The simulation owns exactly one
// Stream and consumes it in a fixed order, so a fixed seed reproduces a run
// and tests can substitute a scripted stream.
package entropy

import (
	"math/rand/v2"
	"time"
)

// Stream is the random primitive set the simulation consumes. Tests may
// substitute a deterministic implementation.
type Stream interface {
	// Float returns a uniform value in [0, 1).
	Float() float64
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// Source is the default seeded Stream.
type Source struct {
	r *rand.Rand
}

// NewSource creates a seeded Source. A zero seed picks a time-based one.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)))}
}

// Float returns a uniform value in [0, 1).
func (s *Source) Float() float64 { return s.r.Float64() }

// IntN returns a uniform value in [0, n).
func (s *Source) IntN(n int) int { return s.r.IntN(n) }

// Coin returns true with probability 0.5.
func Coin(s Stream) bool { return s.Float() < 0.5 }

// Chance returns true with probability p.
func Chance(s Stream, p float64) bool { return s.Float() < p }

// Range returns a uniform value in [lo, hi).
func Range(s Stream, lo, hi float64) float64 {
	return lo + s.Float()*(hi-lo)
}

// Sign returns -1 or +1 with equal probability.
func Sign(s Stream) int {
	if Coin(s) {
		return -1
	}
	return 1
}

// WeightedIndex picks an index with probability proportional to its weight.
// Non-positive total weight degrades to a uniform pick.
func WeightedIndex(s Stream, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.IntN(len(weights))
	}
	draw := s.Float() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		draw -= w
		if draw < 0 {
			return i
		}
	}
	return len(weights) - 1
}
