// Package rng provides the single seedable random source that every
// generation step draws from. Nothing in the engine touches math/rand's
// global state, so equal seeds reproduce equal scenarios.
package rng

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, enabling restore.
type RNG struct {
	src *rand.Rand
	pos int64
}

// New creates a new deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed))}
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return int(r.src.Int63() % int64(n))
}

// IntRange returns a random integer in [lo, hi], both inclusive.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Float64 returns a random float in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.pos++
	return float64(r.src.Int63()>>10) / (1 << 53)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// Shuffle pseudo-randomizes the order of n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// WeightedSelect returns an index chosen by weighted random selection.
// weights must be non-empty with all positive values.
func (r *RNG) WeightedSelect(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Restore creates an RNG and advances it to the given position, so a later
// phase of a generation can be re-run on its own. Every draw consumes
// exactly one Int63 from the source.
func Restore(seed int64, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	r.pos = position
	return r
}
