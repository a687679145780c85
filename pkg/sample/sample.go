// Package sample provides the random source used by the parameter samplers.
//
// Generators never touch global random state directly. They take a
// [Source], which is satisfied by *rand.Rand from math/rand/v2. Use [New]
// for a reproducible stream and [Default] for the process-wide generator.
package sample

import "math/rand/v2"

// Source produces uniformly distributed values.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// New returns a deterministic source seeded with seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

type global struct{}

func (global) Float64() float64 { return rand.Float64() }
func (global) IntN(n int) int   { return rand.IntN(n) }

// Default returns a source backed by the process-wide generator.
// It is safe for concurrent use and has no seeding contract.
func Default() Source { return global{} }

// Range returns a value in [lo, hi).
func Range(r Source, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Pick returns one of values chosen uniformly.
func Pick[T any](r Source, values ...T) T {
	return values[r.IntN(len(values))]
}
