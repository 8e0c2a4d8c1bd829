package ising

import "math/rand/v2"

// Source is the random stream consumed by lattice initialisation and by the
// Metropolis updater. Float64 returns a uniform value in [0, 1).
//
// A Source backed by finite entropy must panic once it is exhausted; it must
// never start repeating values.
type Source interface {
	Float64() float64
}

// RNG is a thin wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a PCG generator for the given seed and stream. Two RNGs with
// the same seed but different streams produce independent sequences, so every
// (field, temperature) pair of a run can own one.
func NewRNG(seed int64, stream uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), stream))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Rand exposes the underlying rand.Rand for advanced use.
func (r *RNG) Rand() *rand.Rand { return r.r }
