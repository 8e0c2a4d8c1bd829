package ising

import "math"

// AcceptanceProbability is the Metropolis acceptance probability of a move
// that changes the energy by dE at temperature t. Downhill and neutral moves
// are always accepted. At t <= 0 (the zero-temperature limit) uphill moves are
// never accepted.
func AcceptanceProbability(dE, t float64) float64 {
	switch {
	case dE <= 0:
		return 1
	case t <= 0:
		return 0
	default:
		return math.Exp(-dE / t)
	}
}

// Metropolis advances a lattice by single-spin-flip sweeps at a fixed
// temperature.
type Metropolis struct {
	Model Model
	T     float64

	src Source
}

// NewMetropolis returns an updater drawing its randomness from src.
func NewMetropolis(m Model, t float64, src Source) *Metropolis {
	return &Metropolis{Model: m, T: t, src: src}
}

// Sweep proposes one flip for every site in row-major order and reports how
// many were accepted. Sites are updated in place, so later sites in the sweep
// see the already-updated neighbours. A random value is drawn only for uphill
// moves at positive temperature.
func (u *Metropolis) Sweep(l *Lattice) int {
	accepted := 0
	for i := 0; i < l.n; i++ {
		for j := 0; j < l.n; j++ {
			dE := u.Model.DeltaE(l, i, j)
			if dE <= 0 {
				l.Flip(i, j)
				accepted++
				continue
			}
			if u.T > 0 && u.src.Float64() < AcceptanceProbability(dE, u.T) {
				l.Flip(i, j)
				accepted++
			}
		}
	}
	return accepted
}
