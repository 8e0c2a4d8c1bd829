/*
PURPOSE:
  Spin state of one simulation run: an N x N torus of +1/-1 values.

REQUIREMENTS:
  - Every cell is exactly +1 or -1 at all times.
  - Neighbour lookup wraps around both axes (periodic boundaries).
  - A fresh lattice is drawn independently per (field, temperature) pair.

IMPLEMENTATION RULES:
  - Flat row-major buffer, explicit periodic index mapping.
  - Randomness only from the Source passed in. No package-level generator.

RELATED FILES:
  - energy.go, metropolis.go
*/

package ising

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

const (
	Up   int8 = 1
	Down int8 = -1
)

// Lattice stores an N x N grid of spins in row-major order.
type Lattice struct {
	n     int
	spins []int8
}

// NewLattice allocates an n x n lattice and sets each spin to +1 or -1 with
// probability 0.5, drawing one value from src per cell in row-major order.
// It panics if n is not positive.
func NewLattice(n int, src Source) *Lattice {
	l := alloc(n)
	for k := range l.spins {
		if src.Float64() < 0.5 {
			l.spins[k] = Down
		} else {
			l.spins[k] = Up
		}
	}
	return l
}

// NewUniform allocates an n x n lattice with every spin set to s.
func NewUniform(n int, s int8) *Lattice {
	mustSpin(s)
	l := alloc(n)
	for k := range l.spins {
		l.spins[k] = s
	}
	return l
}

// FromSpins builds a lattice from row-major values. It fails if the slice is
// not n*n long or holds anything other than +1/-1.
func FromSpins(n int, spins []int8) (*Lattice, error) {
	if n <= 0 {
		return nil, errors.Errorf("ising: lattice size must be positive, got %d", n)
	}
	if len(spins) != n*n {
		return nil, errors.Errorf("ising: expected %d spins for a %dx%d lattice, got %d", n*n, n, n, len(spins))
	}
	for k, s := range spins {
		if s != Up && s != Down {
			return nil, errors.Errorf("ising: spin %d is %d, want +1 or -1", k, s)
		}
	}
	return &Lattice{n: n, spins: slices.Clone(spins)}, nil
}

func alloc(n int) *Lattice {
	if n <= 0 {
		panic(fmt.Sprintf("ising: lattice size must be positive, got %d", n))
	}
	return &Lattice{n: n, spins: make([]int8, n*n)}
}

func mustSpin(s int8) {
	if s != Up && s != Down {
		panic(fmt.Sprintf("ising: invalid spin %d", s))
	}
}

// PeriodicIndex maps any integer offset onto [0, n), wrapping negative values
// from the far edge.
func PeriodicIndex(i, n int) int {
	return (i%n + n) % n
}

// Size returns N.
func (l *Lattice) Size() int { return l.n }

// Len returns the number of sites, N*N.
func (l *Lattice) Len() int { return len(l.spins) }

// Index returns the buffer offset of (i, j) after periodic wrapping.
func (l *Lattice) Index(i, j int) int {
	return PeriodicIndex(i, l.n)*l.n + PeriodicIndex(j, l.n)
}

// At returns the spin at row i, column j. Out-of-range coordinates wrap.
func (l *Lattice) At(i, j int) int8 { return l.spins[l.Index(i, j)] }

// Set assigns a spin. It panics on values other than +1/-1.
func (l *Lattice) Set(i, j int, s int8) {
	mustSpin(s)
	l.spins[l.Index(i, j)] = s
}

// Flip negates the spin at (i, j).
func (l *Lattice) Flip(i, j int) {
	k := l.Index(i, j)
	l.spins[k] = -l.spins[k]
}

// NeighborSum adds the four periodic nearest neighbours of (i, j).
func (l *Lattice) NeighborSum(i, j int) int {
	return int(l.At(i-1, j)) + int(l.At(i+1, j)) + int(l.At(i, j-1)) + int(l.At(i, j+1))
}

// Invert flips every spin.
func (l *Lattice) Invert() {
	for k := range l.spins {
		l.spins[k] = -l.spins[k]
	}
}

// Spins returns a copy of the row-major spin values.
func (l *Lattice) Spins() []int8 { return slices.Clone(l.spins) }

// Clone returns an independent copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{n: l.n, spins: slices.Clone(l.spins)}
}
