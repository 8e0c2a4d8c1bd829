package ising

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestDriverRejectsNonPositiveSweeps(t *testing.T) {
	for _, n := range []int{0, -3} {
		d := Driver{Model: Model{J: 1}, Sweeps: n}
		_, err := d.Run(NewUniform(4, Up), 1, NewRNG(1, 0))
		if !errors.Is(err, ErrNoSweeps) {
			t.Fatalf("Sweeps=%d: err = %v, want ErrNoSweeps", n, err)
		}
	}
}

func TestDriverRejectsInvalidTemperature(t *testing.T) {
	d := Driver{Model: Model{J: 1}, Sweeps: 1}
	for _, temp := range []float64{-0.5, math.NaN()} {
		if _, err := d.Run(NewUniform(4, Up), temp, NewRNG(1, 0)); !errors.Is(err, ErrTemperature) {
			t.Fatalf("T=%g: err = %v, want ErrTemperature", temp, err)
		}
	}
}

func TestDriverZeroTemperatureStaysOrdered(t *testing.T) {
	l := NewUniform(6, Up)
	p, err := Driver{Model: Model{J: 1}, Sweeps: 25}.Run(l, 0, noDraws{t})
	if err != nil {
		t.Fatal(err)
	}
	if p.AbsMagnetization != 1 || p.EnergyPerSpin != -2 || p.AcceptanceRate != 0 {
		t.Fatalf("got %+v, want |m|=1 E/N=-2 acceptance=0", p)
	}
	if Magnetization(l) != 1 {
		t.Fatal("lattice left the ground state")
	}
}

func TestDriverTraceMatchesAverages(t *testing.T) {
	rng := NewRNG(5, 0)
	l := NewLattice(8, rng)
	p, err := Driver{Model: Model{J: 1}, Sweeps: 40, Trace: true}.Run(l, 2.0, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Trace) != 40 {
		t.Fatalf("trace has %d samples, want 40", len(p.Trace))
	}

	var sumM, sumE float64
	for k, s := range p.Trace {
		if s.Sweep != k+1 {
			t.Fatalf("sample %d numbered %d", k, s.Sweep)
		}
		sumM += math.Abs(s.Magnetization)
		sumE += s.EnergyPerSpin
	}
	if math.Abs(sumM/40-p.AbsMagnetization) > eps || math.Abs(sumE/40-p.EnergyPerSpin) > eps {
		t.Fatalf("trace means (%g, %g) differ from point (%g, %g)", sumM/40, sumE/40, p.AbsMagnetization, p.EnergyPerSpin)
	}

	last := p.Trace[len(p.Trace)-1]
	if last.Magnetization != Magnetization(l) {
		t.Fatal("last sample must describe the final lattice")
	}
}

func TestDriverWithoutTraceKeepsNoSamples(t *testing.T) {
	rng := NewRNG(5, 0)
	p, err := Driver{Model: Model{J: 1}, Sweeps: 5}.Run(NewLattice(4, rng), 2.0, rng)
	if err != nil {
		t.Fatal(err)
	}
	if p.Trace != nil {
		t.Fatalf("trace has %d samples, want none", len(p.Trace))
	}
}

// At H=0 flipping every spin of the initial lattice changes no reported
// observable.
func TestDriverSpinInversionSymmetry(t *testing.T) {
	for _, temp := range []float64{0.5, 2.27, 5} {
		l := NewLattice(8, NewRNG(77, 0))
		inv := l.Clone()
		inv.Invert()

		d := Driver{Model: Model{J: 1}, Sweeps: 60}
		a, err := d.Run(l, temp, NewRNG(78, 1))
		if err != nil {
			t.Fatal(err)
		}
		b, err := d.Run(inv, temp, NewRNG(78, 1))
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(a.AbsMagnetization-b.AbsMagnetization) > eps ||
			math.Abs(a.EnergyPerSpin-b.EnergyPerSpin) > eps ||
			a.AcceptanceRate != b.AcceptanceRate {
			t.Fatalf("T=%g: %+v vs inverted %+v", temp, a, b)
		}

		inv.Invert()
		if !slices.Equal(l.Spins(), inv.Spins()) {
			t.Fatalf("T=%g: final lattices are not spin-inverted copies", temp)
		}
	}
}

func TestDriverLowTemperatureOrders(t *testing.T) {
	run := func() float64 {
		rng := NewRNG(42, 0)
		l := NewLattice(4, rng)
		p, err := Driver{Model: Model{J: 1}, Sweeps: 50}.Run(l, 0.1, rng)
		if err != nil {
			t.Fatal(err)
		}
		return p.AbsMagnetization
	}
	m := run()
	if m <= 0.9 {
		t.Fatalf("|m| = %g at T=0.1, want > 0.9", m)
	}
	if again := run(); again != m {
		t.Fatalf("repeated run gave |m| = %g, first run %g", again, m)
	}
}

func TestDriverHighTemperatureDisorders(t *testing.T) {
	rng := NewRNG(8, 0)
	l := NewLattice(10, rng)
	p, err := Driver{Model: Model{J: 1}, Sweeps: 200}.Run(l, 8, rng)
	if err != nil {
		t.Fatal(err)
	}
	if p.AbsMagnetization >= 0.3 {
		t.Fatalf("|m| = %g at T=8, want < 0.3", p.AbsMagnetization)
	}
}

// From an ordered start at H=0, |m| falls and E/N rises with temperature.
func TestDriverTemperatureDependence(t *testing.T) {
	temps := []float64{0.5, 2.0, 3.5, 8.0}
	mags := make([]float64, len(temps))
	energies := make([]float64, len(temps))
	for i, temp := range temps {
		p, err := Driver{Model: Model{J: 1}, Sweeps: 300}.Run(NewUniform(8, Up), temp, NewRNG(13, uint64(i)))
		if err != nil {
			t.Fatal(err)
		}
		mags[i], energies[i] = p.AbsMagnetization, p.EnergyPerSpin
	}

	for i := 1; i < len(temps); i++ {
		if mags[i] >= mags[i-1] {
			t.Fatalf("|m| did not decrease from T=%g (%g) to T=%g (%g)", temps[i-1], mags[i-1], temps[i], mags[i])
		}
		if energies[i] <= energies[i-1] {
			t.Fatalf("E/N did not increase from T=%g (%g) to T=%g (%g)", temps[i-1], energies[i-1], temps[i], energies[i])
		}
	}
	if mags[0] < 0.95 || energies[0] > -1.9 {
		t.Fatalf("T=0.5: |m|=%g E/N=%g, want near 1 and -2", mags[0], energies[0])
	}
	if mags[3] > 0.3 || energies[3] < -0.5 {
		t.Fatalf("T=8: |m|=%g E/N=%g, want near 0", mags[3], energies[3])
	}
}
