package ising

import (
	"math"

	"github.com/pkg/errors"

	"github.com/daryltucker/ising-runner/internal/model"
)

var (
	// ErrNoSweeps is returned when a driver is asked to average zero sweeps.
	ErrNoSweeps = errors.New("ising: sweep count must be positive")
	// ErrTemperature is returned for negative or NaN temperatures.
	ErrTemperature = errors.New("ising: temperature must be a non-negative number")
)

// Driver runs a fixed number of Metropolis sweeps for one (T, H) pair and
// averages the observables sampled after each sweep.
type Driver struct {
	Model  Model
	Sweeps int

	// Trace keeps every per-sweep sample in the returned point.
	Trace bool
}

// Run mutates l in place. Every sweep's sample counts equally; there is no
// burn-in period.
func (d Driver) Run(l *Lattice, t float64, src Source) (model.Point, error) {
	if d.Sweeps <= 0 {
		return model.Point{}, errors.Wrapf(ErrNoSweeps, "got %d", d.Sweeps)
	}
	if math.IsNaN(t) || t < 0 {
		return model.Point{}, errors.Wrapf(ErrTemperature, "got %g", t)
	}

	up := NewMetropolis(d.Model, t, src)
	sites := float64(l.Len())

	p := model.Point{Temperature: t}
	if d.Trace {
		p.Trace = make([]model.Sample, 0, d.Sweeps)
	}

	var sumM, sumE float64
	accepted := 0
	for k := 0; k < d.Sweeps; k++ {
		accepted += up.Sweep(l)

		m := Magnetization(l)
		e := d.Model.TotalEnergy(l) / sites
		sumM += math.Abs(m)
		sumE += e
		if d.Trace {
			p.Trace = append(p.Trace, model.Sample{Sweep: k + 1, Magnetization: m, EnergyPerSpin: e})
		}
	}

	n := float64(d.Sweeps)
	p.AbsMagnetization = sumM / n
	p.EnergyPerSpin = sumE / n
	p.AcceptanceRate = float64(accepted) / (n * sites)
	return p, nil
}
