/*
PURPOSE:
  Experiment driver. Loops field values -> temperatures and runs the sweep
  driver once per (H, T) pair on a freshly initialised lattice.

REQUIREMENTS:
  User-specified:
  - Per field, one averaged point per temperature, in grid order.
  - Fixed sweep count per pair, no equilibration detection.

  Implementation-discovered:
  - Pairs are independent, so the temperatures of one field run on a worker pool.
  - Pair k (field-major numbering) owns RNG stream k of the run seed, so the
    output does not depend on the worker count or on scheduling.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go, tests
  - Uses: internal/ising, internal/config

ERROR HANDLING:
  - Invalid configuration is rejected before any pair starts.
  - The first failing pair cancels the remaining pairs of its field.
  - Context cancellation is checked before each pair starts.

IMPLEMENTATION RULES:
  - Never share a Lattice or an RNG between goroutines.
  - emit is called from the calling goroutine only, in field order.

USAGE:
  series, err := engine.Experiment(ctx, cfg, nil)
*/

package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/daryltucker/ising-runner/internal/config"
	"github.com/daryltucker/ising-runner/internal/ising"
	"github.com/daryltucker/ising-runner/internal/model"
	"github.com/daryltucker/ising-runner/internal/output"
)

// Experiment runs every (field, temperature) pair of cfg. Each completed
// field's series is passed to emit (when non-nil) before the next field starts.
// On error the series completed so far are returned with it.
func Experiment(ctx context.Context, cfg *config.Config, emit func(model.Series) error) ([]model.Series, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	temps := cfg.Temperatures.Resolve()
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	all := make([]model.Series, 0, len(cfg.Fields))
	for fi, h := range cfg.Fields {
		points := make([]model.Point, len(temps))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for ti, t := range temps {
			pair := fi*len(temps) + ti
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				p, err := runPair(cfg, h, t, uint64(pair))
				if err != nil {
					return fmt.Errorf("pair H=%g T=%g: %w", h, t, err)
				}
				points[ti] = p
				output.Logger.Debug("Pair complete",
					"field", h,
					"temperature", t,
					"abs_m", p.AbsMagnetization,
					"e", p.EnergyPerSpin,
				)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return all, err
		}

		s := model.Series{Field: h, Points: points}
		all = append(all, s)
		output.Logger.Info("Field complete", "field", h, "temperatures", len(points))
		if emit != nil {
			if err := emit(s); err != nil {
				return all, err
			}
		}
	}
	return all, nil
}

// runPair owns its lattice and its RNG stream for the whole pair.
func runPair(cfg *config.Config, h, t float64, stream uint64) (model.Point, error) {
	rng := ising.NewRNG(cfg.Seed, stream)
	l := newLattice(cfg.Size, cfg.Start, rng)
	d := ising.Driver{
		Model:  ising.Model{J: cfg.Coupling, H: h},
		Sweeps: cfg.Sweeps,
		Trace:  cfg.Trace,
	}
	return d.Run(l, t, rng)
}

func newLattice(n int, start string, src ising.Source) *ising.Lattice {
	switch start {
	case config.StartUp:
		return ising.NewUniform(n, ising.Up)
	case config.StartDown:
		return ising.NewUniform(n, ising.Down)
	default:
		return ising.NewLattice(n, src)
	}
}
