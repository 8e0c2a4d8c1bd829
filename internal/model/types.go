/*
PURPOSE:
  Defines the core data structures used throughout Ising Runner.
  These models represent averaged observables and run metadata.

REQUIREMENTS:
  User-specified:
  - Record average |magnetization| and energy per spin for each temperature.
  - One series per external field value, aligned to the temperature grid.

  Implementation-discovered:
  - Need JSON tags for the JSON Lines writer.
  - Acceptance rate and per-sweep traces are useful when diagnosing a run.

ARCHITECTURE INTEGRATION:
  - Produced by: internal/ising (Point), internal/engine (Series, Run)
  - Consumed by: internal/output, internal/report

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.

USAGE:
  s := model.Series{Field: 0, Points: points}

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go

MAINTENANCE:
  - Update writers when adding fields to Point.
*/

package model

import (
	"time"
)

// Sample is the observable pair taken after one completed sweep.
type Sample struct {
	Sweep         int     `json:"sweep"`
	Magnetization float64 `json:"magnetization"`
	EnergyPerSpin float64 `json:"energy_per_spin"`
}

// Point is the averaged outcome of one (temperature, field) pair.
type Point struct {
	Temperature      float64 `json:"temperature"`
	AbsMagnetization float64 `json:"abs_magnetization"`
	EnergyPerSpin    float64 `json:"energy_per_spin"`
	AcceptanceRate   float64 `json:"acceptance_rate"`

	Trace []Sample `json:"trace,omitempty"` // only when tracing is enabled
}

// Series is the temperature sweep for one field value, ordered by temperature.
type Series struct {
	Field  float64 `json:"field"`
	Points []Point `json:"points"`
}

// Temperatures returns the temperature grid the series is aligned to.
func (s Series) Temperatures() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Temperature
	}
	return out
}

// Magnetizations returns average |magnetization| by temperature.
func (s Series) Magnetizations() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.AbsMagnetization
	}
	return out
}

// Energies returns average energy per spin by temperature.
func (s Series) Energies() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.EnergyPerSpin
	}
	return out
}

// Run describes one invocation of the experiment.
type Run struct {
	ID           string        `json:"id"`
	Seed         int64         `json:"seed"`
	Size         int           `json:"size"`
	Coupling     float64       `json:"coupling"`
	Sweeps       int           `json:"sweeps"`
	Start        string        `json:"start"`
	Workers      int           `json:"workers"`
	Fields       []float64     `json:"fields"`
	Temperatures []float64     `json:"temperatures"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
}
