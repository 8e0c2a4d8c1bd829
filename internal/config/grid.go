package config

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// TemperatureGrid describes the ascending temperatures visited for every field
// value. Values, when present, wins over the Min/Max/Count linspace.
type TemperatureGrid struct {
	Min    float64   `yaml:"min"`
	Max    float64   `yaml:"max"`
	Count  int       `yaml:"count"`
	Values []float64 `yaml:"values,omitempty"`
}

// Resolve returns the grid as an explicit slice. Count points are spaced
// evenly from Min to Max inclusive; a single point sits at Min.
func (g TemperatureGrid) Resolve() []float64 {
	if len(g.Values) > 0 {
		return slices.Clone(g.Values)
	}
	switch {
	case g.Count <= 0:
		return nil
	case g.Count == 1:
		return []float64{g.Min}
	}
	return floats.Span(make([]float64, g.Count), g.Min, g.Max)
}
