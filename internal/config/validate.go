package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalid wraps every configuration rejected by Validate.
var ErrInvalid = errors.New("invalid configuration")

var (
	startModes = []string{StartRandom, StartUp, StartDown}
	formats    = []string{FormatCSV, FormatJSON, FormatXLSX, FormatSQLite, FormatPNG}
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks that the configuration describes a runnable experiment.
// Temperatures may be zero (the zero-temperature limit) but not negative.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return invalid("size must be positive, got %d", c.Size)
	}
	if c.Sweeps <= 0 {
		return invalid("sweeps must be positive, got %d", c.Sweeps)
	}
	if !finite(c.Coupling) {
		return invalid("coupling must be finite, got %g", c.Coupling)
	}
	if len(c.Fields) == 0 {
		return invalid("field list is empty")
	}
	for _, h := range c.Fields {
		if !finite(h) {
			return invalid("field values must be finite, got %g", h)
		}
	}

	if len(c.Temperatures.Values) == 0 {
		g := c.Temperatures
		if g.Count <= 0 {
			return invalid("temperature count must be positive, got %d", g.Count)
		}
		if g.Count > 1 && g.Max < g.Min {
			return invalid("temperature max %g is below min %g", g.Max, g.Min)
		}
	}
	temps := c.Temperatures.Resolve()
	if len(temps) == 0 {
		return invalid("temperature grid is empty")
	}
	for i, t := range temps {
		if !finite(t) || t < 0 {
			return invalid("temperatures must be finite and non-negative, got %g", t)
		}
		if i > 0 && t <= temps[i-1] {
			return invalid("temperatures must be strictly ascending, got %g after %g", t, temps[i-1])
		}
	}

	if c.Workers < 0 {
		return invalid("workers must not be negative, got %d", c.Workers)
	}
	if !slices.Contains(startModes, c.Start) {
		return invalid("unknown start mode %q (want one of %v)", c.Start, startModes)
	}
	for _, f := range c.Formats {
		if !slices.Contains(formats, f) {
			return invalid("unknown output format %q (want any of %v)", f, formats)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
