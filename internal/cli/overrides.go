package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/daryltucker/ising-runner/internal/config"
)

var (
	fieldsOverride   []float64
	tempsOverride    []float64
	tMinOverride     float64
	tMaxOverride     float64
	tCountOverride   int
	sizeOverride     int
	couplingOverride float64
	sweepsOverride   int
	seedOverride     int64
	workersOverride  int
	startOverride    string
	traceOverride    bool
	outputOverride   string
	formatsOverride  []string
	noSummary        bool
)

// bindGridFlags registers the flags shared by run and grid.
func bindGridFlags(f *pflag.FlagSet) {
	f.Float64SliceVar(&fieldsOverride, "fields", nil, "comma-separated external field values H")
	f.Float64SliceVar(&tempsOverride, "temperatures", nil, "comma-separated ascending temperatures (overrides --t-min/--t-max/--t-count)")
	f.Float64Var(&tMinOverride, "t-min", 0, "lowest temperature of the linspace grid")
	f.Float64Var(&tMaxOverride, "t-max", 0, "highest temperature of the linspace grid")
	f.IntVar(&tCountOverride, "t-count", 0, "number of temperatures in the linspace grid")
}

// loadConfig loads the config file and applies the flags the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("fields") {
		cfg.Fields = fieldsOverride
	}
	if f.Changed("t-min") {
		cfg.Temperatures.Min = tMinOverride
		cfg.Temperatures.Values = nil
	}
	if f.Changed("t-max") {
		cfg.Temperatures.Max = tMaxOverride
		cfg.Temperatures.Values = nil
	}
	if f.Changed("t-count") {
		cfg.Temperatures.Count = tCountOverride
		cfg.Temperatures.Values = nil
	}
	if f.Changed("temperatures") {
		cfg.Temperatures.Values = tempsOverride
	}

	// run-only flags; Lookup is nil on commands that do not define them
	changed := func(name string) bool {
		return f.Lookup(name) != nil && f.Changed(name)
	}
	if changed("size") {
		cfg.Size = sizeOverride
	}
	if changed("coupling") {
		cfg.Coupling = couplingOverride
	}
	if changed("sweeps") {
		cfg.Sweeps = sweepsOverride
	}
	if changed("seed") {
		cfg.Seed = seedOverride
	}
	if changed("workers") {
		cfg.Workers = workersOverride
	}
	if changed("start") {
		cfg.Start = startOverride
	}
	if changed("trace") {
		cfg.Trace = traceOverride
	}
	if changed("output-dir") {
		cfg.OutputDir = outputOverride
	}
	if changed("formats") {
		cfg.Formats = formatsOverride
	}
	if changed("no-summary") {
		cfg.Summary = !noSummary
	}
	return cfg, nil
}
