/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full field x temperature simulation.

REQUIREMENTS:
  User-specified:
  - Run the simulation.
  - specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.
  - Ctrl-C should stop the run between pairs, keeping finished fields on disk.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails, validation fails or the run aborts.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  ising-runner run --size 32 --fields 0,0.5 -o ./out

RELATED FILES:
  - internal/cli/root.go
  - internal/cli/overrides.go
*/

package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/daryltucker/ising-runner/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation over the configured field and temperature grid",
	Long: `Runs a Metropolis Monte Carlo simulation for every (field, temperature) pair.
Each pair starts from a freshly initialised lattice and its own random stream,
performs a fixed number of sweeps, and reports the average |magnetization| and
the average energy per spin over all sweeps.

Results are written to the output directory in the configured formats
(csv, json, xlsx, sqlite, png). With the same seed, a run is reproducible
regardless of the number of workers.`,
	Example: `  # Run with defaults (uses ising.yaml if present)
  ising-runner run

  # Small, reproducible run
  ising-runner run --size 16 --sweeps 500 --seed 42

  # Zero field only, explicit temperatures, spreadsheet output
  ising-runner run --fields 0 --temperatures 1.5,2.0,2.27,2.5,3.0 --formats xlsx,png

  # Cold start with per-sweep traces in the JSON output
  ising-runner run --start up --trace`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// 2. Execution
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, err = engine.Run(ctx, cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	bindGridFlags(f)
	f.IntVar(&sizeOverride, "size", 0, "lattice size N (N x N sites)")
	f.Float64Var(&couplingOverride, "coupling", 0, "interaction strength J")
	f.IntVar(&sweepsOverride, "sweeps", 0, "Metropolis sweeps per (H, T) pair")
	f.Int64Var(&seedOverride, "seed", 0, "random seed (0 derives one from the clock)")
	f.IntVar(&workersOverride, "workers", 0, "parallel (H, T) pairs (0 uses every CPU)")
	f.StringVar(&startOverride, "start", "", "initial lattice: random, up or down")
	f.BoolVar(&traceOverride, "trace", false, "keep every per-sweep sample in the JSON output")
	f.StringVarP(&outputOverride, "output-dir", "o", "", "output directory for results")
	f.StringSliceVar(&formatsOverride, "formats", nil, "comma-separated output formats (csv,json,xlsx,sqlite,png)")
	f.BoolVar(&noSummary, "no-summary", false, "do not print the terminal summary")
}
