/*
PURPOSE:
  Defines the root Cobra command for the Ising Runner CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Logger must be configured before any subcommand logs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/ising-runner/main.go
  - Calls: Child commands (run, grid, config)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/ising-runner/main.go
*/

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/ising-runner/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile   string
	logFormat string
	verbose   bool

	rootCmd = &cobra.Command{
		Use:   "ising-runner",
		Short: "Metropolis Monte Carlo simulation of the 2D Ising model",
		Long: `Simulates the 2D Ising model on a periodic N x N lattice and reports average |magnetization|
and energy per spin across a grid of temperatures, for each external field value.
Use 'run --help' for simulation options.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return output.Configure(os.Stdout, logFormat, verbose)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ising.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every completed (H, T) pair")
}
