/*
PURPOSE:
  Defines the 'grid' subcommand.
  Prints the (H, T) pairs a run would simulate, with their RNG stream numbers.

REQUIREMENTS:
  - Useful validation step before a long run.

ARCHITECTURE INTEGRATION:
  - Uses: internal/config

ERROR HANDLING:
  - Returns the validation error if the resolved configuration is invalid.

USAGE:
  ising-runner grid --fields 0,1 --t-count 8
*/

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the (field, temperature) pairs of the configured run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		temps := cfg.Temperatures.Resolve()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PAIR\tSTREAM\tH\tT")
		for fi, h := range cfg.Fields {
			for ti, t := range temps {
				pair := fi*len(temps) + ti
				fmt.Fprintf(tw, "%d\t%d\t%g\t%.4f\n", pair+1, pair, h, t)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d pairs, %d sweeps each, %dx%d lattice\n",
			len(cfg.Fields)*len(temps), cfg.Sweeps, cfg.Size, cfg.Size)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
	bindGridFlags(gridCmd.Flags())
}
