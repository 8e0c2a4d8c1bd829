package cli

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/ising-runner/internal/assets"
	"github.com/daryltucker/ising-runner/internal/output"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ising-runner configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the sample configuration (default ./ising.yaml)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := assets.SampleConfigName
		if len(args) == 1 {
			target = args[0]
		}

		if _, err := os.Stat(target); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}

		content, err := fs.ReadFile(assets.Files, assets.SampleConfigName)
		if err != nil {
			return fmt.Errorf("failed to read embedded config: %w", err)
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		output.Logger.Info("Wrote sample configuration", "path", target)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
