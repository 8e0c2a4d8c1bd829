/*
PURPOSE:
  Provides a structured logger for Ising Runner.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.

  Implementation-discovered:
  - Per-pair progress only at Debug; per-field progress at Info.
  - JSON handler for non-interactive runs.

ARCHITECTURE INTEGRATION:
  - Used everywhere.
  - Configured once by internal/cli before a command runs.

ERROR HANDLING:
  - Configure rejects unknown formats.

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")

RELATED FILES:
  - internal/cli/root.go
*/

package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// Configure replaces Logger with a text or json handler writing to w.
func Configure(w io.Writer, format string, verbose bool) error {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	switch format {
	case "", "text":
		SetLogger(slog.New(slog.NewTextHandler(w, opts)))
	case "json":
		SetLogger(slog.New(slog.NewJSONHandler(w, opts)))
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return nil
}
