/*
PURPOSE:
  High-level runner that orchestrates a full simulation run.
  Resolves the seed, opens the configured writers, runs the experiment and
  hands every completed field series to the writers.

REQUIREMENTS:
  User-specified:
  - Run the full field x temperature grid.
  - Save results to CSV/JSON (and optional XLSX, SQLite, PNG figures).

  Implementation-discovered:
  - Needs to report progress to CLI.
  - A seed of 0 is replaced by a clock-derived one that is logged, so any run
    can be reproduced.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine/experiment.go, internal/output, internal/report

ERROR HANDLING:
  - Invalid configuration aborts before any file is created.
  - A failing writer is logged and the remaining writers still receive data (resilience).

IMPLEMENTATION RULES:
  - Writers only consume series; nothing flows back into the simulation.

USAGE:
  engine.Run(ctx, cfg, os.Stdout)

RELATED FILES:
  - internal/engine/experiment.go
*/

package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/daryltucker/ising-runner/internal/config"
	"github.com/daryltucker/ising-runner/internal/model"
	"github.com/daryltucker/ising-runner/internal/output"
	"github.com/daryltucker/ising-runner/internal/report"
)

// Output file names inside the output directory.
const (
	CSVFile    = "results.csv"
	JSONFile   = "results.jsonl"
	XLSXFile   = "results.xlsx"
	SQLiteFile = "results.db"
)

type seriesWriter interface {
	WriteSeries(model.Series) error
	Close() error
}

// runFinisher is implemented by writers that record the final run metadata.
type runFinisher interface {
	Finish(model.Run) error
}

type namedWriter struct {
	name string
	seriesWriter
}

// Run executes the full experiment described by cfg. The terminal summary, if
// enabled, is written to summary.
func Run(ctx context.Context, cfg *config.Config, summary io.Writer) (model.Run, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		output.Logger.Info("No seed configured, derived one from the clock", "seed", cfg.Seed)
	}
	if err := cfg.Validate(); err != nil {
		return model.Run{}, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	run := model.Run{
		ID:           uuid.NewString(),
		Seed:         cfg.Seed,
		Size:         cfg.Size,
		Coupling:     cfg.Coupling,
		Sweeps:       cfg.Sweeps,
		Start:        cfg.Start,
		Workers:      workers,
		Fields:       cfg.Fields,
		Temperatures: cfg.Temperatures.Resolve(),
		StartedAt:    time.Now(),
	}

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return run, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	writers, err := openWriters(cfg, run)
	if err != nil {
		return run, err
	}
	defer func() {
		for _, w := range writers {
			if err := w.Close(); err != nil {
				output.Logger.Error("Failed to close writer", "writer", w.name, "error", err)
			}
		}
	}()

	output.Logger.Info("Starting run",
		"run_id", run.ID,
		"size", run.Size,
		"fields", len(run.Fields),
		"temperatures", len(run.Temperatures),
		"sweeps", run.Sweeps,
		"workers", run.Workers,
		"seed", run.Seed,
	)

	series, err := Experiment(ctx, cfg, func(s model.Series) error {
		for _, w := range writers {
			if err := w.WriteSeries(s); err != nil {
				output.Logger.Error("Failed to write series", "writer", w.name, "field", s.Field, "error", err)
			}
		}
		return nil
	})
	run.Duration = time.Since(run.StartedAt)

	for _, w := range writers {
		if f, ok := w.seriesWriter.(runFinisher); ok {
			if err := f.Finish(run); err != nil {
				output.Logger.Error("Failed to record run metadata", "writer", w.name, "error", err)
			}
		}
	}
	if err != nil {
		return run, fmt.Errorf("run %s aborted: %w", run.ID, err)
	}

	output.Logger.Info("Run complete", "run_id", run.ID, "duration", run.Duration.Round(time.Millisecond), "output_dir", cfg.OutputDir)

	if cfg.Summary && summary != nil {
		if err := report.WriteSummary(summary, run, series); err != nil {
			output.Logger.Error("Failed to write summary", "error", err)
		}
	}
	return run, nil
}

// openWriters creates one writer per configured format. Writers opened before
// a failure are closed again.
func openWriters(cfg *config.Config, run model.Run) ([]namedWriter, error) {
	var writers []namedWriter
	fail := func(format, path string, err error) ([]namedWriter, error) {
		for _, w := range writers {
			w.Close()
		}
		return nil, fmt.Errorf("failed to init %s writer at %s: %w", format, path, err)
	}

	for _, format := range cfg.Formats {
		var (
			w    seriesWriter
			path string
			err  error
		)
		switch format {
		case config.FormatCSV:
			path = filepath.Join(cfg.OutputDir, CSVFile)
			w, err = output.NewCSVWriter(path, run.ID)
		case config.FormatJSON:
			path = filepath.Join(cfg.OutputDir, JSONFile)
			w, err = output.NewJSONWriter(path, run.ID)
		case config.FormatXLSX:
			path = filepath.Join(cfg.OutputDir, XLSXFile)
			w, err = output.NewXLSXWriter(path, run)
		case config.FormatSQLite:
			path = filepath.Join(cfg.OutputDir, SQLiteFile)
			w, err = output.NewSQLiteWriter(path, run)
		case config.FormatPNG:
			path = cfg.OutputDir
			w = report.NewPlotter(cfg.OutputDir)
		default:
			return fail(format, cfg.OutputDir, fmt.Errorf("unknown format"))
		}
		if err != nil {
			return fail(format, path, err)
		}
		output.Logger.Debug("Opened writer", "format", format, "path", path)
		writers = append(writers, namedWriter{name: format, seriesWriter: w})
	}
	return writers, nil
}
