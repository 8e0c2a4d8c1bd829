/*
PURPOSE:
  Writes averaged observables to a CSV file, one row per (field, temperature).
  Ensures data integrity by flushing after every series.

REQUIREMENTS:
  User-specified:
  - Output to CSV.

  Implementation-discovered:
  - A run always starts a fresh file (overwrite).
  - Rows carry the run id so files from several runs can be concatenated.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Series

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Mutex guards writes; the engine emits series from one goroutine today.

USAGE:
  w, err := output.NewCSVWriter("results.csv", run.ID)
  w.WriteSeries(series)
  w.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update WriteSeries() mapping when Point changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/ising-runner/internal/model"
)

// CSVHeader is the first row of every CSV result file.
var CSVHeader = []string{
	"run_id", "field", "temperature",
	"abs_magnetization", "energy_per_spin", "acceptance_rate",
}

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	runID  string
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path, runID string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
		runID:  runID,
	}, nil
}

// WriteSeries writes one row per point of s.
// It is thread-safe.
func (cw *CSVWriter) WriteSeries(s model.Series) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	field := formatFloat(s.Field)
	for _, p := range s.Points {
		record := []string{
			cw.runID,
			field,
			formatFloat(p.Temperature),
			formatFloat(p.AbsMagnetization),
			formatFloat(p.EnergyPerSpin),
			formatFloat(p.AcceptanceRate),
		}
		if err := cw.writer.Write(record); err != nil {
			return err
		}
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

// formatFloat keeps full precision so values round-trip through the file.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
