/*
PURPOSE:
  Writes results to a JSON Lines file (NDJSON), one object per (field, temperature).
  Optimized for machine parsing (jq, pandas.read_json(lines=True)).

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines is better for streaming than a single large array (append-friendly).
  - Per-sweep traces, when enabled, only fit here.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Series

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("results.jsonl", run.ID)
  w.WriteSeries(series)
  w.Close()

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/ising-runner/internal/model"
)

// Record is one line of the JSON Lines output.
type Record struct {
	RunID string  `json:"run_id"`
	Field float64 `json:"field"`
	model.Point
}

// JSONWriter handles writing results to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	runID   string
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path, runID string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
		runID:   runID,
	}, nil
}

// WriteSeries writes one JSON line per point of s.
func (jw *JSONWriter) WriteSeries(s model.Series) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	for _, p := range s.Points {
		if err := jw.encoder.Encode(Record{RunID: jw.runID, Field: s.Field, Point: p}); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
