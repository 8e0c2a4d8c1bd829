package output

import (
	"database/sql"
	"sync"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/daryltucker/ising-runner/internal/model"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		seed        INTEGER NOT NULL,
		size        INTEGER NOT NULL,
		coupling    REAL NOT NULL,
		sweeps      INTEGER NOT NULL,
		start       TEXT NOT NULL,
		workers     INTEGER NOT NULL,
		started_at  TEXT NOT NULL,
		duration_ms INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS points (
		run_id            TEXT NOT NULL REFERENCES runs(id),
		field             REAL NOT NULL,
		temperature       REAL NOT NULL,
		abs_magnetization REAL NOT NULL,
		energy_per_spin   REAL NOT NULL,
		acceptance_rate   REAL NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS points_run ON points(run_id, field, temperature)`,
}

// SQLiteWriter appends runs to a SQLite database. Unlike the file writers it
// never truncates: every run adds a row to runs and its points to points.
type SQLiteWriter struct {
	db    *sql.DB
	runID string
	mu    sync.Mutex
}

// NewSQLiteWriter opens (or creates) the database at path and registers run.
func NewSQLiteWriter(path string, run model.Run) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "create schema")
		}
	}

	_, err = db.Exec(
		`INSERT INTO runs (id, seed, size, coupling, sweeps, start, workers, started_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.Size, run.Coupling, run.Sweeps, run.Start, run.Workers,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "insert run %s", run.ID)
	}
	return &SQLiteWriter{db: db, runID: run.ID}, nil
}

// WriteSeries inserts every point of s in one transaction.
func (sw *SQLiteWriter) WriteSeries(s model.Series) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	tx, err := sw.db.Begin()
	if err != nil {
		return errors.WithStack(err)
	}
	stmt, err := tx.Prepare(`INSERT INTO points (run_id, field, temperature, abs_magnetization, energy_per_spin, acceptance_rate) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return errors.WithStack(err)
	}
	defer stmt.Close()

	for _, p := range s.Points {
		if _, err := stmt.Exec(sw.runID, s.Field, p.Temperature, p.AbsMagnetization, p.EnergyPerSpin, p.AcceptanceRate); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert point H=%g T=%g", s.Field, p.Temperature)
		}
	}
	return errors.WithStack(tx.Commit())
}

// Finish stores the run duration.
func (sw *SQLiteWriter) Finish(run model.Run) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	_, err := sw.db.Exec(`UPDATE runs SET duration_ms = ? WHERE id = ?`, run.Duration.Milliseconds(), sw.runID)
	return errors.WithStack(err)
}

// Close closes the database.
func (sw *SQLiteWriter) Close() error {
	return sw.db.Close()
}
