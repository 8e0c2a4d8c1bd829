package engine

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/daryltucker/ising-runner/internal/config"
	"github.com/daryltucker/ising-runner/internal/ising"
	"github.com/daryltucker/ising-runner/internal/model"
	"github.com/daryltucker/ising-runner/internal/output"
)

func TestMain(m *testing.M) {
	output.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Size = 6
	cfg.Fields = []float64{0, 1}
	cfg.Temperatures = config.TemperatureGrid{Values: []float64{1, 2, 3}}
	cfg.Sweeps = 20
	cfg.Seed = 5
	cfg.Workers = 2
	return cfg
}

func TestExperimentShapeAndOrder(t *testing.T) {
	cfg := smallConfig()
	var emitted []float64
	series, err := Experiment(context.Background(), cfg, func(s model.Series) error {
		emitted = append(emitted, s.Field)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 || !reflect.DeepEqual(emitted, []float64{0, 1}) {
		t.Fatalf("got %d series, emitted %v", len(series), emitted)
	}
	for _, s := range series {
		if !reflect.DeepEqual(s.Temperatures(), []float64{1, 2, 3}) {
			t.Errorf("H=%g temperatures %v", s.Field, s.Temperatures())
		}
		for _, p := range s.Points {
			if p.AbsMagnetization < 0 || p.AbsMagnetization > 1 {
				t.Errorf("|m| out of range: %+v", p)
			}
			if p.EnergyPerSpin < -2-s.Field || p.EnergyPerSpin > 2+s.Field {
				t.Errorf("E/N out of range: %+v", p)
			}
		}
	}
}

func TestExperimentDeterministicAcrossWorkers(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 1
	serial, err := Experiment(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Workers = 4
	parallel, err := Experiment(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatal("results depend on the worker count")
	}

	cfg.Seed = 6
	other, err := Experiment(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(serial, other) {
		t.Fatal("different seeds produced identical results")
	}
}

func TestExperimentPairUsesItsStream(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 4
	cfg.Fields = []float64{0}
	cfg.Temperatures = config.TemperatureGrid{Values: []float64{0.1}}
	cfg.Sweeps = 50
	cfg.Seed = 42

	series, err := Experiment(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := series[0].Points[0]

	rng := ising.NewRNG(42, 0)
	d := ising.Driver{Model: ising.Model{J: 1}, Sweeps: 50}
	want, err := d.Run(ising.NewLattice(4, rng), 0.1, rng)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pair 0 = %+v, want %+v", got, want)
	}
	if got.AbsMagnetization <= 0.9 {
		t.Errorf("low temperature |m| = %g, want > 0.9", got.AbsMagnetization)
	}
}

func TestExperimentHighTemperatureDisorders(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 10
	cfg.Fields = []float64{0, 3}
	cfg.Temperatures = config.TemperatureGrid{Values: []float64{8}}
	cfg.Sweeps = 200
	cfg.Seed = 8

	series, err := Experiment(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	free, biased := series[0].Points[0], series[1].Points[0]
	if free.AbsMagnetization >= 0.3 {
		t.Errorf("H=0 T=8 |m| = %g, want < 0.3", free.AbsMagnetization)
	}
	if biased.AbsMagnetization <= free.AbsMagnetization {
		t.Errorf("field did not polarise: H=3 |m| = %g, H=0 |m| = %g", biased.AbsMagnetization, free.AbsMagnetization)
	}
}

func TestExperimentColdStart(t *testing.T) {
	cfg := smallConfig()
	cfg.Start = config.StartUp
	cfg.Fields = []float64{0}
	cfg.Temperatures = config.TemperatureGrid{Values: []float64{0}}

	series, err := Experiment(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := series[0].Points[0]
	if p.AbsMagnetization != 1 || p.EnergyPerSpin != -2 || p.AcceptanceRate != 0 {
		t.Fatalf("ordered lattice at T=0 changed: %+v", p)
	}
}

func TestExperimentRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 0
	called := false
	_, err := Experiment(context.Background(), cfg, func(model.Series) error {
		called = true
		return nil
	})
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if called {
		t.Fatal("emit called for an invalid config")
	}
}

func TestExperimentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	series, err := Experiment(ctx, smallConfig(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(series) != 0 {
		t.Fatalf("got %d series after cancellation", len(series))
	}
}

func TestExperimentEmitErrorStops(t *testing.T) {
	boom := errors.New("disk full")
	calls := 0
	series, err := Experiment(context.Background(), smallConfig(), func(model.Series) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 || len(series) != 1 {
		t.Fatalf("err=%v calls=%d series=%d", err, calls, len(series))
	}
}

func TestRunWritesOutputs(t *testing.T) {
	cfg := smallConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Formats = []string{config.FormatCSV, config.FormatJSON, config.FormatXLSX, config.FormatSQLite, config.FormatPNG}

	var summary bytes.Buffer
	run, err := Run(context.Background(), cfg, &summary)
	if err != nil {
		t.Fatal(err)
	}
	if run.ID == "" || run.Seed != 5 || run.Workers != 2 || len(run.Temperatures) != 3 {
		t.Fatalf("unexpected run %+v", run)
	}

	f, err := os.Open(filepath.Join(cfg.OutputDir, CSVFile))
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+6 || rows[1][0] != run.ID {
		t.Fatalf("csv rows = %v", rows)
	}

	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, JSONFile))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), "\n"); n != 6 {
		t.Fatalf("json lines = %d, want 6", n)
	}

	x, err := excelize.OpenFile(filepath.Join(cfg.OutputDir, XLSXFile))
	if err != nil {
		t.Fatal(err)
	}
	sheets := x.GetSheetList()
	x.Close()
	if !reflect.DeepEqual(sheets, []string{"Summary", "H=0", "H=1"}) {
		t.Fatalf("sheets = %v", sheets)
	}

	db, err := sql.Open("sqlite", filepath.Join(cfg.OutputDir, SQLiteFile))
	if err != nil {
		t.Fatal(err)
	}
	var points int
	err = db.QueryRow(`SELECT COUNT(*) FROM points WHERE run_id = ?`, run.ID).Scan(&points)
	db.Close()
	if err != nil || points != 6 {
		t.Fatalf("sqlite points = %d (%v), want 6", points, err)
	}

	for _, name := range []string{"magnetization_H0.png", "energy_H0.png", "magnetization_H1.png", "energy_H1.png"} {
		if st, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil || st.Size() == 0 {
			t.Errorf("missing figure %s: %v", name, err)
		}
	}

	if !strings.Contains(summary.String(), run.ID) {
		t.Errorf("summary does not mention run %s", run.ID)
	}
}

func TestRunDerivesSeed(t *testing.T) {
	cfg := smallConfig()
	cfg.Seed = 0
	cfg.OutputDir = t.TempDir()
	cfg.Formats = []string{config.FormatCSV}
	cfg.Summary = false

	run, err := Run(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if run.Seed == 0 || run.Seed != cfg.Seed {
		t.Fatalf("seed not derived: run=%d cfg=%d", run.Seed, cfg.Seed)
	}
}

func TestRunInvalidConfigCreatesNothing(t *testing.T) {
	cfg := smallConfig()
	cfg.Sweeps = 0
	cfg.OutputDir = filepath.Join(t.TempDir(), "never")

	if _, err := Run(context.Background(), cfg, nil); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Fatal("output directory created for an invalid config")
	}
}

func TestNewLatticeStartModes(t *testing.T) {
	rng := ising.NewRNG(1, 0)
	if m := ising.Magnetization(newLattice(5, config.StartUp, rng)); m != 1 {
		t.Errorf("up start m = %g", m)
	}
	if m := ising.Magnetization(newLattice(5, config.StartDown, rng)); m != -1 {
		t.Errorf("down start m = %g", m)
	}
	if m := ising.Magnetization(newLattice(5, config.StartRandom, rng)); math.Abs(m) == 1 {
		t.Errorf("random start is uniform: m = %g", m)
	}
}
