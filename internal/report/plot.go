/*
PURPOSE:
  Renders magnetization-vs-temperature and energy-vs-temperature figures,
  one pair of PNG files per field value.

REQUIREMENTS:
  User-specified:
  - One figure per observable and field value, temperature on the x axis.

  Implementation-discovered:
  - Figures are written as each field completes, same as the file writers.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (as one of the series writers)
  - Dependencies: gonum.org/v1/plot

ERROR HANDLING:
  - Returns error if a figure cannot be built or saved.

RELATED FILES:
  - internal/report/summary.go
*/

package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/daryltucker/ising-runner/internal/model"
)

var (
	figureWidth  = 6 * vg.Inch
	figureHeight = 4 * vg.Inch
)

// Plotter saves PNG figures into a directory.
type Plotter struct {
	dir string
}

// NewPlotter returns a Plotter writing into dir, which must exist.
func NewPlotter(dir string) *Plotter {
	return &Plotter{dir: dir}
}

// Paths returns the magnetization and energy figure paths for a field value.
func (pl *Plotter) Paths(field float64) (magnetization, energy string) {
	return filepath.Join(pl.dir, fmt.Sprintf("magnetization_H%g.png", field)),
		filepath.Join(pl.dir, fmt.Sprintf("energy_H%g.png", field))
}

// WriteSeries renders both figures for s.
func (pl *Plotter) WriteSeries(s model.Series) error {
	magPath, energyPath := pl.Paths(s.Field)

	mag, err := scatter(
		fmt.Sprintf("Magnetization vs Temperature (H = %g)", s.Field),
		"Average |Magnetization|",
		s.Temperatures(), s.Magnetizations(),
		color.RGBA{R: 200, A: 255},
	)
	if err != nil {
		return err
	}
	if err := mag.Save(figureWidth, figureHeight, magPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", magPath, err)
	}

	energy, err := scatter(
		fmt.Sprintf("Energy vs Temperature (H = %g)", s.Field),
		"Average Energy per Spin",
		s.Temperatures(), s.Energies(),
		color.RGBA{B: 200, A: 255},
	)
	if err != nil {
		return err
	}
	if err := energy.Save(figureWidth, figureHeight, energyPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", energyPath, err)
	}
	return nil
}

// Close is a no-op; figures are complete once WriteSeries returns.
func (pl *Plotter) Close() error { return nil }

func scatter(title, ylabel string, xs, ys []float64, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Temperature"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter for %q: %w", title, err)
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(2.5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	return p, nil
}
