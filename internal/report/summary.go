package report

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/daryltucker/ising-runner/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

// Crossover returns the temperature at which |m| falls fastest: the midpoint of
// the neighbouring pair with the steepest drop per unit temperature. It reports
// false when the series has fewer than two points or |m| never decreases.
func Crossover(s model.Series) (float64, bool) {
	best := 0.0
	at := math.NaN()
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		dT := b.Temperature - a.Temperature
		if dT <= 0 {
			continue
		}
		if slope := (a.AbsMagnetization - b.AbsMagnetization) / dT; slope > best {
			best = slope
			at = (a.Temperature + b.Temperature) / 2
		}
	}
	return at, !math.IsNaN(at)
}

// WriteSummary prints run parameters and, per field value, the |m|(T) curve as
// an ASCII chart.
func WriteSummary(w io.Writer, run model.Run, series []model.Series) error {
	fmt.Fprintln(w, titleStyle.Render("Ising Runner summary"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("run:"), run.ID)
	fmt.Fprintf(w, "%s N=%d J=%g sweeps=%d start=%s seed=%d\n",
		labelStyle.Render("params:"), run.Size, run.Coupling, run.Sweeps, run.Start, run.Seed)
	if len(run.Temperatures) > 0 {
		fmt.Fprintf(w, "%s %d points in [%g, %g]\n", labelStyle.Render("temperatures:"),
			len(run.Temperatures), run.Temperatures[0], run.Temperatures[len(run.Temperatures)-1])
	}
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("elapsed:"), run.Duration)

	for _, s := range series {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("H = %g", s.Field)))
		if len(s.Points) == 0 {
			fmt.Fprintln(w, "(no points)")
			continue
		}
		first, last := s.Points[0], s.Points[len(s.Points)-1]
		fmt.Fprintf(w, "  |m|: %.4f at T=%g -> %.4f at T=%g\n",
			first.AbsMagnetization, first.Temperature, last.AbsMagnetization, last.Temperature)
		fmt.Fprintf(w, "  E/N: %.4f at T=%g -> %.4f at T=%g\n",
			first.EnergyPerSpin, first.Temperature, last.EnergyPerSpin, last.Temperature)
		ms := s.Magnetizations()
		fmt.Fprintf(w, "  |m| range: [%.4f, %.4f]\n", floats.Min(ms), floats.Max(ms))
		if t, ok := Crossover(s); ok {
			fmt.Fprintf(w, "  steepest |m| drop near T=%.3f\n", t)
		}
		if len(s.Points) > 1 {
			chart := asciigraph.Plot(ms,
				asciigraph.Height(8),
				asciigraph.Width(60),
				asciigraph.Precision(2),
				asciigraph.Caption(fmt.Sprintf("|m| vs T (H = %g)", s.Field)),
			)
			fmt.Fprintln(w, chart)
		}
		fmt.Fprintln(w)
	}
	return nil
}
