package output

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/daryltucker/ising-runner/internal/model"
)

const summarySheet = "Summary"

// XLSXHeader is the header row of every per-field sheet.
var XLSXHeader = []any{"T", "|m|", "E/N", "acceptance"}

// XLSXWriter collects one sheet per field value and saves the workbook on
// Close. The Summary sheet lists the run parameters.
type XLSXWriter struct {
	path string
	file *excelize.File
	run  model.Run
	mu   sync.Mutex
}

// NewXLSXWriter prepares a workbook that will be written to path.
func NewXLSXWriter(path string, run model.Run) (*XLSXWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "rename summary sheet")
	}
	return &XLSXWriter{path: path, file: f, run: run}, nil
}

// SheetName is the sheet used for a field value.
func SheetName(field float64) string {
	return fmt.Sprintf("H=%g", field)
}

// WriteSeries adds a sheet for s. Repeated field values get a numeric suffix.
func (xw *XLSXWriter) WriteSeries(s model.Series) error {
	xw.mu.Lock()
	defer xw.mu.Unlock()

	sheet := SheetName(s.Field)
	for k := 2; ; k++ {
		idx, err := xw.file.GetSheetIndex(sheet)
		if err != nil {
			return errors.Wrapf(err, "look up sheet %s", sheet)
		}
		if idx == -1 {
			break
		}
		sheet = fmt.Sprintf("%s (%d)", SheetName(s.Field), k)
	}
	if _, err := xw.file.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "create sheet %s", sheet)
	}

	header := XLSXHeader
	if err := xw.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "write header of %s", sheet)
	}
	for i, p := range s.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.WithStack(err)
		}
		row := []any{p.Temperature, p.AbsMagnetization, p.EnergyPerSpin, p.AcceptanceRate}
		if err := xw.file.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write %s row %d", sheet, i+2)
		}
	}
	return nil
}

// Finish records the final run metadata (duration) for the Summary sheet.
func (xw *XLSXWriter) Finish(run model.Run) error {
	xw.mu.Lock()
	defer xw.mu.Unlock()
	xw.run = run
	return nil
}

// Close writes the Summary sheet and saves the workbook.
func (xw *XLSXWriter) Close() error {
	xw.mu.Lock()
	defer xw.mu.Unlock()
	defer xw.file.Close()

	rows := [][]any{
		{"run_id", xw.run.ID},
		{"seed", xw.run.Seed},
		{"size", xw.run.Size},
		{"coupling", xw.run.Coupling},
		{"sweeps", xw.run.Sweeps},
		{"start", xw.run.Start},
		{"started_at", xw.run.StartedAt.Format("2006-01-02T15:04:05Z07:00")},
		{"duration_s", xw.run.Duration.Seconds()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := xw.file.SetSheetRow(summarySheet, cell, &row); err != nil {
			return errors.Wrap(err, "write summary")
		}
	}

	if err := xw.file.SaveAs(xw.path); err != nil {
		return errors.Wrapf(err, "save %s", xw.path)
	}
	return nil
}
