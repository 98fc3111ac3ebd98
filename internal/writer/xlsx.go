package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// xlsxSheet is the single worksheet every workbook carries.
const xlsxSheet = "Umsätze"

// XLSXWriter writes transactions as an Excel workbook. Cells hold the
// original strings, so German dates and amounts are not reinterpreted.
type XLSXWriter struct {
	Schema          models.Schema
	IncludeFilename bool
}

// WriteToFile writes the workbook to the given path.
func (w *XLSXWriter) WriteToFile(path string, docs []Document) error {
	f, err := w.build(docs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to the given writer.
func (w *XLSXWriter) Write(out io.Writer, docs []Document) error {
	f, err := w.build(docs)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(docs []Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx sheet setup: %w", err)
	}

	for i, h := range headerRow(w.Schema, w.IncludeFilename) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(xlsxSheet, cell, h)
	}

	for n, row := range flatten(docs, w.Schema, w.IncludeFilename) {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, n+2)
			_ = f.SetCellValue(xlsxSheet, cell, v)
		}
	}

	// Widen the text-heavy columns; dates and amounts stay narrow.
	widths := []float64{12, 22, 30, 48, 12}
	if w.Schema == models.SchemaV2 {
		widths = []float64{12, 12, 22, 30, 48, 12}
	}
	if w.IncludeFilename {
		widths = append(widths, 40)
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(xlsxSheet, col, col, width)
	}

	return f, nil
}
