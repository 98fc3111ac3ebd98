package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// CSVWriter writes transactions as semicolon-separated values, the
// delimiter German spreadsheet locales expect. Amounts keep their
// original formatting, so 1.234,56 survives the round trip.
type CSVWriter struct {
	Schema          models.Schema
	IncludeFilename bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, docs []Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, docs)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, docs []Document) error {
	cw := csv.NewWriter(out)
	cw.Comma = ';'

	if err := cw.Write(headerRow(w.Schema, w.IncludeFilename)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range flatten(docs, w.Schema, w.IncludeFilename) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
