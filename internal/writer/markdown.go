package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// MarkdownWriter writes transactions as a GitHub-flavored pipe table.
type MarkdownWriter struct {
	Schema          models.Schema
	IncludeFilename bool
}

// WriteToFile writes the table to a file at the given path.
func (w *MarkdownWriter) WriteToFile(path string, docs []Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, docs)
}

// Write renders the table to the given writer.
func (w *MarkdownWriter) Write(out io.Writer, docs []Document) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader(headerRow(w.Schema, w.IncludeFilename))
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetHeaderLine(true)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})

	table.AppendBulk(flatten(docs, w.Schema, w.IncludeFilename))
	table.Render()
	return nil
}
