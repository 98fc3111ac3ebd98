package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// Document groups the transactions reconstructed from one source file.
// Writers use the source path when asked to emit a file name column.
type Document struct {
	Source       string
	Transactions []models.Transaction
}

// Writer renders reconstructed transactions to an output.
type Writer interface {
	WriteToFile(path string, docs []Document) error
	Write(out io.Writer, docs []Document) error
}

// Format selects an output serialization.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want csv, markdown or xlsx)", v)
	}
}

// FormatForPath guesses the format from the output file extension.
// CSV is the default for unknown extensions.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// New creates a writer for the given format.
func New(format Format, schema models.Schema, includeFilename bool) (Writer, error) {
	switch format {
	case FormatCSV:
		return &CSVWriter{Schema: schema, IncludeFilename: includeFilename}, nil
	case FormatMarkdown:
		return &MarkdownWriter{Schema: schema, IncludeFilename: includeFilename}, nil
	case FormatXLSX:
		return &XLSXWriter{Schema: schema, IncludeFilename: includeFilename}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// headerRow is the column header set shared by all writers.
func headerRow(schema models.Schema, includeFilename bool) []string {
	h := schema.Headers()
	if includeFilename {
		h = append(h, "Datei")
	}
	return h
}

// flatten turns the documents into output rows in document order.
func flatten(docs []Document, schema models.Schema, includeFilename bool) [][]string {
	var rows [][]string
	for _, doc := range docs {
		for _, txn := range doc.Transactions {
			row := txn.Row(schema)
			if includeFilename {
				row = append(row, doc.Source)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
