package writer

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{Schema: models.SchemaV1, IncludeFilename: true}
	err := w.Write(&buf, sampleDocs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	// 1 header + 3 transactions = 4
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	if rows[0][0] != "Datum" || rows[0][5] != "Datei" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][4] != "-89,90" {
		t.Errorf("expected amount in first row, got %v", rows[1])
	}
	if rows[3][5] != "auszug-07.pdf" {
		t.Errorf("expected source file in last row, got %v", rows[3])
	}
}

func TestXLSXWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auszuege.xlsx")
	w := &XLSXWriter{Schema: models.SchemaV2}
	if err := w.WriteToFile(path, sampleDocs()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != xlsxSheet {
		t.Errorf("unexpected sheet list: %v", sheets)
	}

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if rows[0][1] != "Valuta" {
		t.Errorf("expected Valuta column under schema v2, got %v", rows[0])
	}
}
