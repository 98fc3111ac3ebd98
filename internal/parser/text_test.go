package parser

import (
	"reflect"
	"testing"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

func TestReconstruction_TransactionLine(t *testing.T) {
	p := New(models.SchemaV1)

	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: "01.02.2024 Überweisung Max Mustermann 123,45"},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}

	txn := txns[0]
	if txn.Date != "01.02.2024" {
		t.Errorf("Date: got %q, want %q", txn.Date, "01.02.2024")
	}
	if txn.Reference != "Überweisung" {
		t.Errorf("Reference: got %q, want %q", txn.Reference, "Überweisung")
	}
	if txn.Counterparty != "Max Mustermann" {
		t.Errorf("Counterparty: got %q, want %q", txn.Counterparty, "Max Mustermann")
	}
	if txn.Purpose != "" {
		t.Errorf("Purpose: got %q, want empty", txn.Purpose)
	}
	if txn.Amount != "123,45" {
		t.Errorf("Amount: got %q, want %q", txn.Amount, "123,45")
	}
}

func TestReconstruction_ContinuationLines(t *testing.T) {
	p := New(models.SchemaV1)

	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: `05.02.2024 Lastschrift 50,00
Zahlungsreferenz ABC123`},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Purpose != "Zahlungsreferenz ABC123" {
		t.Errorf("Purpose: got %q, want %q", txns[0].Purpose, "Zahlungsreferenz ABC123")
	}
}

func TestReconstruction_MultipleContinuationLines(t *testing.T) {
	p := New(models.SchemaV1)

	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: `12.02.2024 Dauerauftrag Vermieter GmbH 850,00
Miete Februar
Objekt Hauptstr. 5`},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	want := "Miete Februar Objekt Hauptstr. 5"
	if txns[0].Purpose != want {
		t.Errorf("Purpose: got %q, want %q", txns[0].Purpose, want)
	}
}

func TestReconstruction_StopMarker(t *testing.T) {
	p := New(models.SchemaV1)

	// The third line looks like a valid transaction but follows the marker,
	// so it must not appear in the output.
	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: `01.03.2024 Lastschrift Stadtwerke 89,90
04.03.2024 Gutschrift Arbeitgeber 2.400,00
Zinsertrag 0,45
07.03.2024 Überweisung Max Mustermann 15,00`},
	})

	if len(txns) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(txns))
	}
	if txns[0].Date != "01.03.2024" {
		t.Errorf("txn[0].Date: got %q, want %q", txns[0].Date, "01.03.2024")
	}
	if txns[1].Date != "04.03.2024" {
		t.Errorf("txn[1].Date: got %q, want %q", txns[1].Date, "04.03.2024")
	}
}

func TestReconstruction_StopSkipsLaterPages(t *testing.T) {
	p := New(models.SchemaV1)
	rec := p.NewReconstruction()

	rec.ProcessPage(models.Page{Number: 1, Text: `02.04.2024 Lastschrift Versicherung 120,00
Neuer Saldo 3.456,78`})

	if !rec.Stopped() {
		t.Fatal("expected reconstruction to be stopped after the marker")
	}

	// A later page full of valid lines is ignored wholesale.
	rec.ProcessPage(models.Page{Number: 2, Text: "05.04.2024 Gutschrift Erstattung 60,00"})

	txns := rec.Finish()
	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Date != "02.04.2024" {
		t.Errorf("Date: got %q, want %q", txns[0].Date, "02.04.2024")
	}
}

func TestReconstruction_StopFinalizesOpenRecord(t *testing.T) {
	p := New(models.SchemaV1)

	// The marker arrives while a record is still accumulating. The record
	// is emitted, not discarded; this test pins that behavior.
	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: `09.04.2024 Lastschrift Telekom 39,99
Rechnung März
Zinsertrag 0,12`},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Purpose != "Rechnung März" {
		t.Errorf("Purpose: got %q, want %q", txns[0].Purpose, "Rechnung März")
	}
}

func TestReconstruction_RightmostAmountWins(t *testing.T) {
	p := New(models.SchemaV1)

	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: "03.03.2024 Gutschrift Gehalt 1.000,00 2.500,50"},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Amount != "2.500,50" {
		t.Errorf("Amount: got %q, want %q", txns[0].Amount, "2.500,50")
	}
	// The earlier amount stays behind as counterparty text.
	if txns[0].Counterparty != "Gehalt 1.000,00" {
		t.Errorf("Counterparty: got %q, want %q", txns[0].Counterparty, "Gehalt 1.000,00")
	}
}

func TestReconstruction_CrossPageContinuation(t *testing.T) {
	p := New(models.SchemaV1)
	rec := p.NewReconstruction()

	// The purpose text of the last transaction on page 1 continues on the
	// first lines of page 2.
	rec.ProcessPage(models.Page{Number: 1, Text: `20.05.2024 Überweisung Lieferant AG 310,25
Rechnungsnr. 2024-117`})
	rec.ProcessPage(models.Page{Number: 2, Text: `Projekt Neubau
22.05.2024 Lastschrift Stadtwerke 64,80`})

	txns := rec.Finish()
	if len(txns) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(txns))
	}
	want := "Rechnungsnr. 2024-117 Projekt Neubau"
	if txns[0].Purpose != want {
		t.Errorf("txn[0].Purpose: got %q, want %q", txns[0].Purpose, want)
	}
	if txns[1].Date != "22.05.2024" {
		t.Errorf("txn[1].Date: got %q, want %q", txns[1].Date, "22.05.2024")
	}
}

func TestReconstruction_OpenRecordFinalizedAtDocumentEnd(t *testing.T) {
	p := New(models.SchemaV1)
	rec := p.NewReconstruction()

	rec.ProcessPage(models.Page{Number: 1, Text: `28.06.2024 Belastung Kartenzahlung 12,30
Supermarkt Filiale 12`})

	txns := rec.Finish()
	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Purpose != "Supermarkt Filiale 12" {
		t.Errorf("Purpose: got %q, want %q", txns[0].Purpose, "Supermarkt Filiale 12")
	}
}

func TestReconstruction_DateLineWithoutAmount(t *testing.T) {
	p := New(models.SchemaV1)

	// A date at the line start without any amount does not open a record.
	// While accumulating it is ordinary continuation text, while idle it is
	// noise.
	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: `15.07.2024 Kontoauszug Nr. 7
16.07.2024 Lastschrift Strom 75,00
17.07.2024 Wertstellungshinweis`},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Date != "16.07.2024" {
		t.Errorf("Date: got %q, want %q", txns[0].Date, "16.07.2024")
	}
	if txns[0].Purpose != "17.07.2024 Wertstellungshinweis" {
		t.Errorf("Purpose: got %q, want %q", txns[0].Purpose, "17.07.2024 Wertstellungshinweis")
	}
}

func TestReconstruction_IgnoresHeaderNoise(t *testing.T) {
	p := New(models.SchemaV1)

	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: `Kontoauszug 3/2024
IBAN DE89 3704 0044 0532 0130 00
BIC COBADEFFXXX

01.08.2024 Gutschrift Arbeitgeber 2.750,00`},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Date != "01.08.2024" {
		t.Errorf("Date: got %q, want %q", txns[0].Date, "01.08.2024")
	}
	if txns[0].Purpose != "" {
		t.Errorf("Purpose: got %q, want empty", txns[0].Purpose)
	}
}

func TestReconstruction_NoOperationKeyword(t *testing.T) {
	p := New(models.SchemaV1)

	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: "11.02.2024 Entgeltabrechnung 4,90"},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Reference != "" {
		t.Errorf("Reference: got %q, want empty", txns[0].Reference)
	}
	if txns[0].Counterparty != "Entgeltabrechnung" {
		t.Errorf("Counterparty: got %q, want %q", txns[0].Counterparty, "Entgeltabrechnung")
	}
}

func TestReconstruction_KeywordKeepsOriginalCase(t *testing.T) {
	p := New(models.SchemaV1)

	txns := p.ParseDocument([]models.Page{
		{Number: 1, Text: "19.02.2024 ÜBERWEISUNG Erika Musterfrau 77,10"},
	})

	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Reference != "ÜBERWEISUNG" {
		t.Errorf("Reference: got %q, want %q", txns[0].Reference, "ÜBERWEISUNG")
	}
	if txns[0].Counterparty != "Erika Musterfrau" {
		t.Errorf("Counterparty: got %q, want %q", txns[0].Counterparty, "Erika Musterfrau")
	}
}

func TestReconstruction_Idempotent(t *testing.T) {
	p := New(models.SchemaV1)

	pages := []models.Page{
		{Number: 1, Text: `01.03.2024 Lastschrift Stadtwerke 89,90
Abschlag März
04.03.2024 Gutschrift Arbeitgeber 2.400,00`},
		{Number: 2, Text: `06.03.2024 Überweisung Max Mustermann 15,00
Neuer Saldo 4.567,89`},
	}

	first := p.ParseDocument(pages)
	second := p.ParseDocument(pages)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\nfirst:  %v\nsecond: %v", first, second)
	}
	if len(first) != 3 {
		t.Errorf("transactions: got %d, want 3", len(first))
	}
}
