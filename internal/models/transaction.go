package models

// Transaction represents a single reconstructed bank statement transaction.
// Every field stays textual: dates keep their DD.MM.YYYY source form and
// amounts keep the German comma-decimal notation, so no value is lost to
// locale reinterpretation.
type Transaction struct {
	Date         string `json:"date"`
	ValueDate    string `json:"valueDate,omitempty"` // Valuta, six-column schema only
	Reference    string `json:"reference"`           // operation type, e.g. Lastschrift
	Counterparty string `json:"counterparty"`
	Purpose      string `json:"purpose"`
	Amount       string `json:"amount"`
}

// Complete reports whether the transaction may be emitted. Date and amount
// are mandatory; all other fields may be empty.
func (t Transaction) Complete() bool {
	return t.Date != "" && t.Amount != ""
}

// Row renders the transaction as one output row in the schema's column order.
func (t Transaction) Row(s Schema) []string {
	if s == SchemaV2 {
		return []string{t.Date, t.ValueDate, t.Reference, t.Counterparty, t.Purpose, t.Amount}
	}
	return []string{t.Date, t.Reference, t.Counterparty, t.Purpose, t.Amount}
}

// FromRow maps a table row onto a transaction in the schema's column order.
// The row must already be normalized to the schema arity.
func FromRow(cells []string, s Schema) Transaction {
	if s == SchemaV2 {
		return Transaction{
			Date:         cells[0],
			ValueDate:    cells[1],
			Reference:    cells[2],
			Counterparty: cells[3],
			Purpose:      cells[4],
			Amount:       cells[5],
		}
	}
	return Transaction{
		Date:         cells[0],
		Reference:    cells[1],
		Counterparty: cells[2],
		Purpose:      cells[3],
		Amount:       cells[4],
	}
}
