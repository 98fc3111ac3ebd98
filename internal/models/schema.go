package models

import (
	"fmt"
	"strings"
)

// Schema selects one of the observed statement column layouts. The variants
// differ in whether a separate Valuta (value date) column is present.
type Schema int

const (
	// SchemaV1 is the five-column layout: Datum, Vorgang,
	// Auftraggeber/Empfänger, Verwendungszweck, Betrag.
	SchemaV1 Schema = 1
	// SchemaV2 inserts a Valuta column after Datum, six columns total.
	SchemaV2 Schema = 2
)

// ParseSchema maps a CLI/API schema argument to a Schema. Matching is
// case-insensitive.
func ParseSchema(v string) (Schema, error) {
	switch strings.ToLower(v) {
	case "1", "v1":
		return SchemaV1, nil
	case "2", "v2":
		return SchemaV2, nil
	}
	return 0, fmt.Errorf("unknown schema %q (want 1 or 2)", v)
}

func (s Schema) String() string {
	if s == SchemaV2 {
		return "v2"
	}
	return "v1"
}

// Columns returns the fixed output arity of the schema.
func (s Schema) Columns() int {
	if s == SchemaV2 {
		return 6
	}
	return 5
}

// MinTableColumns returns the minimum cell count a table row needs before it
// is considered for classification at all.
func (s Schema) MinTableColumns() int {
	if s == SchemaV2 {
		return 5
	}
	return 4
}

// Headers returns the German column headers in output order.
func (s Schema) Headers() []string {
	if s == SchemaV2 {
		return []string{"Datum", "Valuta", "Vorgang", "Auftraggeber/Empfänger", "Verwendungszweck", "Betrag"}
	}
	return []string{"Datum", "Vorgang", "Auftraggeber/Empfänger", "Verwendungszweck", "Betrag"}
}
