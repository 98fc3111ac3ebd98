package parser

import (
	"strings"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// processRows classifies one page's table rows and returns how many rows
// passed the date+amount test. Zero tells the caller that table mode failed
// for this page and the text fallback should run instead.
func (r *Reconstruction) processRows(rows [][]string) int {
	accepted := 0
	for _, row := range rows {
		joined := strings.Join(row, " ")

		// Balance and interest rows carry a date and an amount themselves,
		// so the stop marker has to win before classification.
		if isStopLine(joined) {
			r.finalize()
			r.stopped = true
			return accepted
		}

		// Too few cells: reject outright, no pattern testing.
		if len(row) < r.schema.MinTableColumns() {
			continue
		}

		if !datePattern.MatchString(joined) || !amountPattern.MatchString(joined) {
			continue
		}
		accepted++

		// A record left open by an earlier text-mode page ends at the first
		// classified row; records are never nested.
		if accepted == 1 {
			r.finalize()
		}

		txn := models.FromRow(normalizeRow(row, r.schema.Columns()), r.schema)
		if txn.Complete() {
			r.records = append(r.records, txn)
		}
	}
	return accepted
}

// normalizeRow trims each cell and truncates or pads the row to the target
// arity. Missing cells become empty strings.
func normalizeRow(row []string, arity int) []string {
	out := make([]string, arity)
	for i := 0; i < arity && i < len(row); i++ {
		out[i] = strings.TrimSpace(row[i])
	}
	return out
}
