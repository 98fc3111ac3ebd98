package parser

import (
	"strings"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// processText runs the line state machine over one page of plain text. The
// open record survives page boundaries: a transaction's purpose text may
// continue onto the next page's first lines, so only a new transaction
// start, the stop marker, or the end of the document closes it.
func (r *Reconstruction) processText(text string) {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isStopLine(line) {
			r.finalize()
			r.stopped = true
			return
		}

		// A line starting with a booking date and carrying an amount opens
		// a new record; any previous one is finalized first.
		if startsWithDate(line) {
			if amt := lastAmountSpan(line); amt != nil {
				r.finalize()
				r.open = openFromLine(line, amt)
				continue
			}
		}

		// Everything else extends the open record's purpose text. Without
		// an open record the line is header/footer noise and is dropped.
		if r.open != nil {
			if r.open.Purpose == "" {
				r.open.Purpose = line
			} else {
				r.open.Purpose += " " + line
			}
		}
	}
}

// openFromLine starts a record from a transaction-start line. The date is
// the anchored match at the line start, amt is the span of the rightmost
// amount. The reference is the operation keyword when the line has one, and
// the counterparty is whatever remains once the matched spans are sliced
// away, so repeated substrings elsewhere in the line cannot be clipped by
// accident.
func openFromLine(line string, amt []int) *models.Transaction {
	date := dateStartPattern.FindStringIndex(line)
	txn := &models.Transaction{
		Date:   line[date[0]:date[1]],
		Amount: line[amt[0]:amt[1]],
	}

	spans := [][]int{date, amt}
	if kw := keywordSpan(line); kw != nil {
		txn.Reference = line[kw[0]:kw[1]]
		spans = append(spans, kw)
	}
	txn.Counterparty = cutSpans(line, spans...)
	return txn
}
