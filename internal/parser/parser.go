package parser

import (
	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// Parser reconstructs transactions from extracted statement pages. It is
// stateless and safe to share; all per-document state lives in the
// Reconstruction values it hands out.
type Parser struct {
	schema models.Schema
}

// New returns a parser for the given column schema.
func New(schema models.Schema) *Parser {
	return &Parser{schema: schema}
}

// Schema returns the active column layout.
func (p *Parser) Schema() models.Schema {
	return p.schema
}

// ParseDocument runs a whole document through a fresh reconstruction and
// returns its transactions in statement order.
func (p *Parser) ParseDocument(pages []models.Page) []models.Transaction {
	rec := p.NewReconstruction()
	for _, page := range pages {
		if rec.Stopped() {
			break
		}
		rec.ProcessPage(page)
	}
	return rec.Finish()
}

// Reconstruction carries the in-progress state for one document: the record
// currently under text-mode accumulation, the stop flag, and the output so
// far. Create one per document and feed it pages strictly in page order;
// nothing is shared between reconstructions, so independent documents can
// run concurrently.
type Reconstruction struct {
	schema  models.Schema
	open    *models.Transaction
	stopped bool
	records []models.Transaction
}

// NewReconstruction returns an empty per-document reconstruction state.
func (p *Parser) NewReconstruction() *Reconstruction {
	return &Reconstruction{schema: p.schema}
}

// ProcessPage feeds one page through the table-first, text-fallback policy.
// A detected grid is classified row by row; only when no row classifies as a
// transaction does the line state machine run on the page text. Pages after
// the stop marker are ignored.
func (r *Reconstruction) ProcessPage(page models.Page) {
	if r.stopped {
		return
	}
	if len(page.Rows) > 0 {
		accepted := r.processRows(page.Rows)
		if accepted > 0 || r.stopped {
			return
		}
	}
	r.processText(page.Text)
}

// Stopped reports whether the stop marker has been seen. Callers may skip
// extracting further pages once it returns true.
func (r *Reconstruction) Stopped() bool {
	return r.stopped
}

// Finish finalizes any open record and returns the document's transactions.
func (r *Reconstruction) Finish() []models.Transaction {
	r.finalize()
	return r.records
}

// finalize emits the open record if it is complete and clears the slot.
// A record missing its date or amount is dropped, never emitted.
func (r *Reconstruction) finalize() {
	if r.open == nil {
		return
	}
	if r.open.Complete() {
		r.records = append(r.records, *r.open)
	}
	r.open = nil
}
