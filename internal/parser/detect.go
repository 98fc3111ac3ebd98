package parser

import (
	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// DetectSchema inspects extracted page text for layout hints. Statements
// whose header area names a separate value-date column use the six-column
// layout; everything else defaults to the five-column one.
func DetectSchema(pages []models.Page) models.Schema {
	for _, page := range pages {
		if containsFold(page.Text, "Valuta") || containsFold(page.Text, "Wertstellung") {
			return models.SchemaV2
		}
		for _, row := range page.Rows {
			for _, cell := range row {
				if containsFold(cell, "Valuta") || containsFold(cell, "Wertstellung") {
					return models.SchemaV2
				}
			}
		}
	}
	return models.SchemaV1
}
