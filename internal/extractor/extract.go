package extractor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// ExtractPages pulls every page out of one PDF. Pages whose extraction
// fails are skipped so the rest of the document still parses. When the
// text layer is unusable and OCR is allowed, the rasterized pages
// replace the extracted ones. Anything skipped or degraded is both
// logged and returned as a warning string, so callers can surface it
// alongside the data.
func ExtractPages(path string, ocr bool, log zerolog.Logger) ([]models.Page, []string, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()

	var warnings []string

	total := doc.PageCount()
	if total == 0 {
		log.Warn().Str("file", path).Msg("PDF file appears to be empty")
		return nil, []string{"PDF file appears to be empty"}, nil
	}

	pages := make([]models.Page, 0, total)
	for num := 1; num <= total; num++ {
		page, err := doc.Page(num)
		if err != nil {
			log.Warn().Str("file", path).Int("page", num).Err(err).Msg("could not extract text from page")
			warnings = append(warnings, fmt.Sprintf("page %d: %v", num, err))
			continue
		}
		pages = append(pages, page)
	}

	if ocr && !Readable(pages) && OCRAvailable() {
		log.Info().Str("file", path).Msg("no readable text layer, trying OCR")
		ocrPages, err := ExtractOCR(path, log)
		if err != nil {
			log.Warn().Str("file", path).Err(err).Msg("OCR failed, keeping extracted text")
			warnings = append(warnings, fmt.Sprintf("OCR failed: %v", err))
		} else {
			pages = ocrPages
		}
	}

	return pages, warnings, nil
}
