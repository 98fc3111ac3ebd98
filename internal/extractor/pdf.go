package extractor

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
)

// ErrEncrypted marks documents that cannot be opened without a password.
var ErrEncrypted = errors.New("PDF is password-protected")

// colGap is the horizontal distance between two text fragments on the same
// row above which they are treated as separate table cells.
const colGap = 15.0

// Document is an open statement PDF. Pages are extracted one at a time so a
// broken page never takes the whole document down.
type Document struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens a statement PDF for page extraction. Encrypted documents are
// reported as ErrEncrypted so callers can skip them with a clear message.
func Open(path string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("open %s: PDF library crashed: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "encrypt") || strings.Contains(low, "password") {
			return nil, fmt.Errorf("open %s: %w", path, ErrEncrypted)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Document{file: f, reader: r}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Page extracts one page (1-based). The row grid is tried first; pages
// without usable rows fall back to coordinate-based text reconstruction and
// then to the library's plain text path. An error here is recoverable:
// callers warn, skip the page, and continue with the rest of the document.
func (d *Document) Page(num int) (page models.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			page = models.Page{}
			err = fmt.Errorf("page %d: extraction crashed: %v", num, r)
		}
	}()

	p := d.reader.Page(num)
	if p.V.IsNull() {
		return models.Page{}, fmt.Errorf("page %d: not available", num)
	}

	page.Number = num

	// Method 1: GetTextByRow with column clustering. Keeps the grid for
	// table-mode classification and yields line text as a side product.
	if rows, rowErr := p.GetTextByRow(); rowErr == nil && len(rows) > 0 {
		page.Rows, page.Text = gridFromRows(rows)
	}
	if strings.TrimSpace(page.Text) != "" {
		return page, nil
	}

	// Method 2: Content() with coordinate-based row reconstruction.
	if text := textByContent(p); strings.TrimSpace(text) != "" {
		return models.Page{Number: num, Text: text}, nil
	}

	// Method 3: plain text with the page's font map.
	if text := pagePlainText(p); strings.TrimSpace(text) != "" {
		return models.Page{Number: num, Text: text}, nil
	}

	// A page can legitimately extract to nothing; that is not an error.
	return models.Page{Number: num}, nil
}

// gridFromRows converts library rows into table cells and line text. Words
// are clustered into cells wherever the horizontal gap between neighbours
// exceeds colGap; the line text joins all words regardless of cells.
func gridFromRows(rows pdf.Rows) ([][]string, string) {
	var grid [][]string
	var lines []string

	for _, row := range rows {
		words := make([]pdf.Text, 0, len(row.Content))
		for _, w := range row.Content {
			if strings.TrimSpace(w.S) != "" {
				words = append(words, w)
			}
		}
		if len(words) == 0 {
			continue
		}
		sort.Slice(words, func(a, b int) bool { return words[a].X < words[b].X })

		var cells []string
		var cell []string
		var prevX float64
		for i, w := range words {
			if i > 0 && w.X-prevX > colGap {
				cells = append(cells, strings.Join(cell, " "))
				cell = cell[:0]
			}
			cell = append(cell, w.S)
			prevX = w.X + w.W
		}
		cells = append(cells, strings.Join(cell, " "))

		grid = append(grid, cells)
		lines = append(lines, strings.Join(cells, " "))
	}

	return grid, strings.Join(lines, "\n")
}

// textByContent reconstructs page text from raw content-stream fragments.
// Fragments are grouped into rows by rounded Y coordinate and ordered by X;
// PDF Y grows bottom-to-top, so rows are emitted in descending Y order.
func textByContent(p pdf.Page) string {
	content := p.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type fragment struct {
		x float64
		s string
	}
	rowMap := make(map[int][]fragment)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], fragment{x: t.X, s: t.S})
	}

	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		frags := rowMap[y]
		sort.Slice(frags, func(a, b int) bool { return frags[a].x < frags[b].x })

		var parts []string
		var prevX float64
		for i, f := range frags {
			if i > 0 && f.x-prevX > colGap {
				parts = append(parts, " ")
			}
			parts = append(parts, f.s)
			prevX = f.x
		}
		if line := strings.TrimSpace(strings.Join(parts, "")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// pagePlainText extracts the page text through the library's font-aware
// plain text path.
func pagePlainText(p pdf.Page) string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		fonts[name] = &f
	}
	text, err := p.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// Readable reports whether the extracted pages look like decodable German
// statement text rather than binary garbage from identity-encoded fonts.
// Requires a minimum amount of text, a high share of plausible characters,
// and at least one word that statements actually contain.
func Readable(pages []models.Page) bool {
	texts := make([]string, 0, len(pages))
	for _, p := range pages {
		texts = append(texts, p.Text)
	}
	if totalTextLen(texts) <= 50 {
		return false
	}
	if textQuality(texts) <= 0.6 {
		return false
	}
	return containsCommonWords(texts)
}

// textQuality returns the share of characters that plausibly occur in a
// statement: ASCII letters and digits, German umlauts and sharp s, common
// punctuation, currency signs, whitespace. 0.0 to 1.0.
func textQuality(texts []string) float64 {
	total := 0
	readable := 0
	for _, text := range texts {
		for _, r := range text {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				r == 'ä' || r == 'ö' || r == 'ü' || r == 'Ä' || r == 'Ö' ||
				r == 'Ü' || r == 'ß' ||
				r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
				r == ';' || r == '(' || r == ')' || r == '\'' || r == '"' ||
				r == '€' || r == '$' || r == '%' || r == '&' || r == '@' ||
				r == '#' || r == '!' || r == '?' || r == '+' || r == '=' ||
				r == '*' || r == '\t' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords that appear in virtually every German bank statement. If the
// extracted text contains none of them, it is likely garbage.
var commonWords = []string{
	"kontoauszug", "datum", "betrag", "saldo", "iban", "bic", "buchung",
	"wert", "umsatz", "verwendungszweck", "lastschrift", "gutschrift",
	"überweisung", "konto", "bank", "blatt", "seite", "auszug",
}

func containsCommonWords(texts []string) bool {
	combined := strings.ToLower(strings.Join(texts, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

func totalTextLen(texts []string) int {
	n := 0
	for _, t := range texts {
		n += len(strings.TrimSpace(t))
	}
	return n
}
