package models

// Page is the extracted content of one statement page. Rows holds the
// detected table grid, nil when the page had none; Text holds the page's
// plain text. Reconstruction applies exactly one of the two to a page:
// the grid is tried first and the text only when no row classifies.
type Page struct {
	Number int
	Rows   [][]string
	Text   string
}
