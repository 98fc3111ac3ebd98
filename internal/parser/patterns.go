package parser

import (
	"regexp"
	"sort"
	"strings"
)

// Patterns found in German bank statement lines.
var (
	// DD.MM.YYYY at the very start of a trimmed line
	dateStartPattern = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})`)
	// DD.MM.YYYY anywhere, for joined table-row text
	datePattern = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
	// Signed amount in German notation: dot thousands groups, comma decimals
	// (e.g. "-1.234,56", "+17,50")
	amountPattern = regexp.MustCompile(`[-+]?\d{1,3}(?:\.\d{3})*,\d{2}`)
	// End of the itemized transaction section: interest summary or closing balance
	stopPattern = regexp.MustCompile(`Zinsertrag|Neuer Saldo`)
	// Closed vocabulary of booking operation types
	keywordPattern = regexp.MustCompile(`(?i)(?:Lastschrift|Überweisung|Gutschrift|Belastung|Dauerauftrag)`)
)

// startsWithDate reports whether the trimmed line begins with a booking date.
func startsWithDate(line string) bool {
	return dateStartPattern.MatchString(line)
}

// lastAmountSpan returns the [start,end) span of the rightmost amount in the
// line, or nil. Statement layouts put the signed booking amount in the final
// column, so when several amount-like substrings occur the last one wins.
func lastAmountSpan(line string) []int {
	all := amountPattern.FindAllStringIndex(line, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// isStopLine reports whether the line ends the itemized transaction section.
// Everything after it, including later pages, is summary/footer content.
func isStopLine(line string) bool {
	return stopPattern.MatchString(line)
}

// keywordSpan returns the span of the first operation-type keyword in the
// line, or nil.
func keywordSpan(line string) []int {
	return keywordPattern.FindStringIndex(line)
}

// cutSpans removes the given [start,end) spans from line and collapses the
// remaining whitespace runs to single spaces. Spans must index this exact
// line; overlapping spans are tolerated.
func cutSpans(line string, spans ...[]int) string {
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp[0] > pos {
			b.WriteString(line[pos:sp[0]])
			b.WriteByte(' ')
		}
		if sp[1] > pos {
			pos = sp[1]
		}
	}
	if pos < len(line) {
		b.WriteString(line[pos:])
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsFold reports whether text contains needle ignoring case.
func containsFold(text, needle string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
}
