// Package tabular reconstructs roster tables that page extractors mangle.
//
// Extractors frequently collapse a multi-line row into its first cell, leave
// the remaining cells empty, and emit overflow text ("Barrio Centro",
// "ordenado") as separate rows. Reconstruct classifies every raw row and
// rebuilds collapsed ones into the canonical seven-column layout:
//
//	0 name, 1 age, 2 priesthood, 3 recommendation, 4 callings, 5 unit, 6 date
package tabular

import (
	"regexp"
	"strings"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
)

// Canonical column indexes produced for collapsed rows.
const (
	ColName = iota
	ColAge
	ColPriesthood
	ColRecommendation
	ColCallings
	ColUnit
	ColDate

	// NumCanonicalCols is the width of a reconstructed collapsed row.
	NumCanonicalCols = 7
)

// monthAbbr matches Spanish and English three-letter month abbreviations.
const monthAbbr = `(?:ene|feb|mar|abr|may|jun|jul|ago|sep|oct|nov|dic|jan|apr|aug|dec)`

//nolint:gochecknoglobals // Compiled once, read-only
var (
	dateRE = regexp.MustCompile(`(?i)\d{1,2}\s+` + monthAbbr + `\s+\d{4}`)
	// ageRE emulates standalone-number lookarounds: a 1-2 digit run with no
	// adjacent digits.
	ageRE = regexp.MustCompile(`(^|\D)(\d{1,2})($|\D)`)
)

// Reconstructor rebuilds mangled table rows using the phrase lists of the
// active normalization catalog.
type Reconstructor struct {
	cat    *catalog.Catalog
	unitRE *regexp.Regexp
}

// NewReconstructor creates a reconstructor over the given catalog.
func NewReconstructor(cat *catalog.Catalog) *Reconstructor {
	pattern := `(?i)(?:` + strings.Join(cat.UnitPrefixes(), "|") + `)\s+[\pL\pN_\s]+`
	return &Reconstructor{
		cat:    cat,
		unitRE: regexp.MustCompile(pattern),
	}
}

// pendingRow is a row awaiting final assembly. Collapsed rows keep their
// original text so trailing continuation fragments can be folded in before
// the single final parse.
type pendingRow struct {
	cells     []string
	collapsed string // non-empty means cells are derived from this text
}

// Reconstruct classifies raw rows and returns clean rows of numCols columns
// (or NumCanonicalCols for rows rebuilt from collapsed text, whichever is
// wider). Empty rows disappear; continuation fragments merge into the row
// they belong to.
func (r *Reconstructor) Reconstruct(rows [][]string, numCols int) [][]string {
	if numCols < 1 {
		numCols = 1
	}

	var pending []*pendingRow
	for _, raw := range rows {
		row := padRow(raw, numCols)
		first := row[0]

		if first == "" && allOtherEmpty(row) {
			continue
		}

		if r.isContinuation(row) {
			r.mergeContinuation(pending, first)
			continue
		}

		if allOtherEmpty(row) && strings.Contains(first, ",") {
			pending = append(pending, &pendingRow{collapsed: first})
			continue
		}

		pending = append(pending, &pendingRow{cells: row})
	}

	result := make([][]string, 0, len(pending))
	for _, p := range pending {
		if p.collapsed != "" {
			result = append(result, r.ParseCollapsed(p.collapsed))
			continue
		}
		result = append(result, p.cells)
	}
	return result
}

// isContinuation reports whether the row carries only overflow text from the
// previous row: an empty first cell, the dangling "ordenado" fragment, or a
// bare unit line with no comma and no data in the other cells.
func (r *Reconstructor) isContinuation(row []string) bool {
	first := row[0]
	if first == "" {
		return true
	}
	folded := strings.ToLower(first)
	if folded == "ordenado" {
		return true
	}
	if !strings.Contains(first, ",") && allOtherEmpty(row) {
		for _, prefix := range r.cat.UnitPrefixes() {
			if strings.HasPrefix(folded, prefix+" ") {
				return true
			}
		}
	}
	return false
}

// mergeContinuation folds a fragment into the last pending row. Collapsed
// rows take the fragment as more text to parse; well-formed rows take unit
// fragments into the unit cell and anything else into the priesthood cell,
// which is where split "No ha sido / ordenado" values land.
func (r *Reconstructor) mergeContinuation(pending []*pendingRow, fragment string) {
	if fragment == "" || len(pending) == 0 {
		return
	}
	prev := pending[len(pending)-1]

	if prev.collapsed != "" {
		prev.collapsed = prev.collapsed + " " + fragment
		return
	}

	col := ColPriesthood
	folded := strings.ToLower(fragment)
	for _, prefix := range r.cat.UnitPrefixes() {
		if strings.HasPrefix(folded, prefix+" ") {
			col = ColUnit
			break
		}
	}
	if col >= len(prev.cells) {
		return
	}
	if prev.cells[col] == "" {
		prev.cells[col] = fragment
	} else {
		prev.cells[col] = prev.cells[col] + " " + fragment
	}
}

// Stage is one named step of collapsed-row extraction. Extract claims its
// value from the text and returns what is left.
type Stage struct {
	Name    string
	Column  int
	Extract func(text string) (value, rest string, found bool)
}

// Stages returns the extraction pipeline in its fixed order. Order matters:
// the date is unambiguous so it goes first, phrases go before the age so a
// digit inside a unit name is never mistaken for an age, and the name is
// whatever survives every prior claim.
func (r *Reconstructor) Stages() []Stage {
	return []Stage{
		{Name: "date", Column: ColDate, Extract: extractDate},
		{Name: "priesthood", Column: ColPriesthood, Extract: phraseExtractor(r.cat.PriesthoodPhrases())},
		{Name: "recommendation", Column: ColRecommendation, Extract: phraseExtractor(r.cat.RecommendationPhrases())},
		{Name: "unit", Column: ColUnit, Extract: r.extractUnit},
		{Name: "age", Column: ColAge, Extract: extractAge},
	}
}

// ParseCollapsed rebuilds one collapsed cell into the canonical seven-column
// row. Each stage claims and removes its value; the remainder is the name.
func (r *Reconstructor) ParseCollapsed(text string) []string {
	result := make([]string, NumCanonicalCols)
	remaining := catalog.Clean(text)

	for _, stage := range r.Stages() {
		value, rest, found := stage.Extract(remaining)
		if !found {
			continue
		}
		result[stage.Column] = value
		remaining = rest
	}

	result[ColName] = catalog.Clean(remaining)
	return result
}

func extractDate(text string) (string, string, bool) {
	loc := dateRE.FindStringIndex(text)
	if loc == nil {
		return "", text, false
	}
	return text[loc[0]:loc[1]], spliceOut(text, loc[0], loc[1]), true
}

// phraseExtractor claims the first phrase (longest first) found in the text,
// matching case-insensitively.
func phraseExtractor(phrases []string) func(string) (string, string, bool) {
	return func(text string) (string, string, bool) {
		lower := strings.ToLower(text)
		for _, phrase := range phrases {
			idx := strings.Index(lower, strings.ToLower(phrase))
			if idx < 0 {
				continue
			}
			end := idx + len(phrase)
			return phrase, spliceOut(text, idx, end), true
		}
		return "", text, false
	}
}

func (r *Reconstructor) extractUnit(text string) (string, string, bool) {
	loc := r.unitRE.FindStringIndex(text)
	if loc == nil {
		return "", text, false
	}
	return strings.TrimSpace(text[loc[0]:loc[1]]), spliceOut(text, loc[0], loc[1]), true
}

func extractAge(text string) (string, string, bool) {
	m := ageRE.FindStringSubmatchIndex(text)
	if m == nil {
		return "", text, false
	}
	start, end := m[4], m[5]
	return text[start:end], spliceOut(text, start, end), true
}

// spliceOut removes text[start:end] and rejoins the halves with a space.
func spliceOut(text string, start, end int) string {
	left := strings.TrimSpace(text[:start])
	right := strings.TrimSpace(text[end:])
	if left == "" {
		return right
	}
	if right == "" {
		return left
	}
	return left + " " + right
}

//nolint:gochecknoglobals // Compiled once, read-only
var lineSplitRE = regexp.MustCompile(`\t+|\s{2,}|\s*\|\s*`)

// SplitLines turns free-form text lines into rows by splitting on runs of
// tabs, pipes, or two-plus spaces. Used when a document has no table grid at
// all, as in recommendation-list text extracts.
func SplitLines(lines []string, numCols int) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := lineSplitRE.Split(line, -1)
		cells := make([]string, 0, len(fields))
		for _, f := range fields {
			cells = append(cells, catalog.Clean(f))
		}
		rows = append(rows, padRow(cells, numCols))
	}
	return rows
}

func padRow(raw []string, numCols int) []string {
	row := make([]string, numCols)
	for i := 0; i < numCols && i < len(raw); i++ {
		row[i] = catalog.Clean(raw[i])
	}
	return row
}

func allOtherEmpty(row []string) bool {
	for _, cell := range row[1:] {
		if cell != "" {
			return false
		}
	}
	return true
}
