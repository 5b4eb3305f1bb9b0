// Package importer turns raw roster rows into normalized person records.
//
// The pipeline mirrors what the membership-system exports need: reconstruct
// mangled page tables, map columns to canonical fields, skip header and
// summary rows, rescue values that landed in the wrong column, then
// normalize. Bad cells degrade to warnings; a row is only dropped when it has
// no usable name.
package importer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/id"
	"github.com/stakemetrics/stakemetrics-server/internal/normalize"
	"github.com/stakemetrics/stakemetrics-server/internal/tabular"
)

// Importer parses roster rows with one catalog version.
type Importer struct {
	log *slog.Logger
	now func() time.Time
}

// New creates an importer.
func New(log *slog.Logger) *Importer {
	return &Importer{
		log: log.With("component", "importer"),
		now: time.Now,
	}
}

// Result is the outcome of parsing one document.
type Result struct {
	Persons  []*domain.Person
	Warnings []string
}

// Parse reconstructs, maps and normalizes raw rows into person records bound
// to the given document. An explicit mapping overrides auto-detection; pass
// nil to let the header row (or positional order) decide.
func (imp *Importer) Parse(cat *catalog.Catalog, rawRows [][]string, mapping Mapping, documentID string) *Result {
	recon := tabular.NewReconstructor(cat)
	norm := normalize.New(cat)

	rows := recon.Reconstruct(rawRows, widestRow(rawRows))

	if mapping == nil {
		if len(rows) > 0 && IsHeaderRow(rows[0]) {
			mapping = MapHeader(rows[0])
			rows = rows[1:]
		} else {
			mapping = MapPositional()
		}
	}

	result := &Result{}
	for i, row := range rows {
		if p := imp.parseRow(norm, mapping, row, i+1, documentID, result); p != nil {
			result.Persons = append(result.Persons, p)
		}
	}

	imp.log.Info("document parsed",
		"document_id", documentID,
		"rows", len(rows),
		"imported", len(result.Persons),
		"warnings", len(result.Warnings))
	return result
}

func (imp *Importer) parseRow(norm *normalize.Normalizer, mapping Mapping, row []string, rowNum int, documentID string, result *Result) *domain.Person {
	values := mapping.apply(row)
	cat := norm.Catalog()

	name := values[FieldName]
	if name == "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: no name, skipped", rowNum))
		return nil
	}
	if isSkipName(cat, name) || isNumericName(name) {
		imp.log.Debug("skipping non-data row", "row", rowNum, "value", name)
		return nil
	}

	priesthoodRaw := values[FieldPriesthood]
	recommendationRaw := values[FieldRecommendation]

	// A recommendation value in the priesthood column means the extractor
	// shifted the row; move it where it belongs before scanning for more.
	if recommendationRaw == "" && norm.LooksLikeRecommendation(priesthoodRaw) {
		recommendationRaw = priesthoodRaw
		priesthoodRaw = ""
	}

	priesthoodRaw, recommendationRaw = norm.RescueScan(row, priesthoodRaw, recommendationRaw)

	sex := norm.Sex(values[FieldSex])
	if sex == domain.SexUnknown {
		sex = norm.InferSexFromPriesthood(priesthoodRaw)
	}

	priesthood, ordained := norm.Priesthood(priesthoodRaw)
	hasRecommendation, _ := norm.Recommendation(recommendationRaw)

	var birthDate *time.Time
	if raw := values[FieldBirthDate]; raw != "" {
		if t, ok := ParseDate(raw); ok {
			birthDate = &t
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: invalid birth date %q", rowNum, raw))
		}
	}

	confirmation, ok := ParseDate(values[FieldConfirmationDate])
	if !ok {
		if raw := values[FieldConfirmationDate]; raw != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: invalid confirmation date %q", rowNum, raw))
		}
		confirmation, ok = ScanDate(row)
		if !ok {
			confirmation = imp.now().Truncate(24 * time.Hour)
		}
	}

	age, haveAge := parseAge(values[FieldAge])
	if !haveAge {
		if years, ok := normalize.Age(deref(birthDate), confirmation); ok {
			age = years
		} else {
			age = normalize.DefaultAgeWhenUnknown
		}
	}

	return &domain.Person{
		ID:                id.MustGenerate(id.PrefixPerson),
		PreferredName:     name,
		PriesthoodRaw:     priesthoodRaw,
		RecommendationRaw: recommendationRaw,
		Callings:          values[FieldCallings],
		Unit:              values[FieldUnit],
		ConfirmationDate:  confirmation,
		BirthDate:         birthDate,
		Priesthood:        priesthood,
		HasRecommendation: hasRecommendation,
		IsOrdained:        ordained,
		Sex:               sex,
		AgeAtConfirmation: age,
		DocumentID:        documentID,
		RowNumber:         rowNum,
		CreatedAt:         imp.now(),
	}
}

// isSkipName reports whether the name cell is a header, footer or summary
// label rather than a person.
func isSkipName(cat *catalog.Catalog, name string) bool {
	folded := catalog.Fold(name)
	for _, prefix := range cat.SkipRowPrefixes() {
		if strings.HasPrefix(folded, prefix) {
			return true
		}
	}
	return false
}

// isNumericName reports whether the name is only digits, as in a count row
// ("10", "1.168").
func isNumericName(name string) bool {
	stripped := strings.NewReplacer(".", "", ",", "", " ", "").Replace(name)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseAge keeps any parseable non-negative integer, including an explicit
// zero. The second return distinguishes a stated age from a missing one.
func parseAge(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func widestRow(rows [][]string) int {
	width := tabular.NumCanonicalCols
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
