// Package catalog holds the normalization catalog: the alias tables that map
// raw roster values to canonical categories, plus the phrase lists used to
// pull fields out of collapsed table rows.
//
// A Catalog is immutable. Registering an alias returns a new Catalog, so
// concurrent readers never observe a partial update; the Holder swaps the
// active catalog atomically.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
)

// Field identifies which alias table an entry belongs to.
type Field string

// Alias table fields.
const (
	FieldRecommendation Field = "recommendation"
	FieldPriesthood     Field = "priesthood"
	FieldSex            Field = "sex"
)

// Alias is one registered raw-value mapping, kept for persistence and the
// unrecognized-value workflow.
type Alias struct {
	Field    Field  `json:"field"`
	Raw      string `json:"raw"`
	Category string `json:"category"`
}

// Catalog is an immutable set of normalization tables. All lookups key on the
// folded form of the raw value (see Fold).
type Catalog struct {
	recommendation map[string]domain.RecommendationCategory
	priesthood     map[string]domain.PriesthoodCategory
	sex            map[string]domain.Sex

	// Phrase lists for claim-and-remove extraction, longest first so
	// "No ha sido ordenado" wins over "ordenado".
	priesthoodPhrases     []string
	recommendationPhrases []string

	// Lowercase substrings used when scanning misplaced cells.
	priesthoodScanWords     []string
	recommendationScanWords []string

	// Priesthood phrases that imply a male record.
	masculinePhrases []string

	// Recommendation words that imply an active recommendation even when the
	// full value matched no alias.
	activeHintWords []string

	unitPrefixes    []string
	skipRowPrefixes []string

	placeholders map[string]bool

	registered []Alias
}

// foldTransformer strips combining marks so "Aarónico" and "Aaronico" fold to
// the same key.
//
//nolint:gochecknoglobals // Shared immutable transformer chain
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold canonicalizes a raw value for table lookup: collapse whitespace,
// lowercase, strip diacritics.
func Fold(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	return s
}

// Clean collapses internal whitespace (including newlines left by table
// extractors) and trims the result. "None" and "NaN" cell artifacts become
// empty strings.
func Clean(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	switch strings.ToLower(s) {
	case "none", "nan":
		return ""
	}
	return s
}

//nolint:gochecknoglobals // Static alias tables for the built-in catalog
var builtinRecommendation = map[string]domain.RecommendationCategory{
	"activa":  domain.RecommendationActive,
	"vigente": domain.RecommendationActive,
	"valida":  domain.RecommendationActive,
	"si":      domain.RecommendationActive,
	"yes":     domain.RecommendationActive,
	"true":    domain.RecommendationActive,
	"1":       domain.RecommendationActive,

	"vencida":           domain.RecommendationInactive,
	"no vigente":        domain.RecommendationInactive,
	"pendiente":         domain.RecommendationInactive,
	"no":                domain.RecommendationInactive,
	"sin recomendacion": domain.RecommendationInactive,
	"false":             domain.RecommendationInactive,
	"0":                 domain.RecommendationInactive,

	"n/a":         domain.RecommendationUnknown,
	"na":          domain.RecommendationUnknown,
	"?":           domain.RecommendationUnknown,
	"-":           domain.RecommendationUnknown,
	"desconocido": domain.RecommendationUnknown,
}

//nolint:gochecknoglobals // Static alias tables for the built-in catalog
var builtinPriesthood = map[string]domain.PriesthoodCategory{
	"aaronico":   domain.PriesthoodAaronic,
	"aaronic":    domain.PriesthoodAaronic,
	"aaron":      domain.PriesthoodAaronic,
	"diacono":    domain.PriesthoodAaronic,
	"maestro":    domain.PriesthoodAaronic,
	"presbitero": domain.PriesthoodAaronic,

	"melquisedec":    domain.PriesthoodMelchizedek,
	"melchisedec":    domain.PriesthoodMelchizedek,
	"elder":          domain.PriesthoodMelchizedek,
	"presbitero (m)": domain.PriesthoodMelchizedek,
	"sumo sacerdote": domain.PriesthoodMelchizedek,

	"no ha sido ordenado": domain.PriesthoodNotOrdained,
	"no ordenado":         domain.PriesthoodNotOrdained,
	"sin ordenar":         domain.PriesthoodNotOrdained,
	"pendiente":           domain.PriesthoodNotOrdained,
}

//nolint:gochecknoglobals // Static alias tables for the built-in catalog
var builtinSex = map[string]domain.Sex{
	"m":         domain.SexMale,
	"masculino": domain.SexMale,
	"hombre":    domain.SexMale,
	"h":         domain.SexMale,
	"varon":     domain.SexMale,
	"male":      domain.SexMale,

	"f":        domain.SexFemale,
	"femenino": domain.SexFemale,
	"mujer":    domain.SexFemale,
	"female":   domain.SexFemale,
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		recommendation: builtinRecommendation,
		priesthood:     builtinPriesthood,
		sex:            builtinSex,

		priesthoodPhrases: sortLongestFirst([]string{
			"Aarónico", "Aaronico", "Melquisedec", "Elder",
			"Diácono", "Diacono", "Maestro", "Presbítero", "Presbitero",
			"Sumo Sacerdote",
			"No ha sido ordenado", "No ordenado", "Sin ordenar",
		}),
		recommendationPhrases: sortLongestFirst([]string{
			"Activa", "Vigente", "Valida", "Válida", "Vencida", "Pendiente",
			"Sin recomendación", "Sin recomendacion",
		}),

		priesthoodScanWords: []string{
			"aarónico", "aaronico", "elder", "melquisedec",
			"presbítero", "presbitero", "sumo sacerdote",
			"diácono", "diacono", "maestro",
			"no ha sido ordenado", "no ha sido", "no ordenado", "sin ordenar",
		},
		recommendationScanWords: []string{
			"activa", "vigente", "valida", "válida", "activo",
			"vencida", "pendiente", "sin recomendación", "sin recomendacion",
		},

		masculinePhrases: []string{
			"no ha sido ordenado",
			"aarónico", "aaronico", "elder", "melquisedec",
			"presbítero", "presbitero", "sumo sacerdote",
			"diácono", "diacono", "maestro",
		},

		activeHintWords: []string{"activa", "vigente", "valida", "válida", "activo"},

		unitPrefixes: []string{"barrio", "rama", "distrito", "estaca"},

		skipRowPrefixes: []string{
			"nombre", "lista", "recuento", "total", "subtotal", "suma",
			"count", "header", "encabezado", "nombre preferencia", "barrio",
		},

		placeholders: map[string]bool{
			"-": true, "n/a": true, "na": true, "?": true,
		},
	}
	return c
}

// RecommendationFor looks up the folded raw value in the recommendation table.
func (c *Catalog) RecommendationFor(raw string) (domain.RecommendationCategory, bool) {
	cat, ok := c.recommendation[Fold(raw)]
	return cat, ok
}

// PriesthoodFor looks up the folded raw value in the priesthood table.
func (c *Catalog) PriesthoodFor(raw string) (domain.PriesthoodCategory, bool) {
	cat, ok := c.priesthood[Fold(raw)]
	return cat, ok
}

// SexFor looks up the folded raw value in the sex table.
func (c *Catalog) SexFor(raw string) (domain.Sex, bool) {
	s, ok := c.sex[Fold(raw)]
	return s, ok
}

// IsPlaceholder reports whether the value is a no-data marker ("-", "N/A").
func (c *Catalog) IsPlaceholder(raw string) bool {
	return c.placeholders[Fold(raw)]
}

// PriesthoodPhrases returns the extraction phrases, longest first.
// The returned slice must not be modified.
func (c *Catalog) PriesthoodPhrases() []string { return c.priesthoodPhrases }

// RecommendationPhrases returns the extraction phrases, longest first.
// The returned slice must not be modified.
func (c *Catalog) RecommendationPhrases() []string { return c.recommendationPhrases }

// PriesthoodScanWords returns the lowercase substrings that flag a cell as
// holding a priesthood value. The returned slice must not be modified.
func (c *Catalog) PriesthoodScanWords() []string { return c.priesthoodScanWords }

// RecommendationScanWords returns the lowercase substrings that flag a cell
// as holding a recommendation value. The returned slice must not be modified.
func (c *Catalog) RecommendationScanWords() []string { return c.recommendationScanWords }

// MasculinePhrases returns the priesthood substrings that imply a male
// record, including the explicit "no ha sido ordenado" status.
func (c *Catalog) MasculinePhrases() []string { return c.masculinePhrases }

// ActiveHintWords returns the substrings that imply an active recommendation.
func (c *Catalog) ActiveHintWords() []string { return c.activeHintWords }

// UnitPrefixes returns the lowercase words that start a unit name.
func (c *Catalog) UnitPrefixes() []string { return c.unitPrefixes }

// SkipRowPrefixes returns lowercase prefixes marking header, footer, and
// summary rows that must never import as persons.
func (c *Catalog) SkipRowPrefixes() []string { return c.skipRowPrefixes }

// RegisteredAliases returns the aliases added on top of the built-in tables,
// in registration order. The returned slice must not be modified.
func (c *Catalog) RegisteredAliases() []Alias { return c.registered }

// WithAlias returns a new catalog with the raw value registered under the
// given category. The receiver is unchanged.
func (c *Catalog) WithAlias(field Field, raw, category string) (*Catalog, error) {
	folded := Fold(raw)
	if folded == "" {
		return nil, fmt.Errorf("alias value cannot be empty")
	}

	next := *c
	switch field {
	case FieldRecommendation:
		cat := domain.RecommendationCategory(category)
		switch cat {
		case domain.RecommendationActive, domain.RecommendationInactive, domain.RecommendationUnknown:
		default:
			return nil, fmt.Errorf("unknown recommendation category %q", category)
		}
		next.recommendation = cloneMap(c.recommendation)
		next.recommendation[folded] = cat
		next.recommendationScanWords = appendCopy(c.recommendationScanWords, folded)
		next.recommendationPhrases = sortLongestFirst(appendCopy(c.recommendationPhrases, Clean(raw)))

	case FieldPriesthood:
		cat := domain.PriesthoodCategory(category)
		switch cat {
		case domain.PriesthoodAaronic, domain.PriesthoodMelchizedek, domain.PriesthoodNotOrdained:
		default:
			return nil, fmt.Errorf("unknown priesthood category %q", category)
		}
		next.priesthood = cloneMap(c.priesthood)
		next.priesthood[folded] = cat
		next.priesthoodScanWords = appendCopy(c.priesthoodScanWords, folded)
		next.priesthoodPhrases = sortLongestFirst(appendCopy(c.priesthoodPhrases, Clean(raw)))
		if cat != domain.PriesthoodNotOrdained {
			next.masculinePhrases = appendCopy(c.masculinePhrases, folded)
		}

	case FieldSex:
		sex := domain.Sex(category)
		if sex != domain.SexMale && sex != domain.SexFemale {
			return nil, fmt.Errorf("unknown sex category %q", category)
		}
		next.sex = cloneMap(c.sex)
		next.sex[folded] = sex

	default:
		return nil, fmt.Errorf("unknown catalog field %q", field)
	}

	registered := make([]Alias, 0, len(c.registered)+1)
	registered = append(registered, c.registered...)
	registered = append(registered, Alias{Field: field, Raw: Clean(raw), Category: category})
	next.registered = registered
	return &next, nil
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func appendCopy(base []string, extra string) []string {
	out := make([]string, 0, len(base)+1)
	out = append(out, base...)
	if extra != "" {
		out = append(out, extra)
	}
	return out
}

// sortLongestFirst orders phrases so longer matches claim text before their
// substrings during extraction.
func sortLongestFirst(phrases []string) []string {
	out := make([]string, len(phrases))
	copy(out, phrases)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
