package importer

import (
	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/tabular"
)

// Field is a canonical destination for one source column.
type Field string

const (
	FieldName             Field = "name"
	FieldAge              Field = "age"
	FieldPriesthood       Field = "priesthood"
	FieldRecommendation   Field = "recommendation"
	FieldCallings         Field = "callings"
	FieldUnit             Field = "unit"
	FieldConfirmationDate Field = "confirmation_date"
	FieldBirthDate        Field = "birth_date"
	FieldSex              Field = "sex"
)

// Mapping assigns source column indexes to canonical fields.
type Mapping map[int]Field

// positionalFields is the column order membership-system page extracts use.
// It matches the canonical order the table reconstructor emits.
//
//nolint:gochecknoglobals // Read-only
var positionalFields = map[int]Field{
	tabular.ColName:           FieldName,
	tabular.ColAge:            FieldAge,
	tabular.ColPriesthood:     FieldPriesthood,
	tabular.ColRecommendation: FieldRecommendation,
	tabular.ColCallings:       FieldCallings,
	tabular.ColUnit:           FieldUnit,
	tabular.ColDate:           FieldConfirmationDate,
}

// headerAliases maps folded header text to fields, for exports that carry a
// real header row. Matching is exact after folding, never substring, so a
// header like "nombre y fecha" does not silently half-match.
//
//nolint:gochecknoglobals // Read-only
var headerAliases = map[string]Field{
	"nombre preferencia":       FieldName,
	"nombre_preferencia":       FieldName,
	"nombre":                   FieldName,
	"edad":                     FieldAge,
	"edad al confirmar":        FieldAge,
	"edad_al_confirmar":        FieldAge,
	"sacerdocio":               FieldPriesthood,
	"estado recomendacion":     FieldRecommendation,
	"estado_recomendacion":     FieldRecommendation,
	"estado_recomendacion_raw": FieldRecommendation,
	"llamamientos":             FieldCallings,
	"unidad":                   FieldUnit,
	"fecha confirmacion":       FieldConfirmationDate,
	"fecha_confirmacion":       FieldConfirmationDate,
	"fecha de la confirmacion": FieldConfirmationDate,
	"fecha nacimiento":         FieldBirthDate,
	"fecha_nacimiento":         FieldBirthDate,
	"sexo":                     FieldSex,
}

// IsHeaderRow reports whether a row is a header rather than data: at least
// one cell matches a known header alias exactly.
func IsHeaderRow(row []string) bool {
	for _, cell := range row {
		if _, ok := headerAliases[catalog.Fold(cell)]; ok {
			return true
		}
	}
	return false
}

// MapHeader builds a mapping from a header row by exact alias match. The
// first column falls back to the name when nothing claimed it, because every
// known roster export leads with the person's name.
func MapHeader(header []string) Mapping {
	m := make(Mapping)
	claimed := make(map[Field]bool)

	for i, cell := range header {
		field, ok := headerAliases[catalog.Fold(cell)]
		if !ok || claimed[field] {
			continue
		}
		m[i] = field
		claimed[field] = true
	}

	if _, ok := m[0]; !ok && !claimed[FieldName] {
		m[0] = FieldName
	}
	return m
}

// MapPositional builds the fixed positional mapping for headerless tables.
func MapPositional() Mapping {
	m := make(Mapping, len(positionalFields))
	for i, f := range positionalFields {
		m[i] = f
	}
	return m
}

// apply projects one row through the mapping into a field/value map.
func (m Mapping) apply(row []string) map[Field]string {
	values := make(map[Field]string, len(m))
	for i, field := range m {
		if i < len(row) {
			values[field] = catalog.Clean(row[i])
		}
	}
	return values
}
