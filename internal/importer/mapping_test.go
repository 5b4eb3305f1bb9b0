package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHeaderRow(t *testing.T) {
	assert.True(t, IsHeaderRow([]string{"Nombre Preferencia", "Edad", "Sacerdocio"}))
	assert.True(t, IsHeaderRow([]string{"", "Estado Recomendación", ""}))
	assert.False(t, IsHeaderRow([]string{"Funes, Sandra", "25", "Élder"}))
}

func TestMapHeader(t *testing.T) {
	header := []string{
		"Nombre Preferencia", "Edad", "Sacerdocio", "Estado Recomendación",
		"Llamamientos", "Unidad", "Fecha Confirmación", "Fecha Nacimiento", "Sexo",
	}

	m := MapHeader(header)
	require.Len(t, m, 9)
	assert.Equal(t, FieldName, m[0])
	assert.Equal(t, FieldAge, m[1])
	assert.Equal(t, FieldPriesthood, m[2])
	assert.Equal(t, FieldRecommendation, m[3])
	assert.Equal(t, FieldCallings, m[4])
	assert.Equal(t, FieldUnit, m[5])
	assert.Equal(t, FieldConfirmationDate, m[6])
	assert.Equal(t, FieldBirthDate, m[7])
	assert.Equal(t, FieldSex, m[8])
}

func TestMapHeader_FirstColumnDefaultsToName(t *testing.T) {
	m := MapHeader([]string{"Miembro", "Unidad"})

	assert.Equal(t, FieldName, m[0])
	assert.Equal(t, FieldUnit, m[1])
}

func TestMapHeader_DuplicateHeadersClaimOnce(t *testing.T) {
	m := MapHeader([]string{"Unidad", "Unidad"})

	assert.Equal(t, FieldUnit, m[0])
	_, ok := m[1]
	assert.False(t, ok)
}

func TestMapPositional(t *testing.T) {
	m := MapPositional()

	require.Len(t, m, 7)
	assert.Equal(t, FieldName, m[0])
	assert.Equal(t, FieldConfirmationDate, m[6])
}

func TestMappingApply_IgnoresMissingColumns(t *testing.T) {
	m := MapPositional()
	values := m.apply([]string{"Funes, Sandra", "25"})

	assert.Equal(t, "Funes, Sandra", values[FieldName])
	assert.Equal(t, "25", values[FieldAge])
	assert.Empty(t, values[FieldUnit])
}
