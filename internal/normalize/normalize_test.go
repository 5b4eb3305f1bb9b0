package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
)

func newNormalizer() *Normalizer {
	return New(catalog.Default())
}

func TestRecommendation(t *testing.T) {
	n := newNormalizer()

	tests := []struct {
		name     string
		raw      string
		wantHas  *bool
		wantCat  domain.RecommendationCategory
	}{
		{"active", "Activa", boolPtr(true), domain.RecommendationActive},
		{"active vigente", "VIGENTE", boolPtr(true), domain.RecommendationActive},
		{"inactive vencida", "Vencida", boolPtr(false), domain.RecommendationInactive},
		{"inactive pendiente", "Pendiente", boolPtr(false), domain.RecommendationInactive},
		{"inactive sin recomendacion", "Sin recomendación", boolPtr(false), domain.RecommendationInactive},
		{"empty", "", nil, domain.RecommendationUnknown},
		{"placeholder", "N/A", nil, domain.RecommendationUnknown},
		{"whitespace collapse", "No \n vigente", boolPtr(false), domain.RecommendationInactive},
		{"unmatched with active hint", "Recomendación activa limitada", boolPtr(true), domain.RecommendationUnknown},
		{"unmatched without hint", "estado raro", boolPtr(false), domain.RecommendationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			has, cat := n.Recommendation(tt.raw)
			assert.Equal(t, tt.wantCat, cat)
			if tt.wantHas == nil {
				assert.Nil(t, has)
			} else {
				require.NotNil(t, has)
				assert.Equal(t, *tt.wantHas, *has)
			}
		})
	}
}

func TestPriesthood(t *testing.T) {
	n := newNormalizer()

	tests := []struct {
		name         string
		raw          string
		wantCat      domain.PriesthoodCategory
		wantOrdained bool
	}{
		{"aaronic", "Diácono", domain.PriesthoodAaronic, true},
		{"melchizedek", "Melquisedec", domain.PriesthoodMelchizedek, true},
		{"melchizedek elder", "Élder", domain.PriesthoodMelchizedek, true},
		{"explicit not ordained", "No ha sido ordenado", domain.PriesthoodNotOrdained, false},
		{"empty is unknown", "", domain.PriesthoodUnknown, false},
		{"dash placeholder is unknown", "-", domain.PriesthoodUnknown, false},
		{"na placeholder is unknown", "N/A", domain.PriesthoodUnknown, false},
		{"unmatched falls back to not ordained", "obispo", domain.PriesthoodNotOrdained, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ordained := n.Priesthood(tt.raw)
			assert.Equal(t, tt.wantCat, cat)
			assert.Equal(t, tt.wantOrdained, ordained)
		})
	}
}

func TestSex(t *testing.T) {
	n := newNormalizer()

	assert.Equal(t, domain.SexMale, n.Sex("M"))
	assert.Equal(t, domain.SexMale, n.Sex("Varón"))
	assert.Equal(t, domain.SexFemale, n.Sex("mujer"))
	assert.Equal(t, domain.SexUnknown, n.Sex(""))
	assert.Equal(t, domain.SexUnknown, n.Sex("X"))
}

func TestInferSexFromPriesthood(t *testing.T) {
	n := newNormalizer()

	assert.Equal(t, domain.SexMale, n.InferSexFromPriesthood("Melquisedec"))
	assert.Equal(t, domain.SexMale, n.InferSexFromPriesthood("Diácono"))
	// An explicit "never ordained" entry still only exists for men.
	assert.Equal(t, domain.SexMale, n.InferSexFromPriesthood("No ha sido ordenado"))
	assert.Equal(t, domain.SexUnknown, n.InferSexFromPriesthood(""))
	assert.Equal(t, domain.SexUnknown, n.InferSexFromPriesthood("-"))
}

func TestAge(t *testing.T) {
	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Anniversary already passed.
	got, ok := Age(birth, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 25, got)

	// Anniversary not yet reached.
	got, ok = Age(birth, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 24, got)

	// Exactly on the anniversary.
	got, ok = Age(birth, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 25, got)

	_, ok = Age(time.Time{}, time.Now())
	assert.False(t, ok)
}

func TestRescueScan_FillsOnlyEmptyFields(t *testing.T) {
	n := newNormalizer()

	cells := []string{"Funes, Sandra", "Elder", "Activa", "Barrio Centro"}

	pri, rec := n.RescueScan(cells, "", "")
	assert.Equal(t, "Elder", pri)
	assert.Equal(t, "Activa", rec)

	// A value already present always wins.
	pri, rec = n.RescueScan(cells, "Diácono", "Vencida")
	assert.Equal(t, "Diácono", pri)
	assert.Equal(t, "Vencida", rec)
}

func TestRescueScan_IgnoresArtifacts(t *testing.T) {
	n := newNormalizer()

	pri, rec := n.RescueScan([]string{"None", "nan", ""}, "", "")
	assert.Equal(t, "", pri)
	assert.Equal(t, "", rec)
}

func TestLooksLikeRecommendation(t *testing.T) {
	n := newNormalizer()

	assert.True(t, n.LooksLikeRecommendation("Activa"))
	assert.True(t, n.LooksLikeRecommendation("Vigente"))
	assert.True(t, n.LooksLikeRecommendation("válida"))
	assert.False(t, n.LooksLikeRecommendation("Elder"))
	assert.False(t, n.LooksLikeRecommendation(""))
}

func TestDefaultAgeWhenUnknown(t *testing.T) {
	assert.Equal(t, 18, DefaultAgeWhenUnknown)
}
