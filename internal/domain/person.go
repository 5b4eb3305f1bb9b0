// Package domain defines the core types for the StakeMetrics server.
package domain

import "time"

// Sex is the normalized sex marker for a person record.
type Sex string

const (
	// SexMale is the canonical marker for male records.
	SexMale Sex = "M"
	// SexFemale is the canonical marker for female records.
	SexFemale Sex = "F"
	// SexUnknown means the source carried no recognizable sex value.
	SexUnknown Sex = ""
)

// PriesthoodCategory is the canonical priesthood classification.
type PriesthoodCategory string

const (
	// PriesthoodAaronic covers deacon, teacher and priest offices.
	PriesthoodAaronic PriesthoodCategory = "aaronic"
	// PriesthoodMelchizedek covers elder and high priest offices.
	PriesthoodMelchizedek PriesthoodCategory = "melchizedek"
	// PriesthoodNotOrdained is recorded when the source explicitly says the
	// person holds no office, and as the fallback for unrecognized non-empty
	// priesthood text.
	PriesthoodNotOrdained PriesthoodCategory = "not_ordained"
	// PriesthoodUnknown means the priesthood field was empty or a placeholder.
	// Unlike PriesthoodNotOrdained it carries no sex signal.
	PriesthoodUnknown PriesthoodCategory = ""
)

// RecommendationCategory is the canonical recommendation-status classification.
type RecommendationCategory string

const (
	// RecommendationActive means the person holds a current recommendation.
	RecommendationActive RecommendationCategory = "active"
	// RecommendationInactive means the recommendation is expired, pending or absent.
	RecommendationInactive RecommendationCategory = "inactive"
	// RecommendationUnknown means the raw value matched no registered alias.
	RecommendationUnknown RecommendationCategory = "unknown"
)

// Person is one individual imported from a membership roster.
//
// Raw fields keep the source text verbatim; normalized fields are derived at
// import time and never recomputed unless the record is enriched.
type Person struct {
	ID string `json:"id"`

	// Source fields, verbatim after whitespace cleanup.
	PreferredName     string `json:"preferred_name"`
	PriesthoodRaw     string `json:"priesthood_raw,omitempty"`
	RecommendationRaw string `json:"recommendation_raw,omitempty"`
	Callings          string `json:"callings,omitempty"`
	Unit              string `json:"unit,omitempty"`

	ConfirmationDate time.Time  `json:"confirmation_date"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`

	// Normalized fields.
	Priesthood        PriesthoodCategory `json:"priesthood,omitempty"`
	HasRecommendation *bool              `json:"has_recommendation"`
	IsOrdained        bool               `json:"is_ordained"`
	Sex               Sex                `json:"sex,omitempty"`
	AgeAtConfirmation int                `json:"age_at_confirmation"`

	// Enrichment audit fields, set by an operator after import.
	Enriched   bool       `json:"enriched"`
	EnrichedBy string     `json:"enriched_by,omitempty"`
	EnrichedAt *time.Time `json:"enriched_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`

	// Import audit fields.
	DocumentID string    `json:"document_id"`
	RowNumber  int       `json:"row_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsMale reports whether the record should count as male for eligibility
// purposes. An explicit sex marker wins; otherwise any explicit priesthood
// classification implies male, because the source only records priesthood
// for men (including the literal "not yet ordained" status).
func (p *Person) IsMale() bool {
	if p.Sex == SexMale {
		return true
	}
	if p.Sex == SexFemale {
		return false
	}
	return p.Priesthood != PriesthoodUnknown
}
