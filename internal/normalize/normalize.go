// Package normalize converts raw roster values to canonical categories using
// the active normalization catalog.
//
// Every function here is total: unrecognized input degrades to an unknown or
// conservative category, never an error, so one odd cell cannot sink an
// import.
package normalize

import (
	"strings"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
)

// DefaultAgeWhenUnknown is assumed when a row carries no usable age, so the
// record still participates in age-gated indicators as an adult.
const DefaultAgeWhenUnknown = 18

// Normalizer applies one catalog version to raw field values.
type Normalizer struct {
	cat *catalog.Catalog
}

// New creates a normalizer over the given catalog.
func New(cat *catalog.Catalog) *Normalizer {
	return &Normalizer{cat: cat}
}

// Catalog returns the catalog backing this normalizer.
func (n *Normalizer) Catalog() *catalog.Catalog {
	return n.cat
}

// Recommendation normalizes a recommendation-status value.
//
// The returned pointer is nil when the status is unknown, true for an active
// recommendation, false for an expired, pending, or absent one. When the full
// value matches no alias, word hints decide: an active word anywhere in the
// value means true, any other non-empty value means false.
func (n *Normalizer) Recommendation(raw string) (*bool, domain.RecommendationCategory) {
	cleaned := catalog.Clean(raw)
	if cleaned == "" {
		return nil, domain.RecommendationUnknown
	}

	if cat, ok := n.cat.RecommendationFor(cleaned); ok {
		switch cat {
		case domain.RecommendationActive:
			return boolPtr(true), cat
		case domain.RecommendationInactive:
			return boolPtr(false), cat
		default:
			return nil, domain.RecommendationUnknown
		}
	}

	// No alias matched: the category stays unknown so the value surfaces in
	// the unrecognized-value report, but word hints still decide the flag.
	folded := catalog.Fold(cleaned)
	for _, hint := range n.cat.ActiveHintWords() {
		if strings.Contains(folded, catalog.Fold(hint)) {
			return boolPtr(true), domain.RecommendationUnknown
		}
	}
	return boolPtr(false), domain.RecommendationUnknown
}

// Priesthood normalizes a priesthood value.
//
// Empty values and placeholders carry no information at all, so they return
// the unknown category and never imply a sex. Any other unmatched value is
// assumed to mean the person is not ordained.
func (n *Normalizer) Priesthood(raw string) (domain.PriesthoodCategory, bool) {
	cleaned := catalog.Clean(raw)
	if cleaned == "" || n.cat.IsPlaceholder(cleaned) {
		return domain.PriesthoodUnknown, false
	}

	if cat, ok := n.cat.PriesthoodFor(cleaned); ok {
		if cat == domain.PriesthoodAaronic || cat == domain.PriesthoodMelchizedek {
			return cat, true
		}
		return domain.PriesthoodNotOrdained, false
	}

	return domain.PriesthoodNotOrdained, false
}

// Sex normalizes a sex marker. Unrecognized values return SexUnknown.
func (n *Normalizer) Sex(raw string) domain.Sex {
	cleaned := catalog.Clean(raw)
	if cleaned == "" {
		return domain.SexUnknown
	}
	if s, ok := n.cat.SexFor(cleaned); ok {
		return s
	}
	return domain.SexUnknown
}

// InferSexFromPriesthood returns SexMale when the raw priesthood value names
// a masculine office, including the explicit "no ha sido ordenado" status.
// The roster only records priesthood for men, so the field doubles as a sex
// signal when the sex column is empty.
func (n *Normalizer) InferSexFromPriesthood(raw string) domain.Sex {
	folded := catalog.Fold(raw)
	if folded == "" {
		return domain.SexUnknown
	}
	for _, phrase := range n.cat.MasculinePhrases() {
		if strings.Contains(folded, catalog.Fold(phrase)) {
			return domain.SexMale
		}
	}
	return domain.SexUnknown
}

// Age computes whole years between birth and ref, subtracting one when the
// anniversary has not yet arrived. Returns false when birth is zero.
func Age(birth, ref time.Time) (int, bool) {
	if birth.IsZero() {
		return 0, false
	}
	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	return years, true
}

// RescueScan looks through every cell of a row for priesthood or
// recommendation values that a mangled extraction left in the wrong column.
// Only empty targets are filled; a value already present always wins.
func (n *Normalizer) RescueScan(cells []string, currentPriesthood, currentRecommendation string) (priesthood, recommendation string) {
	priesthood = catalog.Clean(currentPriesthood)
	recommendation = catalog.Clean(currentRecommendation)

	for _, cell := range cells {
		cleaned := catalog.Clean(cell)
		if cleaned == "" {
			continue
		}
		folded := catalog.Fold(cleaned)

		if priesthood == "" && containsAny(folded, n.cat.PriesthoodScanWords()) {
			priesthood = cleaned
		}
		if recommendation == "" && containsAny(folded, n.cat.RecommendationScanWords()) {
			recommendation = cleaned
		}
	}
	return priesthood, recommendation
}

// LooksLikeRecommendation reports whether a value names an active
// recommendation state. The importer uses this to move recommendation text
// that landed in the priesthood column.
func (n *Normalizer) LooksLikeRecommendation(raw string) bool {
	folded := catalog.Fold(raw)
	for _, hint := range n.cat.ActiveHintWords() {
		if folded == catalog.Fold(hint) {
			return true
		}
	}
	return false
}

func containsAny(folded string, words []string) bool {
	for _, w := range words {
		if strings.Contains(folded, catalog.Fold(w)) {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool { return &b }
