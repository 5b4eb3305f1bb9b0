// Package indicator computes eligibility-based KPI results over person
// records for a reporting period. Results are pure functions of the records
// and the period; nothing here is persisted.
package indicator

import (
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
)

// Indicator keys.
const (
	KeyConvertBaptisms            = "convert_baptisms"
	KeyConvertsWithRecommendation = "converts_with_recommendation"
	KeyConvertsOrdained           = "converts_ordained"
)

// recommendationAgeFloor is the exclusive age bound for recommendation
// eligibility: converts must be older than this at confirmation.
const recommendationAgeFloor = 12

// Definition describes one indicator: who counts in the denominator and what
// counts as success. Cumulative indicators have no predicates; every record
// in the period is the event being counted.
type Definition struct {
	Key  string
	Name string
	Kind domain.IndicatorKind

	Eligible func(*domain.Person) bool
	Succeeds func(*domain.Person) bool

	// Breakdown keys for the success/failure split.
	SuccessKey string
	FailureKey string

	// MissingReason annotates eligible records that do not yet succeed.
	MissingReason string
	// EmptyMessage is the warning raised when no record is eligible.
	EmptyMessage string
}

// Registry holds the known indicators in presentation order.
type Registry struct {
	defs         map[string]*Definition
	order        []string
	annualTarget float64
}

// NewRegistry builds the built-in indicator set. baptismAnnualTarget is the
// absolute yearly goal the cumulative baptism count is measured against.
func NewRegistry(baptismAnnualTarget float64) *Registry {
	defs := []*Definition{
		{
			Key:  KeyConvertBaptisms,
			Name: "Convert Baptisms",
			Kind: domain.IndicatorCumulative,
		},
		{
			Key:  KeyConvertsWithRecommendation,
			Name: "Converts with Active Recommendation",
			Kind: domain.IndicatorPercentage,
			Eligible: func(p *domain.Person) bool {
				return p.AgeAtConfirmation > recommendationAgeFloor
			},
			Succeeds: func(p *domain.Person) bool {
				return p.HasRecommendation != nil && *p.HasRecommendation
			},
			SuccessKey:    "with_active_recommendation",
			FailureKey:    "without_recommendation",
			MissingReason: "no active recommendation",
			EmptyMessage:  "no converts eligible for a recommendation in the period",
		},
		{
			Key:  KeyConvertsOrdained,
			Name: "Converts Ordained",
			Kind: domain.IndicatorPercentage,
			Eligible: func(p *domain.Person) bool {
				return p.IsMale()
			},
			Succeeds: func(p *domain.Person) bool {
				return p.IsOrdained
			},
			SuccessKey:    "ordained",
			FailureKey:    "not_ordained",
			MissingReason: "not ordained",
			EmptyMessage:  "no male converts eligible for ordination in the period",
		},
	}

	r := &Registry{
		defs:         make(map[string]*Definition, len(defs)),
		annualTarget: baptismAnnualTarget,
	}
	for _, def := range defs {
		r.defs[def.Key] = def
		r.order = append(r.order, def.Key)
	}
	return r
}

// Get returns the definition for a key, or a not-found error.
func (r *Registry) Get(key string) (*Definition, error) {
	def, ok := r.defs[key]
	if !ok {
		return nil, errors.NotFoundf("indicator %q not found", key)
	}
	return def, nil
}

// Keys returns the indicator keys in presentation order.
func (r *Registry) Keys() []string {
	return r.order
}

// AnnualTarget returns the cumulative baptism goal.
func (r *Registry) AnnualTarget() float64 {
	return r.annualTarget
}
