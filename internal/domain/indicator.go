package domain

import "time"

// IndicatorKind distinguishes how an indicator's percentage is interpreted.
type IndicatorKind string

const (
	// IndicatorCumulative counts events against an absolute annual target.
	// The real/potential percentage is not meaningful for this kind.
	IndicatorCumulative IndicatorKind = "cumulative"
	// IndicatorPercentage compares succeeding records against eligible ones.
	IndicatorPercentage IndicatorKind = "percentage"
)

// Status is the traffic-light rating for an indicator result.
type Status string

const (
	// StatusGreen means the percentage is at or above 90.
	StatusGreen Status = "green"
	// StatusAmber means the percentage is at or above 70 but below 90.
	StatusAmber Status = "amber"
	// StatusRed means the percentage is below 70.
	StatusRed Status = "red"
)

// PeriodRef is the compact period echo embedded in indicator output.
type PeriodRef struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Summary carries the headline numbers of one indicator calculation.
type Summary struct {
	Real          int      `json:"real"`
	Potential     int      `json:"potential"`
	Percentage    *float64 `json:"percentage"` // nil for cumulative indicators
	Target        float64  `json:"target"`
	DeltaToTarget float64  `json:"delta_to_target"`
	// TargetProgress is the cumulative real count as a percentage of the
	// annual target; zero for percentage indicators.
	TargetProgress float64 `json:"target_progress,omitempty"`
	Status         Status  `json:"status"`
	Comment        string  `json:"comment,omitempty"`
}

// MissingRecord is an eligible record that does not yet meet the success
// predicate, annotated for operator follow-up.
type MissingRecord struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Unit             string    `json:"unit,omitempty"`
	Reason           string    `json:"reason"`
	ConfirmationDate time.Time `json:"confirmation_date"`
	DaysSince        int       `json:"days_since"`
}

// Warning is a structured advisory attached to an indicator result.
type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// PersonRef is a compact person reference listed in indicator detail.
type PersonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// IndicatorResult is the full output of one indicator calculation for one
// period, optionally scoped to one unit. It is recomputed on every request
// and never persisted.
type IndicatorResult struct {
	Indicator string    `json:"indicator"`
	Name      string    `json:"name"`
	Period    PeriodRef `json:"period"`
	Summary   Summary   `json:"summary"`

	// Breakdown holds eligibility partition counts plus indicator-specific
	// counters (per-month buckets for cumulative indicators, success/failure
	// splits for percentage ones).
	Breakdown map[string]int `json:"breakdown"`

	Eligible   []PersonRef     `json:"eligible,omitempty"`
	Succeeding []PersonRef     `json:"succeeding,omitempty"`
	Missing    []MissingRecord `json:"missing"`
	Warnings   []Warning       `json:"warnings"`
}

// TrendPoint is one period's worth of a trend series.
type TrendPoint struct {
	PeriodLabel string   `json:"period_label"`
	Real        int      `json:"real"`
	Potential   int      `json:"potential"`
	Percentage  *float64 `json:"percentage"`
}

// UnitBreakdown is one unit's slice of an indicator, used for ranking units.
type UnitBreakdown struct {
	Unit       string   `json:"unit"`
	Real       int      `json:"real"`
	Potential  int      `json:"potential"`
	Percentage *float64 `json:"percentage"`
}
