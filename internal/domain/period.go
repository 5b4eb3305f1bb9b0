package domain

import "time"

// PeriodType classifies the span of a reporting period.
type PeriodType string

const (
	// PeriodMonth is a single calendar month.
	PeriodMonth PeriodType = "month"
	// PeriodQuarter is a calendar quarter.
	PeriodQuarter PeriodType = "quarter"
	// PeriodYear is a full calendar year.
	PeriodYear PeriodType = "year"
)

// Period is a named reporting date range.
//
// Stored periods are created administratively. A virtual period (IsVirtual)
// is synthesized on the fly when a request names a recognizable pattern
// ("2026", "Q1 2026", "2026-Q1") that has no stored row; virtual periods are
// never persisted.
type Period struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      PeriodType `json:"type"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Year      int        `json:"year"`
	IsVirtual bool       `json:"is_virtual,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
}

// Contains reports whether t falls within the period, inclusive of both ends.
func (p *Period) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}
