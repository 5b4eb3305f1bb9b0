package indicator

import (
	"context"
	"sort"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// Calculator runs indicator definitions against the active person data set.
type Calculator struct {
	store store.PersonStore
	reg   *Registry
	now   func() time.Time
}

// NewCalculator creates a calculator over the given store and registry.
func NewCalculator(personStore store.PersonStore, reg *Registry) *Calculator {
	return &Calculator{
		store: personStore,
		reg:   reg,
		now:   time.Now,
	}
}

// Registry returns the indicator registry backing this calculator.
func (c *Calculator) Registry() *Registry {
	return c.reg
}

// Calculate computes one indicator for a period, optionally scoped to a unit.
func (c *Calculator) Calculate(ctx context.Context, key string, period *domain.Period, unit string) (*domain.IndicatorResult, error) {
	def, err := c.reg.Get(key)
	if err != nil {
		return nil, err
	}

	persons, err := c.store.ListPersonsByConfirmationRange(ctx, period.StartDate, period.EndDate, unit)
	if err != nil {
		return nil, err
	}

	if def.Kind == domain.IndicatorCumulative {
		return c.cumulative(def, period, persons), nil
	}
	return c.percentage(def, period, persons), nil
}

// CalculateAll computes every registered indicator for a period.
func (c *Calculator) CalculateAll(ctx context.Context, period *domain.Period, unit string) ([]*domain.IndicatorResult, error) {
	results := make([]*domain.IndicatorResult, 0, len(c.reg.Keys()))
	for _, key := range c.reg.Keys() {
		res, err := c.Calculate(ctx, key, period, unit)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Trend runs one indicator across the given periods in order, yielding one
// point per period. Callers pass the month periods of a year for charting.
func (c *Calculator) Trend(ctx context.Context, key string, periods []*domain.Period, unit string) ([]domain.TrendPoint, error) {
	if _, err := c.reg.Get(key); err != nil {
		return nil, err
	}

	points := make([]domain.TrendPoint, 0, len(periods))
	for _, period := range periods {
		res, err := c.Calculate(ctx, key, period, unit)
		if err != nil {
			return nil, err
		}
		points = append(points, domain.TrendPoint{
			PeriodLabel: period.Name,
			Real:        res.Summary.Real,
			Potential:   res.Summary.Potential,
			Percentage:  res.Summary.Percentage,
		})
	}
	return points, nil
}

// UnitBreakdown recomputes one indicator once per distinct unit present in
// the period, sorted by descending real count.
func (c *Calculator) UnitBreakdown(ctx context.Context, key string, period *domain.Period) ([]domain.UnitBreakdown, error) {
	if _, err := c.reg.Get(key); err != nil {
		return nil, err
	}

	persons, err := c.store.ListPersonsByConfirmationRange(ctx, period.StartDate, period.EndDate, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var units []string
	for _, p := range persons {
		if p.Unit != "" && !seen[p.Unit] {
			seen[p.Unit] = true
			units = append(units, p.Unit)
		}
	}

	breakdown := make([]domain.UnitBreakdown, 0, len(units))
	for _, unit := range units {
		res, err := c.Calculate(ctx, key, period, unit)
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, domain.UnitBreakdown{
			Unit:       unit,
			Real:       res.Summary.Real,
			Potential:  res.Summary.Potential,
			Percentage: res.Summary.Percentage,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Real > breakdown[j].Real
	})
	return breakdown, nil
}

// cumulative counts every in-period record against the annual target. The
// event already happened, so potential equals real and the percentage slot
// stays empty; progress is measured against the target instead.
func (c *Calculator) cumulative(def *Definition, period *domain.Period, persons []*domain.Person) *domain.IndicatorResult {
	real := len(persons)
	target := c.reg.AnnualTarget()

	var progress float64
	if target > 0 {
		progress = float64(real) / target * 100
	}

	breakdown := map[string]int{"total_converts": real}
	for _, p := range persons {
		breakdown[p.ConfirmationDate.Format("2006-01")]++
	}

	return &domain.IndicatorResult{
		Indicator: def.Key,
		Name:      def.Name,
		Period:    periodRef(period),
		Summary: domain.Summary{
			Real:           real,
			Potential:      real,
			Percentage:     nil,
			Target:         target,
			DeltaToTarget:  float64(real) - target,
			TargetProgress: progress,
			Status:         statusFor(progress),
		},
		Breakdown: breakdown,
		Eligible:  personRefs(persons),
		Missing:   []domain.MissingRecord{},
		Warnings:  []domain.Warning{},
	}
}

// percentage partitions in-period records by eligibility and success.
func (c *Calculator) percentage(def *Definition, period *domain.Period, persons []*domain.Person) *domain.IndicatorResult {
	var eligible, succeeding, failing []*domain.Person
	for _, p := range persons {
		if !def.Eligible(p) {
			continue
		}
		eligible = append(eligible, p)
		if def.Succeeds(p) {
			succeeding = append(succeeding, p)
		} else {
			failing = append(failing, p)
		}
	}

	real := len(succeeding)
	potential := len(eligible)

	var pct float64
	if potential > 0 {
		pct = float64(real) / float64(potential) * 100
	}

	warnings := []domain.Warning{}
	comment := ""
	if potential == 0 {
		warnings = append(warnings, domain.Warning{
			Kind:    "no_eligible_records",
			Message: def.EmptyMessage,
		})
		comment = def.EmptyMessage
	}

	return &domain.IndicatorResult{
		Indicator: def.Key,
		Name:      def.Name,
		Period:    periodRef(period),
		Summary: domain.Summary{
			Real:          real,
			Potential:     potential,
			Percentage:    &pct,
			Target:        100,
			DeltaToTarget: pct - 100,
			Status:        statusFor(pct),
			Comment:       comment,
		},
		Breakdown: map[string]int{
			"eligible":     potential,
			"ineligible":   len(persons) - potential,
			"unclassified": 0,
			def.SuccessKey: real,
			def.FailureKey: len(failing),
		},
		Eligible:   personRefs(eligible),
		Succeeding: personRefs(succeeding),
		Missing:    c.missingRecords(failing, def.MissingReason),
		Warnings:   warnings,
	}
}

// statusFor applies the fixed traffic-light thresholds.
func statusFor(pct float64) domain.Status {
	switch {
	case pct >= 90:
		return domain.StatusGreen
	case pct >= 70:
		return domain.StatusAmber
	default:
		return domain.StatusRed
	}
}

// missingRecords annotates eligible-but-not-succeeding records for operator
// follow-up.
func (c *Calculator) missingRecords(persons []*domain.Person, reason string) []domain.MissingRecord {
	missing := make([]domain.MissingRecord, 0, len(persons))
	now := c.now()
	for _, p := range persons {
		missing = append(missing, domain.MissingRecord{
			ID:               p.ID,
			Name:             p.PreferredName,
			Unit:             p.Unit,
			Reason:           reason,
			ConfirmationDate: p.ConfirmationDate,
			DaysSince:        int(now.Sub(p.ConfirmationDate).Hours() / 24),
		})
	}
	return missing
}

func periodRef(p *domain.Period) domain.PeriodRef {
	return domain.PeriodRef{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
	}
}

func personRefs(persons []*domain.Person) []domain.PersonRef {
	refs := make([]domain.PersonRef, 0, len(persons))
	for _, p := range persons {
		refs = append(refs, domain.PersonRef{ID: p.ID, Name: p.PreferredName, Unit: p.Unit})
	}
	return refs
}
