package service

import (
	"context"
	"sort"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/indicator"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// KPIService answers indicator queries: the dashboard summary, per-indicator
// detail, trends and unit breakdowns.
type KPIService struct {
	calc     *indicator.Calculator
	resolver *indicator.Resolver
	periods  store.PeriodStore
	logger   *logger.Logger
}

// NewKPIService creates a KPI service.
func NewKPIService(calc *indicator.Calculator, resolver *indicator.Resolver, periods store.PeriodStore, log *logger.Logger) *KPIService {
	return &KPIService{
		calc:     calc,
		resolver: resolver,
		periods:  periods,
		logger:   log.WithComponent("kpi-service"),
	}
}

// DashboardEntry is the headline view of one indicator on the dashboard.
type DashboardEntry struct {
	Indicator  string        `json:"indicator"`
	Name       string        `json:"name"`
	Real       int           `json:"real"`
	Potential  int           `json:"potential"`
	Percentage *float64      `json:"percentage"`
	Target     float64       `json:"target"`
	Status     domain.Status `json:"status"`
	Comment    string        `json:"comment,omitempty"`
}

// Dashboard is the all-indicators summary for one period.
type Dashboard struct {
	Period     string           `json:"period"`
	Indicators []DashboardEntry `json:"indicators"`
}

// IndicatorDetail is the full result of one indicator plus its per-unit
// breakdown when the query was not already unit-scoped.
type IndicatorDetail struct {
	*domain.IndicatorResult
	ByUnit []domain.UnitBreakdown `json:"by_unit"`
}

// GetDashboard computes every indicator for the named period. An
// unresolvable period yields an empty dashboard rather than an error, since
// the dashboard always expects a renderable response.
func (s *KPIService) GetDashboard(ctx context.Context, periodName, unit string) (*Dashboard, error) {
	period, err := s.resolver.Resolve(ctx, periodName)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return &Dashboard{Period: periodName, Indicators: []DashboardEntry{}}, nil
		}
		return nil, err
	}

	results, err := s.calc.CalculateAll(ctx, period, unit)
	if err != nil {
		return nil, err
	}

	entries := make([]DashboardEntry, 0, len(results))
	for _, res := range results {
		entries = append(entries, DashboardEntry{
			Indicator:  res.Indicator,
			Name:       res.Name,
			Real:       res.Summary.Real,
			Potential:  res.Summary.Potential,
			Percentage: res.Summary.Percentage,
			Target:     res.Summary.Target,
			Status:     res.Summary.Status,
			Comment:    res.Summary.Comment,
		})
	}
	return &Dashboard{Period: periodName, Indicators: entries}, nil
}

// GetDetail computes one indicator in full. Unknown indicators and
// unresolvable periods are not-found errors here, unlike the dashboard.
func (s *KPIService) GetDetail(ctx context.Context, key, periodName, unit string) (*IndicatorDetail, error) {
	period, err := s.resolver.Resolve(ctx, periodName)
	if err != nil {
		return nil, err
	}

	result, err := s.calc.Calculate(ctx, key, period, unit)
	if err != nil {
		return nil, err
	}

	detail := &IndicatorDetail{
		IndicatorResult: result,
		ByUnit:          []domain.UnitBreakdown{},
	}
	if unit == "" {
		detail.ByUnit, err = s.calc.UnitBreakdown(ctx, key, period)
		if err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// GetTrend runs one indicator across the stored month periods of the year
// named (or implied) by the period label, in start-date order.
func (s *KPIService) GetTrend(ctx context.Context, key, periodName, unit string) ([]domain.TrendPoint, error) {
	year, ok := indicator.ExtractYear(periodName)
	if !ok {
		return nil, errors.Validationf("cannot extract a year from period %q", periodName)
	}

	months, err := s.monthPeriods(ctx, year)
	if err != nil {
		return nil, err
	}
	return s.calc.Trend(ctx, key, months, unit)
}

// GetUnitBreakdown ranks units by one indicator for the named period.
func (s *KPIService) GetUnitBreakdown(ctx context.Context, key, periodName string) ([]domain.UnitBreakdown, error) {
	period, err := s.resolver.Resolve(ctx, periodName)
	if err != nil {
		return nil, err
	}
	return s.calc.UnitBreakdown(ctx, key, period)
}

// GetMissing lists the eligible-but-not-succeeding records of one indicator
// for operator follow-up.
func (s *KPIService) GetMissing(ctx context.Context, key, periodName, unit string) ([]domain.MissingRecord, error) {
	period, err := s.resolver.Resolve(ctx, periodName)
	if err != nil {
		return nil, err
	}

	result, err := s.calc.Calculate(ctx, key, period, unit)
	if err != nil {
		return nil, err
	}
	return result.Missing, nil
}

func (s *KPIService) monthPeriods(ctx context.Context, year int) ([]*domain.Period, error) {
	all, err := s.periods.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}

	var months []*domain.Period
	for _, p := range all {
		if p.Year == year && p.Type == domain.PeriodMonth {
			months = append(months, p)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].StartDate.Before(months[j].StartDate)
	})
	return months, nil
}
