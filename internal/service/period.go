package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/id"
	"github.com/stakemetrics/stakemetrics-server/internal/indicator"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// monthNames are the Spanish month names used for seeded month periods.
//
//nolint:gochecknoglobals // Read-only
var monthNames = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// PeriodService manages reporting periods.
type PeriodService struct {
	store  store.PeriodStore
	logger *logger.Logger
}

// NewPeriodService creates a period service.
func NewPeriodService(st store.PeriodStore, log *logger.Logger) *PeriodService {
	return &PeriodService{
		store:  st,
		logger: log.WithComponent("period-service"),
	}
}

// CreatePeriodRequest describes a custom period.
type CreatePeriodRequest struct {
	Name      string
	Type      domain.PeriodType
	StartDate time.Time
	EndDate   time.Time
}

// ListPeriods returns stored periods, optionally filtered by year and type.
// Zero values leave a filter off.
func (s *PeriodService) ListPeriods(ctx context.Context, year int, periodType domain.PeriodType) ([]*domain.Period, error) {
	all, err := s.store.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Period, 0, len(all))
	for _, p := range all {
		if year != 0 && p.Year != year {
			continue
		}
		if periodType != "" && p.Type != periodType {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// CreatePeriod stores a custom period.
func (s *PeriodService) CreatePeriod(ctx context.Context, req CreatePeriodRequest) (*domain.Period, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, errors.Validation("period end date must be after its start date")
	}

	p := &domain.Period{
		ID:        id.MustGenerate(id.PrefixPeriod),
		Name:      req.Name,
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Year:      req.StartDate.Year(),
		CreatedAt: time.Now(),
	}
	if err := s.store.CreatePeriod(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SeedYear creates the standard period set for one year: twelve months, four
// quarters and the year itself. It refuses to run when the year already has
// periods, so reseeding never duplicates.
func (s *PeriodService) SeedYear(ctx context.Context, year int) ([]*domain.Period, error) {
	existing, err := s.ListPeriods(ctx, year, "")
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, errors.AlreadyExistsf("periods for %d already exist", year)
	}

	var created []*domain.Period
	add := func(name string, pt domain.PeriodType, start, end time.Time) error {
		p := &domain.Period{
			ID:        id.MustGenerate(id.PrefixPeriod),
			Name:      name,
			Type:      pt,
			StartDate: start,
			EndDate:   end,
			Year:      year,
			CreatedAt: time.Now(),
		}
		if err := s.store.CreatePeriod(ctx, p); err != nil {
			return fmt.Errorf("create period %q: %w", name, err)
		}
		created = append(created, p)
		return nil
	}

	for i, name := range monthNames {
		start, end := indicator.MonthRange(year, time.Month(i+1))
		if err := add(fmt.Sprintf("%s %d", name, year), domain.PeriodMonth, start, end); err != nil {
			return nil, err
		}
	}
	for q := 1; q <= 4; q++ {
		start, end := indicator.QuarterRange(year, q)
		if err := add(fmt.Sprintf("Q%d %d", q, year), domain.PeriodQuarter, start, end); err != nil {
			return nil, err
		}
	}
	yearStart, _ := indicator.MonthRange(year, time.January)
	_, yearEnd := indicator.MonthRange(year, time.December)
	if err := add(fmt.Sprintf("%d", year), domain.PeriodYear, yearStart, yearEnd); err != nil {
		return nil, err
	}

	s.logger.Info("seeded periods", "year", year, "count", len(created))
	return created, nil
}
