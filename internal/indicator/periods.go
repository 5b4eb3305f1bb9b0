package indicator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

//nolint:gochecknoglobals // Compiled once, read-only
var (
	bareYearRE = regexp.MustCompile(`^\d{4}$`)
	quarterRE  = regexp.MustCompile(`^(?:(\d{4})\s*q([1-4])|q([1-4])\s*(\d{4}))$`)
	yearRE     = regexp.MustCompile(`\d{4}`)
)

// Resolver turns period names into periods: stored rows first, then common
// quarter spellings, then a virtual period synthesized from the name itself.
type Resolver struct {
	periods store.PeriodStore
}

// NewResolver creates a period resolver.
func NewResolver(periods store.PeriodStore) *Resolver {
	return &Resolver{periods: periods}
}

// Resolve finds the period a name refers to. Quarter names match any of the
// common spellings ("Q1 2026", "2026-Q1", "2026 Q1") regardless of which one
// was stored. Names matching no stored period but following a recognizable
// pattern yield a virtual period; anything else is a not-found error.
func (r *Resolver) Resolve(ctx context.Context, name string) (*domain.Period, error) {
	p, err := r.periods.GetPeriodByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if year, quarter, ok := parseQuarterName(name); ok {
		for _, alias := range quarterAliases(year, quarter) {
			if p, err := r.periods.GetPeriodByName(ctx, alias); err == nil {
				return p, nil
			} else if !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
		}
	}

	if p := VirtualPeriod(name); p != nil {
		return p, nil
	}
	return nil, errors.NotFoundf("period %q not found", name)
}

// ExtractYear pulls the 4-digit year out of any period name, for trend
// requests that take a year-bearing period label.
func ExtractYear(name string) (int, bool) {
	m := yearRE.FindString(name)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

// VirtualPeriod synthesizes a period from a recognizable name pattern: a bare
// 4-digit year, or a quarter in "Qn YYYY" / "YYYY-Qn" form. Returns nil when
// the name matches neither. Virtual periods are never persisted.
func VirtualPeriod(name string) *domain.Period {
	text := strings.TrimSpace(name)

	if bareYearRE.MatchString(text) {
		year, _ := strconv.Atoi(text)
		return &domain.Period{
			ID:        "virtual-" + text,
			Name:      text,
			Type:      domain.PeriodYear,
			StartDate: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   endOfDay(time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)),
			Year:      year,
			IsVirtual: true,
		}
	}

	if year, quarter, ok := parseQuarterName(text); ok {
		start, end := QuarterRange(year, quarter)
		return &domain.Period{
			ID:        "virtual-" + text,
			Name:      text,
			Type:      domain.PeriodQuarter,
			StartDate: start,
			EndDate:   end,
			Year:      year,
			IsVirtual: true,
		}
	}
	return nil
}

// QuarterRange returns the inclusive date range of a calendar quarter.
func QuarterRange(year, quarter int) (start, end time.Time) {
	startMonth := time.Month((quarter-1)*3 + 1)
	start = time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end = endOfDay(start.AddDate(0, 3, -1))
	return start, end
}

// MonthRange returns the inclusive date range of a calendar month.
func MonthRange(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = endOfDay(start.AddDate(0, 1, -1))
	return start, end
}

func parseQuarterName(name string) (year, quarter int, ok bool) {
	folded := strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(name, "-", " "))), " ")
	m := quarterRE.FindStringSubmatch(folded)
	if m == nil {
		return 0, 0, false
	}
	if m[1] != "" {
		year, _ = strconv.Atoi(m[1])
		quarter, _ = strconv.Atoi(m[2])
	} else {
		quarter, _ = strconv.Atoi(m[3])
		year, _ = strconv.Atoi(m[4])
	}
	return year, quarter, true
}

func quarterAliases(year, quarter int) []string {
	return []string{
		fmt.Sprintf("Q%d %d", quarter, year),
		fmt.Sprintf("%d-Q%d", year, quarter),
		fmt.Sprintf("%d Q%d", year, quarter),
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
