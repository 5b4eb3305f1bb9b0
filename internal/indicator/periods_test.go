package indicator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

type fakePeriodStore struct {
	periods []*domain.Period
}

func (f *fakePeriodStore) CreatePeriod(_ context.Context, p *domain.Period) error {
	f.periods = append(f.periods, p)
	return nil
}

func (f *fakePeriodStore) GetPeriod(_ context.Context, id string) (*domain.Period, error) {
	for _, p := range f.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePeriodStore) GetPeriodByName(_ context.Context, name string) (*domain.Period, error) {
	for _, p := range f.periods {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePeriodStore) ListPeriods(context.Context) ([]*domain.Period, error) {
	return f.periods, nil
}

func TestResolve_StoredPeriodWins(t *testing.T) {
	stored := &domain.Period{ID: "prd-1", Name: "Enero 2026", Type: domain.PeriodMonth}
	r := NewResolver(&fakePeriodStore{periods: []*domain.Period{stored}})

	got, err := r.Resolve(context.Background(), "enero 2026")
	require.NoError(t, err)
	assert.Equal(t, "prd-1", got.ID)
	assert.False(t, got.IsVirtual)
}

func TestResolve_QuarterAliasSpellings(t *testing.T) {
	stored := &domain.Period{ID: "prd-q1", Name: "Q1 2026", Type: domain.PeriodQuarter}
	r := NewResolver(&fakePeriodStore{periods: []*domain.Period{stored}})

	for _, name := range []string{"2026-Q1", "2026 Q1", "q1 2026"} {
		got, err := r.Resolve(context.Background(), name)
		require.NoError(t, err, "name=%q", name)
		assert.Equal(t, "prd-q1", got.ID, "name=%q", name)
	}
}

func TestResolve_VirtualYear(t *testing.T) {
	r := NewResolver(&fakePeriodStore{})

	got, err := r.Resolve(context.Background(), "2026")
	require.NoError(t, err)
	assert.True(t, got.IsVirtual)
	assert.Equal(t, domain.PeriodYear, got.Type)
	assert.Equal(t, 2026, got.Year)
	assert.True(t, got.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.EndDate.Equal(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestResolve_VirtualQuarter(t *testing.T) {
	r := NewResolver(&fakePeriodStore{})

	got, err := r.Resolve(context.Background(), "Q2 2026")
	require.NoError(t, err)
	assert.True(t, got.IsVirtual)
	assert.Equal(t, domain.PeriodQuarter, got.Type)
	assert.True(t, got.StartDate.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.EndDate.Equal(time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)))

	got, err = r.Resolve(context.Background(), "2026-Q4")
	require.NoError(t, err)
	assert.True(t, got.EndDate.Equal(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestResolve_UnknownName(t *testing.T) {
	r := NewResolver(&fakePeriodStore{})

	_, err := r.Resolve(context.Background(), "cuando sea")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestVirtualPeriod_UnrecognizedPatterns(t *testing.T) {
	assert.Nil(t, VirtualPeriod("Enero 2026"))
	assert.Nil(t, VirtualPeriod("Q5 2026"))
	assert.Nil(t, VirtualPeriod("202"))
}

func TestQuarterAndMonthRanges(t *testing.T) {
	start, end := QuarterRange(2026, 1)
	assert.True(t, start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)))

	start, end = MonthRange(2026, time.February)
	assert.True(t, start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)))
}

func TestExtractYear(t *testing.T) {
	year, ok := ExtractYear("Q3 2026")
	require.True(t, ok)
	assert.Equal(t, 2026, year)

	_, ok = ExtractYear("sin año")
	assert.False(t, ok)
}
