package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/id"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

func testPeriod(name string, pt domain.PeriodType, start, end time.Time) *domain.Period {
	return &domain.Period{
		ID:        id.MustGenerate(id.PrefixPeriod),
		Name:      name,
		Type:      pt,
		StartDate: start,
		EndDate:   end,
		Year:      start.Year(),
		CreatedAt: time.Now(),
	}
}

func TestCreatePeriod_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPeriod("Q1 2026", domain.PeriodQuarter,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, s.CreatePeriod(ctx, p))

	got, err := s.GetPeriod(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q1 2026", got.Name)
	assert.Equal(t, domain.PeriodQuarter, got.Type)
	assert.Equal(t, 2026, got.Year)
	assert.True(t, got.StartDate.Equal(p.StartDate))
	assert.True(t, got.EndDate.Equal(p.EndDate))
}

func TestCreatePeriod_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)

	require.NoError(t, s.CreatePeriod(ctx, testPeriod("2026", domain.PeriodYear, start, end)))

	err := s.CreatePeriod(ctx, testPeriod("2026", domain.PeriodYear, start, end))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// Names collide case-insensitively.
	err = s.CreatePeriod(ctx, testPeriod("q1 2026", domain.PeriodQuarter, start, end))
	require.NoError(t, err)
	err = s.CreatePeriod(ctx, testPeriod("Q1 2026", domain.PeriodQuarter, start, end))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetPeriodByName_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPeriod("Enero 2026", domain.PeriodMonth,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, s.CreatePeriod(ctx, p))

	got, err := s.GetPeriodByName(ctx, "enero 2026")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = s.GetPeriodByName(ctx, "Febrero 2026")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListPeriods_OrderedByStart(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	feb := testPeriod("Febrero 2026", domain.PeriodMonth,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC))
	jan := testPeriod("Enero 2026", domain.PeriodMonth,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, s.CreatePeriod(ctx, feb))
	require.NoError(t, s.CreatePeriod(ctx, jan))

	got, err := s.ListPeriods(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Enero 2026", got[0].Name)
	assert.Equal(t, "Febrero 2026", got[1].Name)
}
