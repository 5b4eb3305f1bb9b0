package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/indicator"
	"github.com/stakemetrics/stakemetrics-server/internal/store/sqlite"
)

func newKPIService(t *testing.T) (*KPIService, *sqlite.Store) {
	t.Helper()

	st := newTestStore(t)
	log := newTestLogger()
	calc := indicator.NewCalculator(st, indicator.NewRegistry(168))
	svc := NewKPIService(calc, indicator.NewResolver(st), st, log)
	return svc, st
}

func seedKPIData(t *testing.T, st *sqlite.Store) {
	t.Helper()

	periods := NewPeriodService(st, newTestLogger())
	_, err := periods.SeedYear(context.Background(), 2025)
	require.NoError(t, err)

	sandra := confirmedPerson("Sandra Pérez", "Barrio Centro", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	rec := true
	sandra.HasRecommendation = &rec

	luis := confirmedPerson("Luis Gómez", "Barrio Norte", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC))
	luis.Priesthood = domain.PriesthoodMelchizedek
	luis.IsOrdained = true
	luis.Sex = domain.SexMale

	activatePersons(t, st, sandra, luis)
}

func TestGetDashboard_AllIndicators(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	dash, err := svc.GetDashboard(context.Background(), "2025", "")
	require.NoError(t, err)

	require.Len(t, dash.Indicators, 3)
	assert.Equal(t, "2025", dash.Period)
	assert.Equal(t, indicator.KeyConvertBaptisms, dash.Indicators[0].Indicator)
	assert.Equal(t, 2, dash.Indicators[0].Real)
}

func TestGetDashboard_UnknownPeriodYieldsEmptyDashboard(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	dash, err := svc.GetDashboard(context.Background(), "Periodo Fantasma", "")
	require.NoError(t, err)

	assert.Equal(t, "Periodo Fantasma", dash.Period)
	assert.Empty(t, dash.Indicators)
}

func TestGetDetail_IncludesUnitBreakdown(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	detail, err := svc.GetDetail(context.Background(), indicator.KeyConvertBaptisms, "2025", "")
	require.NoError(t, err)

	assert.Equal(t, 2, detail.Summary.Real)
	require.Len(t, detail.ByUnit, 2)
}

func TestGetDetail_UnitScopedSkipsBreakdown(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	detail, err := svc.GetDetail(context.Background(), indicator.KeyConvertBaptisms, "2025", "Barrio Centro")
	require.NoError(t, err)

	assert.Equal(t, 1, detail.Summary.Real)
	assert.Empty(t, detail.ByUnit)
}

func TestGetDetail_UnknownPeriodIsError(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	_, err := svc.GetDetail(context.Background(), indicator.KeyConvertBaptisms, "Periodo Fantasma", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestGetDetail_UnknownIndicatorIsError(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	_, err := svc.GetDetail(context.Background(), "retention_rate", "2025", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestGetTrend_MonthlySeries(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	points, err := svc.GetTrend(context.Background(), indicator.KeyConvertBaptisms, "Q1 2025", "")
	require.NoError(t, err)

	require.Len(t, points, 12)
	assert.Equal(t, "Enero 2025", points[0].PeriodLabel)
	assert.Equal(t, 1, points[0].Real)
	assert.Equal(t, 1, points[1].Real)
	assert.Equal(t, 0, points[2].Real)
}

func TestGetTrend_NoYearInPeriodName(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	_, err := svc.GetTrend(context.Background(), indicator.KeyConvertBaptisms, "Fantasma", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestGetUnitBreakdown_RankedByReal(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	extra := confirmedPerson("Marta Ruiz", "Barrio Centro", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, st.StagePersons(context.Background(), activeGeneration(t, st), []*domain.Person{extra}))

	byUnit, err := svc.GetUnitBreakdown(context.Background(), indicator.KeyConvertBaptisms, "2025")
	require.NoError(t, err)

	require.Len(t, byUnit, 2)
	assert.Equal(t, "Barrio Centro", byUnit[0].Unit)
	assert.Equal(t, 2, byUnit[0].Real)
	assert.Equal(t, "Barrio Norte", byUnit[1].Unit)
}

func TestGetMissing_ListsEligibleWithoutRecommendation(t *testing.T) {
	svc, st := newKPIService(t)
	seedKPIData(t, st)

	missing, err := svc.GetMissing(context.Background(), indicator.KeyConvertsWithRecommendation, "2025", "")
	require.NoError(t, err)

	require.Len(t, missing, 1)
	assert.Equal(t, "Luis Gómez", missing[0].Name)
	assert.Equal(t, "no active recommendation", missing[0].Reason)
}

func activeGeneration(t *testing.T, st *sqlite.Store) string {
	t.Helper()

	imp, err := st.GetActiveImport(context.Background())
	require.NoError(t, err)
	return imp.Generation
}
