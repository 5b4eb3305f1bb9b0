package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

func TestEnrichPerson_BirthDateRecomputesAge(t *testing.T) {
	st := newTestStore(t)
	svc := NewPersonService(st, newTestLogger())
	ctx := context.Background()

	p := confirmedPerson("Sandra Pérez", "Barrio Centro", time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC))
	p.AgeAtConfirmation = 18
	activatePersons(t, st, p)

	enriched, err := svc.EnrichPerson(ctx, p.ID, EnrichmentRequest{
		BirthDate:  datePtr(2000, time.August, 10),
		EnrichedBy: "secretary",
	})
	require.NoError(t, err)

	assert.Equal(t, 25, enriched.AgeAtConfirmation)
	assert.True(t, enriched.Enriched)
	assert.Equal(t, "secretary", enriched.EnrichedBy)
	require.NotNil(t, enriched.EnrichedAt)

	// The correction survives a reload.
	stored, err := svc.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.AgeAtConfirmation)
	require.NotNil(t, stored.BirthDate)
	assert.Equal(t, 2000, stored.BirthDate.Year())
}

func TestEnrichPerson_ExplicitSexOverridesInference(t *testing.T) {
	st := newTestStore(t)
	svc := NewPersonService(st, newTestLogger())
	ctx := context.Background()

	p := confirmedPerson("Alex Díaz", "Barrio Norte", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	p.Priesthood = domain.PriesthoodMelchizedek
	p.IsOrdained = true
	activatePersons(t, st, p)

	sex := domain.SexFemale
	enriched, err := svc.EnrichPerson(ctx, p.ID, EnrichmentRequest{
		Sex:        &sex,
		EnrichedBy: "secretary",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SexFemale, enriched.Sex)
	assert.False(t, enriched.IsMale())
}

func TestEnrichPerson_NilFieldsUntouched(t *testing.T) {
	st := newTestStore(t)
	svc := NewPersonService(st, newTestLogger())
	ctx := context.Background()

	p := confirmedPerson("Marta Ruiz", "Rama Sur", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	p.Sex = domain.SexFemale
	activatePersons(t, st, p)

	notes := "confirmed by phone"
	enriched, err := svc.EnrichPerson(ctx, p.ID, EnrichmentRequest{
		Notes:      &notes,
		EnrichedBy: "clerk",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SexFemale, enriched.Sex)
	assert.Equal(t, 25, enriched.AgeAtConfirmation)
	assert.Equal(t, "confirmed by phone", enriched.Notes)
}

func TestEnrichPerson_NotFound(t *testing.T) {
	svc := NewPersonService(newTestStore(t), newTestLogger())

	_, err := svc.EnrichPerson(context.Background(), "per-missing", EnrichmentRequest{EnrichedBy: "clerk"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestListPersons_OnlyActiveGeneration(t *testing.T) {
	st := newTestStore(t)
	svc := NewPersonService(st, newTestLogger())
	ctx := context.Background()

	activatePersons(t, st,
		confirmedPerson("Sandra Pérez", "Barrio Centro", time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)),
		confirmedPerson("Luis Gómez", "Barrio Norte", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)),
	)
	activatePersons(t, st,
		confirmedPerson("Marta Ruiz", "Rama Sur", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	)

	persons, err := svc.ListPersons(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "Marta Ruiz", persons[0].PreferredName)
}
