package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/stakemetrics/stakemetrics-server/internal/errors"
)

type enrichRequest struct {
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Sex       string `json:"sex" validate:"omitempty,oneof=M F"`
	Notes     string `json:"notes" validate:"max=500"`
}

type createPeriodRequest struct {
	Name string `json:"name" validate:"required,min=3"`
	Year int    `json:"year" validate:"gte=2000,lte=2100"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(enrichRequest{
		BirthDate: "1990-05-14",
		Sex:       "M",
	})
	assert.NoError(t, err)

	err = v.Validate(createPeriodRequest{Name: "Enero 2026", Year: 2026})
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(createPeriodRequest{Name: "", Year: 1800})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "year")
	assert.Equal(t, "is required", details["name"])
}

func TestValidate_OneOf(t *testing.T) {
	v := New()

	err := v.Validate(enrichRequest{Sex: "X"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be one of: M F", details["sex"])
}

func TestValidate_Datetime(t *testing.T) {
	v := New()

	err := v.Validate(enrichRequest{BirthDate: "14/05/1990"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Contains(t, details["birth_date"], "2006-01-02")
}
