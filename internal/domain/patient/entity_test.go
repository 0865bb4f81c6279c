package patient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/optional"
)

func strp(s string) *string { return &s }

func TestNew(t *testing.T) {
	p, err := New(CreateInput{
		Name:       " Maria ",
		BirthDate:  "05-03-1990",
		NationalID: "123",
		Address:    "  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria", p.Name)
	assert.Equal(t, time.Date(1990, 3, 5, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	assert.Equal(t, "123", *p.NationalID)
	assert.Nil(t, p.HealthCardNumber)
	assert.Nil(t, p.Address)
	assert.Zero(t, p.ID)
}

func TestNew_RequiresName(t *testing.T) {
	_, err := New(CreateInput{Name: "   ", NationalID: "123"})
	require.Error(t, err)
	assert.True(t, httperr.Is(err, httperr.KindMissingField))
	assert.Contains(t, err.Error(), "name")
}

func TestNew_InvalidBirthDate(t *testing.T) {
	_, err := New(CreateInput{Name: "Maria", BirthDate: "1990/03/05"})
	assert.True(t, httperr.Is(err, httperr.KindInvalidFormat))
}

func existing() *models.Patient {
	birth := time.Date(1990, 3, 5, 0, 0, 0, 0, time.UTC)
	return &models.Patient{
		ID:               1,
		Name:             "Maria",
		BirthDate:        &birth,
		NationalID:       strp("123"),
		HealthCardNumber: strp("999"),
		Address:          strp("Rua A"),
	}
}

func TestApplyUpdate_PartialLeavesOmittedFields(t *testing.T) {
	p := existing()
	require.NoError(t, ApplyUpdate(p, UpdateInput{Address: optional.Of("Rua B")}))

	assert.Equal(t, "Maria", p.Name)
	assert.Equal(t, "123", *p.NationalID)
	assert.Equal(t, "999", *p.HealthCardNumber)
	assert.Equal(t, "Rua B", *p.Address)
	assert.NotNil(t, p.BirthDate)
}

func TestApplyUpdate_Name(t *testing.T) {
	p := existing()
	require.NoError(t, ApplyUpdate(p, UpdateInput{Name: optional.Null[string]()}))
	assert.Equal(t, "Maria", p.Name)

	require.NoError(t, ApplyUpdate(p, UpdateInput{Name: optional.Of("")}))
	assert.Equal(t, "Maria", p.Name)

	require.NoError(t, ApplyUpdate(p, UpdateInput{Name: optional.Of("Maria Silva")}))
	assert.Equal(t, "Maria Silva", p.Name)
}

func TestApplyUpdate_BirthDate(t *testing.T) {
	p := existing()
	require.NoError(t, ApplyUpdate(p, UpdateInput{BirthDate: optional.Of("1991-12-01")}))
	assert.Equal(t, time.Date(1991, 12, 1, 0, 0, 0, 0, time.UTC), *p.BirthDate)

	require.NoError(t, ApplyUpdate(p, UpdateInput{BirthDate: optional.Null[string]()}))
	assert.Nil(t, p.BirthDate)

	p = existing()
	require.NoError(t, ApplyUpdate(p, UpdateInput{BirthDate: optional.Of("")}))
	assert.Nil(t, p.BirthDate)
}

func TestApplyUpdate_OptionalText(t *testing.T) {
	p := existing()
	require.NoError(t, ApplyUpdate(p, UpdateInput{
		NationalID:       optional.Null[string](),
		HealthCardNumber: optional.Of(""),
	}))

	assert.Equal(t, "123", *p.NationalID)
	assert.Nil(t, p.HealthCardNumber)
}

func TestApplyUpdate_InvalidLeavesRecordUntouched(t *testing.T) {
	p := existing()
	err := ApplyUpdate(p, UpdateInput{
		Name:      optional.Of("Other"),
		BirthDate: optional.Of("not a date"),
	})

	assert.True(t, httperr.Is(err, httperr.KindInvalidFormat))
	assert.Equal(t, existing(), p)
}

func TestNew_IdentifierSizes(t *testing.T) {
	p, err := New(CreateInput{Name: "Maria", NationalID: "123.456.789-00"})
	require.NoError(t, err)
	assert.Equal(t, "123.456.789-00", *p.NationalID)

	_, err = New(CreateInput{Name: "Maria", NationalID: "123.456.789-000"})
	assert.True(t, httperr.Is(err, httperr.KindInvalidFormat))
	assert.Contains(t, err.Error(), "national_id")

	_, err = New(CreateInput{Name: "Maria", HealthCardNumber: "1234567890123456789012345678901"})
	assert.True(t, httperr.Is(err, httperr.KindInvalidFormat))
	assert.Contains(t, err.Error(), "health_card_number")
}

func TestApplyUpdate_OversizeNationalID(t *testing.T) {
	p := existing()
	err := ApplyUpdate(p, UpdateInput{
		Name:       optional.Of("Other"),
		NationalID: optional.Of("123.456.789-000"),
	})

	assert.True(t, httperr.Is(err, httperr.KindInvalidFormat))
	assert.Equal(t, existing(), p)
}
