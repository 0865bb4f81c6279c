package specialty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/optional"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
		want string
	}{
		{"primary key", CreateInput{Name: "Cardio"}, "Cardio"},
		{"alias", CreateInput{SpecialtyName: " Dermato "}, "Dermato"},
		{"primary wins", CreateInput{Name: "Cardio", SpecialtyName: "Dermato"}, "Cardio"},
		{"blank primary falls back", CreateInput{Name: " ", SpecialtyName: "Dermato"}, "Dermato"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name)
		})
	}
}

func TestNew_MissingName(t *testing.T) {
	_, err := New(CreateInput{})
	assert.True(t, httperr.Is(err, httperr.KindMissingField))
}

func TestApplyUpdate(t *testing.T) {
	s := &models.Specialty{ID: 1, Name: "Ortopedia"}

	ApplyUpdate(s, UpdateInput{})
	assert.Equal(t, "Ortopedia", s.Name)

	ApplyUpdate(s, UpdateInput{Name: optional.Null[string]()})
	assert.Equal(t, "Ortopedia", s.Name)

	ApplyUpdate(s, UpdateInput{SpecialtyName: optional.Of("Orto")})
	assert.Equal(t, "Orto", s.Name)

	ApplyUpdate(s, UpdateInput{Name: optional.Of("Trauma"), SpecialtyName: optional.Of("Orto")})
	assert.Equal(t, "Trauma", s.Name)
}
