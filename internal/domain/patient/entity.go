package patient

import (
	"strings"
	"time"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/optional"
	"github.com/clinicadev/clinic-api/internal/timeparse"
	"github.com/clinicadev/clinic-api/internal/validators"
)

type CreateInput struct {
	Name             string
	BirthDate        string
	NationalID       string
	HealthCardNumber string
	Address          string
}

// UpdateInput follows partial update rules: absent fields are left alone.
// An explicit null or empty birth date clears it; an explicit null or empty
// name is ignored; the other text fields are cleared by an empty string and
// left alone by null.
type UpdateInput struct {
	Name             optional.Value[string]
	BirthDate        optional.Value[string]
	NationalID       optional.Value[string]
	HealthCardNumber optional.Value[string]
	Address          optional.Value[string]
}

// New validates in and builds an unsaved patient.
func New(in CreateInput) (*models.Patient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.MissingField("name")
	}

	birth, err := timeparse.ParseDate("birth_date", in.BirthDate)
	if err != nil {
		return nil, err
	}
	if err := checkSizes(in.NationalID, in.HealthCardNumber); err != nil {
		return nil, err
	}

	return &models.Patient{
		Name:             name,
		BirthDate:        birth,
		NationalID:       nonEmpty(in.NationalID),
		HealthCardNumber: nonEmpty(in.HealthCardNumber),
		Address:          nonEmpty(in.Address),
	}, nil
}

// ApplyUpdate applies in to p. p is left untouched when in is invalid.
func ApplyUpdate(p *models.Patient, in UpdateInput) error {
	var birth *time.Time
	if in.BirthDate.Present() {
		parsed, err := timeparse.ParseDate("birth_date", in.BirthDate.V)
		if err != nil {
			return err
		}
		birth = parsed
	}
	if err := checkSizes(in.NationalID.V, in.HealthCardNumber.V); err != nil {
		return err
	}

	if in.Name.Present() {
		if name := strings.TrimSpace(in.Name.V); name != "" {
			p.Name = name
		}
	}
	if in.BirthDate.Set {
		p.BirthDate = birth
	}
	applyText(&p.NationalID, in.NationalID)
	applyText(&p.HealthCardNumber, in.HealthCardNumber)
	applyText(&p.Address, in.Address)

	return nil
}

// checkSizes rejects identifiers longer than their columns so every store
// answers with the same error.
func checkSizes(nationalID, healthCard string) error {
	if !validators.FitsColumn(nationalID, validators.NationalIDMaxLen) {
		return httperr.InvalidFormat("national_id", nationalID)
	}
	if !validators.FitsColumn(healthCard, validators.HealthCardMaxLen) {
		return httperr.InvalidFormat("health_card_number", healthCard)
	}
	return nil
}

func applyText(dst **string, v optional.Value[string]) {
	if !v.Present() {
		return
	}
	*dst = nonEmpty(v.V)
}

// nonEmpty maps blank strings to NULL so unique columns only compare real
// values.
func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
