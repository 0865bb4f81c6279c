package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/optional"
	"github.com/clinicadev/clinic-api/internal/timeparse"
	"github.com/clinicadev/clinic-api/internal/timezone"
	"github.com/clinicadev/clinic-api/internal/validators"
)

// CreateInput holds an appointment request. CreatedByID is filled in from
// the acting principal, never from client input.
type CreateInput struct {
	PatientID         *uint
	PatientName       string
	PatientNationalID string

	SpecialtyID   *uint
	SpecialtyName string

	ScheduledAt string

	CreatedByID *uint
}

// UpdateInput edits the snapshot fields only; references are not
// re-resolved.
type UpdateInput struct {
	PatientName       optional.Value[string]
	PatientNationalID optional.Value[string]
	SpecialtyName     optional.Value[string]
	ScheduledAt       optional.Value[string]
	CreatedByUsername optional.Value[string]
}

// Resolve builds an unsaved appointment from in. Reference ids win over
// literal values; a reference that does not resolve fails the call instead
// of falling back. scheduled_at defaults to clock.Now().
func Resolve(ctx context.Context, lookup Lookup, in CreateInput, clock *timezone.Clock) (*models.Appointment, error) {
	patient, err := resolvePatient(ctx, lookup, in)
	if err != nil {
		return nil, err
	}
	if patient.name == "" {
		return nil, httperr.MissingField("patient_name")
	}

	specialty, err := resolveSpecialty(ctx, lookup, in)
	if err != nil {
		return nil, err
	}

	author, err := resolveAuthor(ctx, lookup, in)
	if err != nil {
		return nil, err
	}

	scheduledAt := clock.Now()
	if strings.TrimSpace(in.ScheduledAt) != "" {
		parsed, err := timeparse.ParseDateTime("scheduled_at", in.ScheduledAt, clock.Location())
		if err != nil {
			return nil, err
		}
		scheduledAt = *parsed
	}

	return &models.Appointment{
		PatientName:       patient.name,
		PatientNationalID: patient.nationalID,
		PatientID:         patient.id,
		SpecialtyName:     specialty.name,
		SpecialtyID:       specialty.id,
		ScheduledAt:       scheduledAt,
		CreatedByUsername: author.username,
		CreatedByID:       author.id,
	}, nil
}

// ApplyUpdate applies the fields present in in. Required snapshots
// (patient_name, created_by_username) ignore null and empty values; the
// optional ones are cleared by an empty string. scheduled_at cannot be
// cleared. a is left untouched when in is invalid.
func ApplyUpdate(a *models.Appointment, in UpdateInput, clock *timezone.Clock) error {
	var scheduledAt *time.Time
	if in.ScheduledAt.Set {
		if !in.ScheduledAt.Present() || strings.TrimSpace(in.ScheduledAt.V) == "" {
			return httperr.MissingField("scheduled_at")
		}
		parsed, err := timeparse.ParseDateTime("scheduled_at", in.ScheduledAt.V, clock.Location())
		if err != nil {
			return err
		}
		scheduledAt = parsed
	}
	if v := in.PatientNationalID; v.Present() && !validators.FitsColumn(v.V, validators.NationalIDMaxLen) {
		return httperr.InvalidFormat("patient_national_id", v.V)
	}

	applyRequired(&a.PatientName, in.PatientName)
	applyRequired(&a.CreatedByUsername, in.CreatedByUsername)
	applyOptional(&a.PatientNationalID, in.PatientNationalID)
	applyOptional(&a.SpecialtyName, in.SpecialtyName)
	if scheduledAt != nil {
		a.ScheduledAt = *scheduledAt
	}
	return nil
}

func applyRequired(dst *string, v optional.Value[string]) {
	if !v.Present() {
		return
	}
	if s := strings.TrimSpace(v.V); s != "" {
		*dst = s
	}
}

func applyOptional(dst **string, v optional.Value[string]) {
	if !v.Present() {
		return
	}
	*dst = nonEmpty(v.V)
}
