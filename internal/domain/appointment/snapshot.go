package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/validators"
)

// Origin records how a snapshot field was authored.
type Origin uint8

const (
	FromLiteral Origin = iota
	FromReference
)

type patientSnapshot struct {
	origin     Origin
	id         *uint
	name       string
	nationalID *string
}

type specialtySnapshot struct {
	origin Origin
	id     *uint
	name   *string
}

type authorSnapshot struct {
	id       uint
	username string
}

// resolvePatient copies name and national id from the referenced patient,
// ignoring any literal values, or falls back to the literals when no
// reference was given.
func resolvePatient(ctx context.Context, lookup Lookup, in CreateInput) (patientSnapshot, error) {
	if in.PatientID != nil {
		p, err := lookup.GetPatient(ctx, *in.PatientID)
		if err != nil {
			return patientSnapshot{}, lookupError(err, "patient_id", *in.PatientID)
		}
		return patientSnapshot{
			origin:     FromReference,
			id:         &p.ID,
			name:       p.Name,
			nationalID: p.NationalID,
		}, nil
	}

	if !validators.FitsColumn(in.PatientNationalID, validators.NationalIDMaxLen) {
		return patientSnapshot{}, httperr.InvalidFormat("patient_national_id", in.PatientNationalID)
	}
	return patientSnapshot{
		origin:     FromLiteral,
		name:       strings.TrimSpace(in.PatientName),
		nationalID: nonEmpty(in.PatientNationalID),
	}, nil
}

func resolveSpecialty(ctx context.Context, lookup Lookup, in CreateInput) (specialtySnapshot, error) {
	if in.SpecialtyID != nil {
		s, err := lookup.GetSpecialty(ctx, *in.SpecialtyID)
		if err != nil {
			return specialtySnapshot{}, lookupError(err, "specialty_id", *in.SpecialtyID)
		}
		name := s.Name
		return specialtySnapshot{origin: FromReference, id: &s.ID, name: &name}, nil
	}

	return specialtySnapshot{origin: FromLiteral, name: nonEmpty(in.SpecialtyName)}, nil
}

// resolveAuthor always derives the username from the user row so the
// audit snapshot cannot be spoofed by the caller.
func resolveAuthor(ctx context.Context, lookup Lookup, in CreateInput) (authorSnapshot, error) {
	if in.CreatedByID == nil || *in.CreatedByID == 0 {
		return authorSnapshot{}, httperr.MissingField("created_by_id")
	}

	u, err := lookup.GetUser(ctx, *in.CreatedByID)
	if err != nil {
		return authorSnapshot{}, lookupError(err, "created_by_id", *in.CreatedByID)
	}
	return authorSnapshot{id: u.ID, username: u.Username}, nil
}

func lookupError(err error, field string, id uint) error {
	if errors.Is(err, httperr.ErrRecordNotFound) {
		return httperr.ReferenceNotFound(field, id)
	}
	return httperr.StorageFailure(err)
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
