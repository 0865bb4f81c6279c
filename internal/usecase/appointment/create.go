package appointment

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/timezone"
)

const entity = "appointment"

type CreateAppointment struct {
	repo  domain.Repository
	clock *timezone.Clock
	audit audit.Recorder
}

func NewCreateAppointment(
	repo domain.Repository,
	clock *timezone.Clock,
	audit audit.Recorder,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

// Execute resolves the references and inserts the appointment in one
// transaction, so a patient or specialty deleted concurrently cannot be
// copied into the snapshot. The author is always the acting principal.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor *access.Principal,
	in domain.CreateInput,
) (*models.Appointment, error) {

	if err := access.RequireAuthor(actor); err != nil {
		return nil, err
	}
	in.CreatedByID = &actor.ID

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		resolved, err := domain.Resolve(ctx, tx, in, uc.clock)
		if err != nil {
			return err
		}
		if err := tx.CreateAppointment(ctx, resolved); err != nil {
			return err
		}
		ap = resolved
		return nil
	})
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionCreated,
		Entity:   entity,
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"patient_id":   ap.PatientID,
			"specialty_id": ap.SpecialtyID,
			"scheduled_at": ap.ScheduledAt,
		},
	})

	return ap, nil
}
