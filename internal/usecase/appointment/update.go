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

type UpdateAppointment struct {
	repo  domain.Repository
	clock *timezone.Clock
	audit audit.Recorder
}

func NewUpdateAppointment(
	repo domain.Repository,
	clock *timezone.Clock,
	audit audit.Recorder,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor *access.Principal,
	id uint,
	in domain.UpdateInput,
) (*models.Appointment, error) {

	if err := access.RequireMutate(actor); err != nil {
		return nil, err
	}

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}
		if err := domain.ApplyUpdate(current, in, uc.clock); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, current); err != nil {
			return err
		}
		ap = current
		return nil
	})
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionUpdated,
		Entity:   entity,
		EntityID: &ap.ID,
	})

	return ap, nil
}
