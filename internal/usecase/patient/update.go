package patient

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

type UpdatePatient struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdatePatient(repo domain.Repository, audit audit.Recorder) *UpdatePatient {
	return &UpdatePatient{repo: repo, audit: audit}
}

func (uc *UpdatePatient) Execute(
	ctx context.Context,
	actor *access.Principal,
	id uint,
	in domain.UpdateInput,
) (*models.Patient, error) {

	if err := access.RequireMutate(actor); err != nil {
		return nil, err
	}

	var p *models.Patient
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetPatient(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}
		if err := domain.ApplyUpdate(current, in); err != nil {
			return err
		}
		if err := tx.UpdatePatient(ctx, current); err != nil {
			return err
		}
		p = current
		return nil
	})
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionUpdated,
		Entity:   entity,
		EntityID: &p.ID,
	})

	return p, nil
}
