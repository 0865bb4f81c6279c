package patient

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/httperr"
)

// DeletePatient removes the patient. Appointments that referenced it keep
// their snapshot and lose the reference.
type DeletePatient struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeletePatient(repo domain.Repository, audit audit.Recorder) *DeletePatient {
	return &DeletePatient{repo: repo, audit: audit}
}

func (uc *DeletePatient) Execute(ctx context.Context, actor *access.Principal, id uint) error {
	if err := access.RequireMutate(actor); err != nil {
		return err
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		p, err := tx.GetPatient(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}
		return tx.DeletePatient(ctx, p)
	})
	if err != nil {
		return httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionDeleted,
		Entity:   entity,
		EntityID: &id,
	})
	return nil
}
