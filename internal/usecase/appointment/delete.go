package appointment

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteAppointment(repo domain.Repository, audit audit.Recorder) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, actor *access.Principal, id uint) error {
	if err := access.RequireMutate(actor); err != nil {
		return err
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}
		return tx.DeleteAppointment(ctx, ap)
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
