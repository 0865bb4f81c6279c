package patient

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

const entity = "patient"

type CreatePatient struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreatePatient(repo domain.Repository, audit audit.Recorder) *CreatePatient {
	return &CreatePatient{repo: repo, audit: audit}
}

func (uc *CreatePatient) Execute(
	ctx context.Context,
	actor *access.Principal,
	in domain.CreateInput,
) (*models.Patient, error) {

	if err := access.RequireAuthor(actor); err != nil {
		return nil, err
	}

	p, err := domain.New(in)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		return tx.CreatePatient(ctx, p)
	}); err != nil {
		return nil, httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionCreated,
		Entity:   entity,
		EntityID: &p.ID,
	})

	return p, nil
}
