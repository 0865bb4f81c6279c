package patient

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

type GetPatient struct {
	repo domain.Repository
}

func NewGetPatient(repo domain.Repository) *GetPatient {
	return &GetPatient{repo: repo}
}

func (uc *GetPatient) Execute(ctx context.Context, actor *access.Principal, id uint) (*models.Patient, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	p, err := uc.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, httperr.Lookup(err, entity)
	}
	return p, nil
}

type ListPatients struct {
	repo domain.Repository
}

func NewListPatients(repo domain.Repository) *ListPatients {
	return &ListPatients{repo: repo}
}

func (uc *ListPatients) Execute(
	ctx context.Context,
	actor *access.Principal,
	filter domain.ListFilter,
) ([]models.Patient, error) {

	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	patients, err := uc.repo.ListPatients(ctx, filter)
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}
	return patients, nil
}
