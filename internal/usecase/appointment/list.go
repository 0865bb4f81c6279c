package appointment

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, actor *access.Principal, id uint) (*models.Appointment, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.Lookup(err, entity)
	}
	return ap, nil
}

// ListAppointments returns the matching appointments, latest first.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor *access.Principal,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}
	return apps, nil
}
