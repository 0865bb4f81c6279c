package specialty

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/specialty"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

const entity = "specialty"

// ======================================================
// Create
// ======================================================

type CreateSpecialty struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateSpecialty(repo domain.Repository, audit audit.Recorder) *CreateSpecialty {
	return &CreateSpecialty{repo: repo, audit: audit}
}

func (uc *CreateSpecialty) Execute(
	ctx context.Context,
	actor *access.Principal,
	in domain.CreateInput,
) (*models.Specialty, error) {

	if err := access.RequireAuthor(actor); err != nil {
		return nil, err
	}

	s, err := domain.New(in)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		return tx.CreateSpecialty(ctx, s)
	}); err != nil {
		return nil, httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionCreated,
		Entity:   entity,
		EntityID: &s.ID,
	})
	return s, nil
}

// ======================================================
// Update
// ======================================================

type UpdateSpecialty struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateSpecialty(repo domain.Repository, audit audit.Recorder) *UpdateSpecialty {
	return &UpdateSpecialty{repo: repo, audit: audit}
}

func (uc *UpdateSpecialty) Execute(
	ctx context.Context,
	actor *access.Principal,
	id uint,
	in domain.UpdateInput,
) (*models.Specialty, error) {

	if err := access.RequireMutate(actor); err != nil {
		return nil, err
	}

	var s *models.Specialty
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetSpecialty(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}
		domain.ApplyUpdate(current, in)
		if err := tx.UpdateSpecialty(ctx, current); err != nil {
			return err
		}
		s = current
		return nil
	})
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionUpdated,
		Entity:   entity,
		EntityID: &s.ID,
	})
	return s, nil
}

// ======================================================
// Delete
// ======================================================

type DeleteSpecialty struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteSpecialty(repo domain.Repository, audit audit.Recorder) *DeleteSpecialty {
	return &DeleteSpecialty{repo: repo, audit: audit}
}

func (uc *DeleteSpecialty) Execute(ctx context.Context, actor *access.Principal, id uint) error {
	if err := access.RequireMutate(actor); err != nil {
		return err
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		s, err := tx.GetSpecialty(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}
		return tx.DeleteSpecialty(ctx, s)
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

// ======================================================
// Queries
// ======================================================

type GetSpecialty struct {
	repo domain.Repository
}

func NewGetSpecialty(repo domain.Repository) *GetSpecialty {
	return &GetSpecialty{repo: repo}
}

func (uc *GetSpecialty) Execute(ctx context.Context, actor *access.Principal, id uint) (*models.Specialty, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSpecialty(ctx, id)
	if err != nil {
		return nil, httperr.Lookup(err, entity)
	}
	return s, nil
}

type ListSpecialties struct {
	repo domain.Repository
}

func NewListSpecialties(repo domain.Repository) *ListSpecialties {
	return &ListSpecialties{repo: repo}
}

func (uc *ListSpecialties) Execute(ctx context.Context, actor *access.Principal) ([]models.Specialty, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListSpecialties(ctx)
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}
	return list, nil
}
