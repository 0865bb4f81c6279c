package user

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

type GetUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(ctx context.Context, actor *access.Principal, id uint) (*models.User, error) {
	if err := access.RequireUserAccess(actor, id); err != nil {
		return nil, err
	}

	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, httperr.Lookup(err, entity)
	}
	return u, nil
}

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context, actor *access.Principal) ([]models.User, error) {
	if err := access.RequireMutate(actor); err != nil {
		return nil, err
	}

	users, err := uc.repo.ListUsers(ctx)
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}
	return users, nil
}

// UpdateUser lets users edit themselves and admins edit anyone. Only
// admins can change a role.
type UpdateUser struct {
	repo  domain.Repository
	hash  domain.HashFunc
	audit audit.Recorder
}

func NewUpdateUser(repo domain.Repository, hash domain.HashFunc, audit audit.Recorder) *UpdateUser {
	return &UpdateUser{repo: repo, hash: hash, audit: audit}
}

func (uc *UpdateUser) Execute(
	ctx context.Context,
	actor *access.Principal,
	id uint,
	in domain.UpdateInput,
) (*models.User, error) {

	if err := access.RequireUserAccess(actor, id); err != nil {
		return nil, err
	}

	var u *models.User
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetUser(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}

		previous := current.Username
		if err := domain.ApplyUpdate(current, in, actor, uc.hash); err != nil {
			return err
		}
		if current.Username != previous {
			if err := ensureUsernameFree(ctx, tx, current.Username, current.ID); err != nil {
				return err
			}
		}

		if err := tx.UpdateUser(ctx, current); err != nil {
			return err
		}
		u = current
		return nil
	})
	if err != nil {
		return nil, usernameConflict(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionUpdated,
		Entity:   entity,
		EntityID: &u.ID,
	})
	return u, nil
}

// DeleteUser refuses to remove the author of existing appointments.
type DeleteUser struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteUser(repo domain.Repository, audit audit.Recorder) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit}
}

func (uc *DeleteUser) Execute(ctx context.Context, actor *access.Principal, id uint) error {
	if err := access.RequireUserAccess(actor, id); err != nil {
		return err
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		u, err := tx.GetUser(ctx, id)
		if err != nil {
			return httperr.Lookup(err, entity)
		}
		return tx.DeleteUser(ctx, u)
	})
	if httperr.IsBusiness(err, "foreign_key_violation") {
		return httperr.Conflict(codeUserHasAppoints)
	}
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
