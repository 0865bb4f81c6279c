package user

import (
	"context"
	"errors"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

const (
	entity = "user"

	codeUsernameTaken   = "username_taken"
	codeUserHasAppoints = "user_has_appointments"
)

// Register is the public sign up. The role is always user; admins are
// created by another admin or by the create-admin command.
type Register struct {
	repo  domain.Repository
	hash  domain.HashFunc
	audit audit.Recorder
}

func NewRegister(repo domain.Repository, hash domain.HashFunc, audit audit.Recorder) *Register {
	return &Register{repo: repo, hash: hash, audit: audit}
}

func (uc *Register) Execute(ctx context.Context, in domain.CreateInput) (*models.User, error) {
	in.Role = string(access.RoleUser)

	u, err := insert(ctx, uc.repo, in, uc.hash)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   audit.ActionCreated,
		Entity:   entity,
		EntityID: &u.ID,
		Metadata: map[string]string{"source": "register"},
	})
	return u, nil
}

// CreateUser lets an admin create accounts of any role.
type CreateUser struct {
	repo  domain.Repository
	hash  domain.HashFunc
	audit audit.Recorder
}

func NewCreateUser(repo domain.Repository, hash domain.HashFunc, audit audit.Recorder) *CreateUser {
	return &CreateUser{repo: repo, hash: hash, audit: audit}
}

func (uc *CreateUser) Execute(
	ctx context.Context,
	actor *access.Principal,
	in domain.CreateInput,
) (*models.User, error) {

	if err := access.RequireMutate(actor); err != nil {
		return nil, err
	}

	u, err := insert(ctx, uc.repo, in, uc.hash)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionCreated,
		Entity:   entity,
		EntityID: &u.ID,
		Metadata: map[string]string{"role": u.Role},
	})
	return u, nil
}

// Bootstrap creates an admin without an acting principal. It backs the
// create-admin command and is not reachable over HTTP.
func (uc *CreateUser) Bootstrap(ctx context.Context, username, password string) (*models.User, error) {
	u, err := insert(ctx, uc.repo, domain.CreateInput{
		Username: username,
		Password: password,
		Role:     string(access.RoleAdmin),
	}, uc.hash)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionCreated,
		Entity:   entity,
		EntityID: &u.ID,
		Metadata: map[string]string{"source": "create-admin"},
	})
	return u, nil
}

func insert(
	ctx context.Context,
	repo domain.Repository,
	in domain.CreateInput,
	hash domain.HashFunc,
) (*models.User, error) {

	u, err := domain.New(in, hash)
	if err != nil {
		return nil, err
	}

	err = repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := ensureUsernameFree(ctx, tx, u.Username, 0); err != nil {
			return err
		}
		return tx.CreateUser(ctx, u)
	})
	if err != nil {
		return nil, usernameConflict(err)
	}
	return u, nil
}

// ensureUsernameFree fails when another user than self owns username.
func ensureUsernameFree(ctx context.Context, repo domain.Repository, username string, self uint) error {
	existing, err := repo.FindUserByUsername(ctx, username)
	switch {
	case errors.Is(err, httperr.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return httperr.Conflict(codeUsernameTaken)
	}
	return nil
}

// usernameConflict reports a unique index hit that raced past
// ensureUsernameFree as a conflict.
func usernameConflict(err error) error {
	if httperr.IsBusiness(err, "unique_violation") {
		return httperr.Conflict(codeUsernameTaken)
	}
	return httperr.StorageFailure(err)
}
