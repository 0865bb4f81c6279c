package user

import (
	"context"
	"errors"
	"time"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/security"
	"github.com/clinicadev/clinic-api/internal/validators"
)

type LoginResult struct {
	Token string
	User  *models.User
}

type Login struct {
	repo   domain.Repository
	tokens *security.TokenIssuer
	verify func(hash, password string) bool
	audit  audit.Recorder
}

func NewLogin(repo domain.Repository, tokens *security.TokenIssuer, audit audit.Recorder) *Login {
	return &Login{
		repo:   repo,
		tokens: tokens,
		verify: security.VerifyPassword,
		audit:  audit,
	}
}

// Execute answers unknown usernames and wrong passwords the same way.
func (uc *Login) Execute(ctx context.Context, username, password string) (*LoginResult, error) {
	username = validators.NormalizeUsername(username)
	if username == "" {
		return nil, httperr.MissingField("username")
	}
	if password == "" {
		return nil, httperr.MissingField("password")
	}

	u, err := uc.repo.FindUserByUsername(ctx, username)
	if errors.Is(err, httperr.ErrRecordNotFound) {
		return nil, httperr.InvalidCredentials()
	}
	if err != nil {
		return nil, httperr.StorageFailure(err)
	}
	if !uc.verify(u.PasswordHash, password) {
		return nil, httperr.InvalidCredentials()
	}

	token, _, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   audit.ActionLogin,
		Entity:   entity,
		EntityID: &u.ID,
	})
	return &LoginResult{Token: token, User: u}, nil
}

// Logout revokes the token identified by jti until it expires.
type Logout struct {
	revoker security.Revoker
	audit   audit.Recorder
}

func NewLogout(revoker security.Revoker, audit audit.Recorder) *Logout {
	return &Logout{revoker: revoker, audit: audit}
}

func (uc *Logout) Execute(
	ctx context.Context,
	actor *access.Principal,
	jti string,
	expiresAt time.Time,
) error {

	if err := access.RequireAuthenticated(actor); err != nil {
		return err
	}
	if jti == "" {
		return httperr.Unauthenticated("invalid_token")
	}

	if err := uc.revoker.Revoke(ctx, jti, expiresAt); err != nil {
		return httperr.StorageFailure(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   audit.ActionLogout,
		Entity:   entity,
		EntityID: &actor.ID,
	})
	return nil
}
