package user

import (
	"github.com/clinicadev/clinic-api/internal/domain/access"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/optional"
	"github.com/clinicadev/clinic-api/internal/validators"
)

// HashFunc turns a plain password into the stored hash.
type HashFunc func(password string) (string, error)

type CreateInput struct {
	Username string
	Password string
	Role     string
}

type UpdateInput struct {
	Username optional.Value[string]
	Password optional.Value[string]
	Role     optional.Value[string]
}

// New validates in and builds an unsaved user. An empty role means user.
func New(in CreateInput, hash HashFunc) (*models.User, error) {
	username := validators.NormalizeUsername(in.Username)
	if username == "" {
		return nil, httperr.MissingField("username")
	}
	if in.Password == "" {
		return nil, httperr.MissingField("password")
	}
	if !validators.IsUsernameValid(username) {
		return nil, httperr.InvalidFormat("username", in.Username)
	}
	if !validators.IsPasswordValid(in.Password) {
		return nil, httperr.ErrBusiness("password_too_short")
	}

	role := access.Role(in.Role)
	if role == "" {
		role = access.RoleUser
	}
	if !role.Valid() {
		return nil, httperr.InvalidFormat("role", in.Role)
	}

	hashed, err := hash(in.Password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         string(role),
	}, nil
}

// ApplyUpdate changes username and password when non-empty values arrive.
// Role changes are only honoured when the actor is an admin; for anyone
// else the field is ignored.
func ApplyUpdate(u *models.User, in UpdateInput, actor *access.Principal, hash HashFunc) error {
	var (
		username string
		hashed   string
		role     access.Role
	)

	if in.Username.Present() && in.Username.V != "" {
		username = validators.NormalizeUsername(in.Username.V)
		if !validators.IsUsernameValid(username) {
			return httperr.InvalidFormat("username", in.Username.V)
		}
	}
	if in.Password.Present() && in.Password.V != "" {
		if !validators.IsPasswordValid(in.Password.V) {
			return httperr.ErrBusiness("password_too_short")
		}
		h, err := hash(in.Password.V)
		if err != nil {
			return err
		}
		hashed = h
	}
	if in.Role.Present() && in.Role.V != "" && access.CanMutate(actor) {
		role = access.Role(in.Role.V)
		if !role.Valid() {
			return httperr.InvalidFormat("role", in.Role.V)
		}
	}

	if username != "" {
		u.Username = username
	}
	if hashed != "" {
		u.PasswordHash = hashed
	}
	if role != "" {
		u.Role = string(role)
	}
	return nil
}
