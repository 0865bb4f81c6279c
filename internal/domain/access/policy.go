// Package access decides which principal may run which operation. It holds
// no state: every decision is made from the principal passed in, which the
// caller resolves fresh for each request.
package access

import (
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

type Role string

const (
	RoleAdmin Role = models.RoleAdmin
	RoleUser  Role = models.RoleUser
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Principal is the authenticated actor of a request.
type Principal struct {
	ID       uint
	Username string
	Role     Role
}

// FromUser builds the principal for a stored user row.
func FromUser(u *models.User) *Principal {
	if u == nil {
		return nil
	}
	return &Principal{ID: u.ID, Username: u.Username, Role: Role(u.Role)}
}

func (p *Principal) Authenticated() bool {
	return p != nil && p.ID != 0
}

// CanMutate reports whether p may update or delete shared records.
func CanMutate(p *Principal) bool {
	return p.Authenticated() && p.Role == RoleAdmin
}

// CanAuthorAppointment reports whether p may create appointments, patients
// and specialties.
func CanAuthorAppointment(p *Principal) bool {
	return p.Authenticated()
}

// CanManageUser reports whether p may read or change the user with id
// target: admins may touch anyone, everybody else only themselves.
func CanManageUser(p *Principal, target uint) bool {
	return CanMutate(p) || (p.Authenticated() && p.ID == target)
}

func RequireAuthenticated(p *Principal) error {
	if !p.Authenticated() {
		return httperr.Unauthenticated("unauthenticated")
	}
	return nil
}

func RequireAuthor(p *Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !CanAuthorAppointment(p) {
		return httperr.PermissionDenied()
	}
	return nil
}

func RequireMutate(p *Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !CanMutate(p) {
		return httperr.PermissionDenied()
	}
	return nil
}

func RequireUserAccess(p *Principal, target uint) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !CanManageUser(p, target) {
		return httperr.PermissionDenied()
	}
	return nil
}
