package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name string
		p    *Principal
		want bool
	}{
		{"nil", nil, false},
		{"anonymous admin role", &Principal{Role: RoleAdmin}, false},
		{"user", &Principal{ID: 5, Role: RoleUser}, false},
		{"unknown role", &Principal{ID: 5, Role: "owner"}, false},
		{"admin", &Principal{ID: 1, Role: RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.p))
		})
	}
}

func TestCanAuthorAppointment(t *testing.T) {
	assert.False(t, CanAuthorAppointment(nil))
	assert.True(t, CanAuthorAppointment(&Principal{ID: 5, Role: RoleUser}))
	assert.True(t, CanAuthorAppointment(&Principal{ID: 1, Role: RoleAdmin}))
}

func TestCanManageUser(t *testing.T) {
	user := &Principal{ID: 5, Role: RoleUser}
	admin := &Principal{ID: 1, Role: RoleAdmin}

	assert.True(t, CanManageUser(user, 5))
	assert.False(t, CanManageUser(user, 6))
	assert.True(t, CanManageUser(admin, 6))
	assert.False(t, CanManageUser(nil, 0))
}

func TestRequire(t *testing.T) {
	user := &Principal{ID: 5, Role: RoleUser}
	admin := &Principal{ID: 1, Role: RoleAdmin}

	assert.True(t, httperr.Is(RequireMutate(nil), httperr.KindUnauthenticated))
	assert.True(t, httperr.Is(RequireMutate(user), httperr.KindPermissionDenied))
	assert.NoError(t, RequireMutate(admin))

	assert.True(t, httperr.Is(RequireAuthor(&Principal{}), httperr.KindUnauthenticated))
	assert.NoError(t, RequireAuthor(user))

	assert.True(t, httperr.Is(RequireUserAccess(user, 9), httperr.KindPermissionDenied))
	assert.NoError(t, RequireUserAccess(user, 5))
}

func TestFromUser(t *testing.T) {
	assert.Nil(t, FromUser(nil))

	p := FromUser(&models.User{ID: 3, Username: "ana", Role: models.RoleAdmin})
	assert.Equal(t, &Principal{ID: 3, Username: "ana", Role: RoleAdmin}, p)
	assert.True(t, p.Role.Valid())
	assert.False(t, Role("owner").Valid())
}
