package specialty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	domain "github.com/clinicadev/clinic-api/internal/domain/specialty"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/infra/memory"
	"github.com/clinicadev/clinic-api/internal/optional"
)

type recorder struct{ events []audit.Event }

func (r *recorder) Dispatch(ev audit.Event) { r.events = append(r.events, ev) }

var (
	admin = &access.Principal{ID: 1, Username: "admin", Role: access.RoleAdmin}
	staff = &access.Principal{ID: 2, Username: "recepcao", Role: access.RoleUser}
)

func TestSpecialtyLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Specialties()
	rec := &recorder{}

	s, err := NewCreateSpecialty(repo, rec).Execute(ctx, staff, domain.CreateInput{SpecialtyName: "Cardio"})
	require.NoError(t, err)
	assert.Equal(t, "Cardio", s.Name)

	_, err = NewUpdateSpecialty(repo, rec).Execute(ctx, staff, s.ID, domain.UpdateInput{Name: optional.Of("X")})
	assert.True(t, httperr.Is(err, httperr.KindPermissionDenied))

	s, err = NewUpdateSpecialty(repo, rec).Execute(ctx, admin, s.ID, domain.UpdateInput{
		Name:          optional.Of(""),
		SpecialtyName: optional.Of("Cardiologia"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cardiologia", s.Name)

	got, err := NewGetSpecialty(repo).Execute(ctx, staff, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiologia", got.Name)

	err = NewDeleteSpecialty(repo, rec).Execute(ctx, staff, s.ID)
	assert.True(t, httperr.Is(err, httperr.KindPermissionDenied))
	require.NoError(t, NewDeleteSpecialty(repo, rec).Execute(ctx, admin, s.ID))

	list, err := NewListSpecialties(repo).Execute(ctx, staff)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, rec.events, 3)
	assert.Equal(t, []string{audit.ActionCreated, audit.ActionUpdated, audit.ActionDeleted},
		[]string{rec.events[0].Action, rec.events[1].Action, rec.events[2].Action})
}

func TestCreateSpecialty_MissingName(t *testing.T) {
	repo := memory.NewStore().Specialties()
	rec := &recorder{}

	_, err := NewCreateSpecialty(repo, rec).Execute(context.Background(), staff, domain.CreateInput{Name: "  "})
	assert.True(t, httperr.Is(err, httperr.KindMissingField))

	list, err := NewListSpecialties(repo).Execute(context.Background(), staff)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, rec.events)
}

func TestGetSpecialty_NotFound(t *testing.T) {
	_, err := NewGetSpecialty(memory.NewStore().Specialties()).Execute(context.Background(), staff, 42)
	assert.True(t, httperr.IsBusiness(err, "specialty_not_found"))

	_, err = NewGetSpecialty(memory.NewStore().Specialties()).Execute(context.Background(), nil, 42)
	assert.True(t, httperr.Is(err, httperr.KindUnauthenticated))
}
