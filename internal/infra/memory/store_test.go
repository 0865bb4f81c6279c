package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

func strp(s string) *string { return &s }

func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestStore_SequencesPerTable(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "ana")

	p := &models.Patient{Name: "Maria"}
	require.NoError(t, s.Patients().CreatePatient(ctx, p))
	sp := &models.Specialty{Name: "Cardio"}
	require.NoError(t, s.Specialties().CreateSpecialty(ctx, sp))
	ap := &models.Appointment{PatientName: "Maria", CreatedByID: u.ID}
	require.NoError(t, s.Appointments().CreateAppointment(ctx, ap))

	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, uint(1), p.ID)
	assert.Equal(t, uint(1), sp.ID)
	assert.Equal(t, uint(1), ap.ID)
	assert.False(t, ap.CreatedAt.IsZero())
}

func TestStore_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "ana")

	err := s.Users().CreateUser(ctx, &models.User{Username: "ana"})
	assert.True(t, httperr.Is(err, httperr.KindStorageFailure))

	require.NoError(t, s.Patients().CreatePatient(ctx, &models.Patient{Name: "A", NationalID: strp("123")}))
	err = s.Patients().CreatePatient(ctx, &models.Patient{Name: "B", NationalID: strp("123")})
	assert.True(t, httperr.Is(err, httperr.KindStorageFailure))

	// Absent values never collide.
	require.NoError(t, s.Patients().CreatePatient(ctx, &models.Patient{Name: "C"}))
	require.NoError(t, s.Patients().CreatePatient(ctx, &models.Patient{Name: "D"}))
}

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.Patients().Transaction(ctx, func(tx patient.Repository) error {
		require.NoError(t, tx.CreatePatient(ctx, &models.Patient{Name: "Maria"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := s.Patients().ListPatients(ctx, patient.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	// The sequence is not rewound.
	p := &models.Patient{Name: "Maria"}
	require.NoError(t, s.Patients().CreatePatient(ctx, p))
	assert.Equal(t, uint(2), p.ID)
}

func TestStore_RollbackKeepsOutsideWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "ana")

	p := &models.Patient{Name: "Maria", NationalID: strp("111")}
	require.NoError(t, s.Patients().CreatePatient(ctx, p))
	ap := &models.Appointment{PatientID: &p.ID, PatientName: p.Name, CreatedByID: u.ID}
	require.NoError(t, s.Appointments().CreateAppointment(ctx, ap))

	var outside *models.Patient
	err := s.Patients().Transaction(ctx, func(tx patient.Repository) error {
		renamed := *p
		renamed.Name = "Maria Silva"
		require.NoError(t, tx.UpdatePatient(ctx, &renamed))
		require.NoError(t, tx.DeletePatient(ctx, &renamed))
		require.NoError(t, tx.CreatePatient(ctx, &models.Patient{Name: "Temp"}))

		outside = &models.Patient{Name: "Ana"}
		require.NoError(t, s.Patients().CreatePatient(ctx, outside))
		return errors.New("abort")
	})
	require.Error(t, err)

	got, err := s.Patients().GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Name)

	// The reference nulled by the delete is restored too.
	gotAp, err := s.Appointments().GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	require.NotNil(t, gotAp.PatientID)
	assert.Equal(t, p.ID, *gotAp.PatientID)

	list, err := s.Patients().ListPatients(ctx, patient.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "Maria", list[1].Name)
	assert.Equal(t, outside.ID, list[0].ID)
}

func TestStore_DeleteDetachesAppointments(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "ana")

	p := &models.Patient{Name: "Maria"}
	require.NoError(t, s.Patients().CreatePatient(ctx, p))
	sp := &models.Specialty{Name: "Cardio"}
	require.NoError(t, s.Specialties().CreateSpecialty(ctx, sp))

	ap := &models.Appointment{
		PatientID:     &p.ID,
		PatientName:   p.Name,
		SpecialtyID:   &sp.ID,
		SpecialtyName: strp(sp.Name),
		CreatedByID:   u.ID,
	}
	require.NoError(t, s.Appointments().CreateAppointment(ctx, ap))

	require.NoError(t, s.Patients().DeletePatient(ctx, p))
	require.NoError(t, s.Specialties().DeleteSpecialty(ctx, sp))

	got, err := s.Appointments().GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PatientID)
	assert.Nil(t, got.SpecialtyID)
	assert.Equal(t, "Maria", got.PatientName)
	assert.Equal(t, "Cardio", *got.SpecialtyName)

	err = s.Users().DeleteUser(ctx, u)
	assert.True(t, httperr.IsBusiness(err, "foreign_key_violation"))
}

func TestStore_AppointmentRequiresAuthor(t *testing.T) {
	err := NewStore().Appointments().CreateAppointment(context.Background(), &models.Appointment{
		PatientName: "Bob",
		CreatedByID: 7,
	})
	assert.True(t, httperr.IsBusiness(err, "foreign_key_violation"))
}

func TestStore_ListAppointments(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := seedUser(t, s, "ana")
	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	add := func(name, specialty string, at time.Time) {
		require.NoError(t, s.Appointments().CreateAppointment(ctx, &models.Appointment{
			PatientName:       name,
			PatientNationalID: strp(name + "-cpf"),
			SpecialtyName:     strp(specialty),
			ScheduledAt:       at,
			CreatedByID:       u.ID,
		}))
	}
	add("maria", "Cardiologia", day.Add(10*time.Hour))
	add("joao", "Dermatologia", day.Add(9*time.Hour))
	add("ana", "Cardiologia", day.Add(24*time.Hour))

	all, err := s.Appointments().ListAppointments(ctx, appointment.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ana", all[0].PatientName)
	assert.Equal(t, "joao", all[2].PatientName)

	cardio, err := s.Appointments().ListAppointments(ctx, appointment.ListFilter{Specialty: "cardio"})
	require.NoError(t, err)
	assert.Len(t, cardio, 2)

	end := day.Add(23 * time.Hour)
	sameDay, err := s.Appointments().ListAppointments(ctx, appointment.ListFilter{Start: &day, End: &end})
	require.NoError(t, err)
	assert.Len(t, sameDay, 2)

	byCPF, err := s.Appointments().ListAppointments(ctx, appointment.ListFilter{PatientNationalID: "joao-cpf"})
	require.NoError(t, err)
	require.Len(t, byCPF, 1)
	assert.Equal(t, "joao", byCPF[0].PatientName)
}

func TestStore_ListPatientsSearch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, p := range []*models.Patient{
		{Name: "Maria Silva", NationalID: strp("111")},
		{Name: "Ana Souza", NationalID: strp("222")},
		{Name: "Mariana Lima"},
	} {
		require.NoError(t, s.Patients().CreatePatient(ctx, p))
	}

	got, err := s.Patients().ListPatients(ctx, patient.ListFilter{Query: "mari"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Maria Silva", got[0].Name)

	got, err = s.Patients().ListPatients(ctx, patient.ListFilter{Query: "222"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana Souza", got[0].Name)
}
