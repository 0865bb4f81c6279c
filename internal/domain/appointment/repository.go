package appointment

import (
	"context"
	"time"

	"github.com/clinicadev/clinic-api/internal/models"
)

// Lookup fetches the rows an appointment may reference. Implementations
// return httperr.ErrRecordNotFound when the id does not exist.
type Lookup interface {
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
	GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type ListFilter struct {
	PatientID         *uint
	PatientNationalID string
	SpecialtyID       *uint
	// Specialty matches the specialty snapshot, case-insensitive substring.
	Specialty string
	Start     *time.Time
	End       *time.Time
}

type Repository interface {
	Lookup

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter ListFilter) ([]models.Appointment, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, ap *models.Appointment) error

	Transaction(ctx context.Context, fn func(Repository) error) error
}
