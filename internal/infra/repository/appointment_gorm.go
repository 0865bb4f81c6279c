package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/models"
)

// AppointmentGormRepository reads the referenced rows through the same
// handle it writes with, so lookups made inside Transaction see the
// transaction's snapshot.
type AppointmentGormRepository struct {
	db *gorm.DB

	patients    *PatientGormRepository
	specialties *SpecialtyGormRepository
	users       *UserGormRepository
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		db:          db,
		patients:    NewPatientGormRepository(db),
		specialties: NewSpecialtyGormRepository(db),
		users:       NewUserGormRepository(db),
	}
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	return r.patients.GetPatient(ctx, id)
}

func (r *AppointmentGormRepository) GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error) {
	return r.specialties.GetSpecialty(ctx, id)
}

func (r *AppointmentGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return r.users.GetUser(ctx, id)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, classify(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.PatientID != nil {
		q = q.Where("patient_id = ?", *filter.PatientID)
	}
	if s := strings.TrimSpace(filter.PatientNationalID); s != "" {
		q = q.Where("patient_national_id = ?", s)
	}
	if filter.SpecialtyID != nil {
		q = q.Where("specialty_id = ?", *filter.SpecialtyID)
	}
	if s := strings.TrimSpace(filter.Specialty); s != "" {
		q = q.Where("specialty_name ILIKE ?", "%"+escapeLike(s)+"%")
	}
	if filter.Start != nil {
		q = q.Where("scheduled_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("scheduled_at <= ?", *filter.End)
	}

	var apps []models.Appointment
	if err := q.Order("scheduled_at DESC").Order("id DESC").Find(&apps).Error; err != nil {
		return nil, classify(err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error)
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classify(r.db.WithContext(ctx).Delete(ap).Error)
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAppointmentGormRepository(tx))
	}))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
