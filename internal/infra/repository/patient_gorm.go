package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/models"
)

type PatientGormRepository struct {
	db *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) *PatientGormRepository {
	return &PatientGormRepository{db: db}
}

func (r *PatientGormRepository) GetPatient(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *PatientGormRepository) ListPatients(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Patient, error) {

	q := r.db.WithContext(ctx).Model(&models.Patient{})

	if s := strings.TrimSpace(filter.Query); s != "" {
		q = q.Where("name ILIKE ? OR national_id = ?", "%"+escapeLike(s)+"%", s)
	}

	var patients []models.Patient
	if err := q.Order("name ASC").Find(&patients).Error; err != nil {
		return nil, classify(err)
	}
	return patients, nil
}

func (r *PatientGormRepository) CreatePatient(
	ctx context.Context,
	p *models.Patient,
) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *PatientGormRepository) UpdatePatient(
	ctx context.Context,
	p *models.Patient,
) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *PatientGormRepository) DeletePatient(
	ctx context.Context,
	p *models.Patient,
) error {
	return classify(r.db.WithContext(ctx).Delete(p).Error)
}

func (r *PatientGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PatientGormRepository{db: tx})
	}))
}

// Compile-time check
var _ domain.Repository = (*PatientGormRepository)(nil)
