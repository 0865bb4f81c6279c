package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/clinicadev/clinic-api/internal/domain/specialty"
	"github.com/clinicadev/clinic-api/internal/models"
)

type SpecialtyGormRepository struct {
	db *gorm.DB
}

func NewSpecialtyGormRepository(db *gorm.DB) *SpecialtyGormRepository {
	return &SpecialtyGormRepository{db: db}
}

func (r *SpecialtyGormRepository) GetSpecialty(
	ctx context.Context,
	id uint,
) (*models.Specialty, error) {

	var s models.Specialty
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, classify(err)
	}
	return &s, nil
}

func (r *SpecialtyGormRepository) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	var specialties []models.Specialty
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&specialties).Error; err != nil {
		return nil, classify(err)
	}
	return specialties, nil
}

func (r *SpecialtyGormRepository) CreateSpecialty(ctx context.Context, s *models.Specialty) error {
	return classify(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SpecialtyGormRepository) UpdateSpecialty(ctx context.Context, s *models.Specialty) error {
	return classify(r.db.WithContext(ctx).Save(s).Error)
}

func (r *SpecialtyGormRepository) DeleteSpecialty(ctx context.Context, s *models.Specialty) error {
	return classify(r.db.WithContext(ctx).Delete(s).Error)
}

func (r *SpecialtyGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SpecialtyGormRepository{db: tx})
	}))
}

// Compile-time check
var _ domain.Repository = (*SpecialtyGormRepository)(nil)
