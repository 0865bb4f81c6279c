package specialty

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/models"
)

type Repository interface {
	GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error)
	ListSpecialties(ctx context.Context) ([]models.Specialty, error)

	CreateSpecialty(ctx context.Context, s *models.Specialty) error
	UpdateSpecialty(ctx context.Context, s *models.Specialty) error
	DeleteSpecialty(ctx context.Context, s *models.Specialty) error

	Transaction(ctx context.Context, fn func(Repository) error) error
}
