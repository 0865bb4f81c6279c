package patient

import (
	"context"

	"github.com/clinicadev/clinic-api/internal/models"
)

type ListFilter struct {
	// Query matches name (case-insensitive) or national id.
	Query string
}

type Repository interface {
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
	ListPatients(ctx context.Context, filter ListFilter) ([]models.Patient, error)

	CreatePatient(ctx context.Context, p *models.Patient) error
	UpdatePatient(ctx context.Context, p *models.Patient) error
	DeletePatient(ctx context.Context, p *models.Patient) error

	// Transaction runs fn against a repository bound to one transaction,
	// committing when fn returns nil and rolling back otherwise.
	Transaction(ctx context.Context, fn func(Repository) error) error
}
