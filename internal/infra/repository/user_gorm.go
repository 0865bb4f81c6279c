package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *UserGormRepository) FindUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *UserGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, classify(err)
	}
	return users, nil
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return classify(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	return classify(r.db.WithContext(ctx).Save(u).Error)
}

// DeleteUser fails with a foreign_key_violation while appointments still
// reference the user as their author.
func (r *UserGormRepository) DeleteUser(ctx context.Context, u *models.User) error {
	return classify(r.db.WithContext(ctx).Delete(u).Error)
}

func (r *UserGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserGormRepository{db: tx})
	}))
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
