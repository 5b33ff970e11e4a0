package postgres

import (
	"context"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userRepository implements repository.UserRepository on postgres.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a postgres-backed user repository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetCustomersByCoachID(ctx context.Context, coachID uuid.UUID) ([]domain.User, error) {
	var customers []domain.User
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND role = ?", coachID, domain.RoleCustomer).
		Order("last_name, first_name").
		Find(&customers).Error
	if err != nil {
		return nil, translateError(err)
	}
	return customers, nil
}

func (r *userRepository) GetCustomerByFullName(ctx context.Context, coachID uuid.UUID, firstName, lastName string) (*domain.User, error) {
	var customer domain.User
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND role = ? AND first_name = ? AND last_name = ?",
			coachID, domain.RoleCustomer, firstName, lastName).
		First(&customer).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return translateError(r.db.WithContext(ctx).Save(user).Error)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
