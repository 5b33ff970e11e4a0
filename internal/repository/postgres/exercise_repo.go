package postgres

import (
	"context"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// exerciseRepository implements repository.ExerciseRepository on postgres.
type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a postgres-backed exercise repository.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	return translateError(r.db.WithContext(ctx).Create(exercise).Error)
}

func (r *exerciseRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.db.WithContext(ctx).
		Preload("MuscleGroup").
		Where("id IN ?", ids).
		Find(&exercises).Error
	if err != nil {
		return nil, translateError(err)
	}
	return exercises, nil
}

func (r *exerciseRepository) GetVisibleToCoach(ctx context.Context, coachID uuid.UUID) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.db.WithContext(ctx).
		Preload("MuscleGroup").
		Where("coach_id IS NULL OR coach_id = ?", coachID).
		Order("name").
		Find(&exercises).Error
	if err != nil {
		return nil, translateError(err)
	}
	return exercises, nil
}

func (r *exerciseRepository) GetMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	var groups []domain.MuscleGroup
	err := r.db.WithContext(ctx).Order("name").Find(&groups).Error
	if err != nil {
		return nil, translateError(err)
	}
	return groups, nil
}

func (r *exerciseRepository) GetMuscleGroupByID(ctx context.Context, id uuid.UUID) (*domain.MuscleGroup, error) {
	var group domain.MuscleGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &group, nil
}
