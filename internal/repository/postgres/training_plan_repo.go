package postgres

import (
	"context"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// trainingPlanRepository implements repository.TrainingPlanRepository on
// postgres.
type trainingPlanRepository struct {
	db *gorm.DB
}

// NewTrainingPlanRepository creates a postgres-backed training plan
// repository.
func NewTrainingPlanRepository(db *gorm.DB) repository.TrainingPlanRepository {
	return &trainingPlanRepository{db: db}
}

// Create persists the aggregate in one transaction. Gorm walks the nested
// associations (diets, trainings, join rows), so a failure anywhere rolls
// back everything.
func (r *trainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(plan).Error
	})
	return translateError(err)
}

func (r *trainingPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error) {
	var plan domain.TrainingPlan
	err := r.db.WithContext(ctx).
		Preload("Trainings").
		Preload("Trainings.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_on_trainings.ordering")
		}).
		Preload("Trainings.Exercises.Exercise").
		Preload("Trainings.Exercises.Exercise.MuscleGroup").
		Preload("Diets").
		First(&plan, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

func (r *trainingPlanRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]domain.TrainingPlan, error) {
	var plans []domain.TrainingPlan
	err := r.db.WithContext(ctx).
		Preload("Trainings").
		Preload("Diets").
		Where("customer_id = ?", customerID).
		Order("end_date DESC").
		Find(&plans).Error
	if err != nil {
		return nil, translateError(err)
	}
	return plans, nil
}

func (r *trainingPlanRepository) CountOverlapping(ctx context.Context, customerID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.TrainingPlan{}).
		Where("customer_id = ? AND start_date <= ? AND end_date >= ?", customerID, end, start).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *trainingPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Children go with the plan through the FK cascades.
	result := r.db.WithContext(ctx).Delete(&domain.TrainingPlan{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
