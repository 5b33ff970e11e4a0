package postgres

import (
	"context"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dietRepository implements repository.DietRepository on postgres.
type dietRepository struct {
	db *gorm.DB
}

// NewDietRepository creates a postgres-backed diet repository.
func NewDietRepository(db *gorm.DB) repository.DietRepository {
	return &dietRepository{db: db}
}

// GetTemplateForDate resolves the template through a single inclusive range
// filter on the owning plan's window. Should several plans overlap the date
// (legacy rows created before the overlap invariant), the most recently
// created template wins.
func (r *dietRepository) GetTemplateForDate(ctx context.Context, customerID uuid.UUID, day time.Time) (*domain.Diet, error) {
	var diet domain.Diet
	err := r.db.WithContext(ctx).
		Joins("JOIN training_plans ON training_plans.id = diets.training_plan_id").
		Where("training_plans.customer_id = ? AND training_plans.start_date <= ? AND training_plans.end_date >= ?",
			customerID, day, day).
		Order("diets.created_at DESC").
		Preload("Days").
		First(&diet).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &diet, nil
}

func (r *dietRepository) CreateDay(ctx context.Context, day *domain.DietDay) error {
	return translateError(r.db.WithContext(ctx).Create(day).Error)
}

func (r *dietRepository) GetDay(ctx context.Context, dietID uuid.UUID, day time.Time) (*domain.DietDay, error) {
	var fact domain.DietDay
	err := r.db.WithContext(ctx).
		Where("diet_id = ? AND date = ?", dietID, day).
		First(&fact).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &fact, nil
}

// UpdateDaySlots writes all four slots behind a compare-and-swap on the
// version column, so two concurrent writers cannot silently overwrite each
// other's products.
func (r *dietRepository) UpdateDaySlots(ctx context.Context, day *domain.DietDay, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.DietDay{}).
		Where("id = ? AND version = ?", day.ID, expectedVersion).
		Updates(map[string]interface{}{
			"breakfast": day.Breakfast,
			"lunch":     day.Lunch,
			"dinner":    day.Dinner,
			"snacks":    day.Snacks,
			"version":   expectedVersion + 1,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrVersionConflict
	}
	day.Version = expectedVersion + 1
	return nil
}
