package repository

import (
	"context"
	"time"

	"coachhub/coaching-app/internal/domain"

	"github.com/google/uuid"
)

// Error constants for repository layer
var (
	ErrNotFound        = RepositoryError("not found")
	ErrDuplicate       = RepositoryError("already exists")
	ErrVersionConflict = RepositoryError("version conflict")
	ErrUpdateFailed    = RepositoryError("update failed")
	ErrDeleteFailed    = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetCustomersByCoachID(ctx context.Context, coachID uuid.UUID) ([]domain.User, error)
	GetCustomerByFullName(ctx context.Context, coachID uuid.UUID, firstName, lastName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExerciseRepository defines the interface for interacting with the exercise
// library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Exercise, error)
	// GetVisibleToCoach returns shared exercises plus the coach's own.
	GetVisibleToCoach(ctx context.Context, coachID uuid.UUID) ([]domain.Exercise, error)
	GetMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error)
	GetMuscleGroupByID(ctx context.Context, id uuid.UUID) (*domain.MuscleGroup, error)
}

// TrainingPlanRepository defines the interface for interacting with training
// plan aggregates.
type TrainingPlanRepository interface {
	// Create persists the whole aggregate (plan, diets, trainings, join
	// rows) atomically; on error no row remains visible.
	Create(ctx context.Context, plan *domain.TrainingPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error)
	// GetByCustomerID returns the customer's plans, most recent end date
	// first.
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]domain.TrainingPlan, error)
	// CountOverlapping counts the customer's plans whose window intersects
	// [start, end], boundaries included.
	CountOverlapping(ctx context.Context, customerID uuid.UUID, start, end time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DietRepository defines the interface for interacting with diet templates
// and day-facts.
type DietRepository interface {
	// GetTemplateForDate resolves the diet template whose plan window
	// contains the given day for the customer, day-facts preloaded. Returns
	// ErrNotFound when no plan covers the date.
	GetTemplateForDate(ctx context.Context, customerID uuid.UUID, day time.Time) (*domain.Diet, error)
	CreateDay(ctx context.Context, day *domain.DietDay) error
	GetDay(ctx context.Context, dietID uuid.UUID, day time.Time) (*domain.DietDay, error)
	// UpdateDaySlots writes the day's meal slots guarded by an optimistic
	// check on expectedVersion; returns ErrVersionConflict on a lost race.
	UpdateDaySlots(ctx context.Context, day *domain.DietDay, expectedVersion int) error
}

// ProductRepository defines the interface for nutrition lookups and the
// customer's consumption history.
type ProductRepository interface {
	GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	SaveHistory(ctx context.Context, entry *domain.CustomerHistoryProduct) error
	GetHistoryByCustomerID(ctx context.Context, customerID uuid.UUID, limit int) ([]domain.CustomerHistoryProduct, error)
}
