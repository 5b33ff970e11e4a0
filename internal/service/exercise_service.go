package service

import (
	"context"
	"errors"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrExerciseValidation = errors.New("exercise validation failed")
	ErrMuscleGroupUnknown = errors.New("muscle group does not exist")
)

// --- Service Interface ---
type ExerciseService interface {
	// CreateExercise adds a custom exercise owned by the coach.
	CreateExercise(ctx context.Context, coachID uuid.UUID, name string, muscleGroupID uuid.UUID) (*domain.Exercise, error)
	// GetExercisesForCoach lists shared exercises plus the coach's own.
	GetExercisesForCoach(ctx context.Context, coachID uuid.UUID) ([]domain.Exercise, error)
	GetMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise handles the creation of a custom exercise by a coach.
func (s *exerciseService) CreateExercise(ctx context.Context, coachID uuid.UUID, name string, muscleGroupID uuid.UUID) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrExerciseValidation
	}

	// The muscle group must exist before the write; otherwise the failure
	// would only surface as a constraint violation.
	if _, err := s.exerciseRepo.GetMuscleGroupByID(ctx, muscleGroupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleGroupUnknown
		}
		return nil, err
	}

	exercise := &domain.Exercise{
		Name:          name,
		CoachID:       &coachID,
		MuscleGroupID: muscleGroupID,
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// GetExercisesForCoach retrieves every exercise visible to the coach.
func (s *exerciseService) GetExercisesForCoach(ctx context.Context, coachID uuid.UUID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetVisibleToCoach(ctx, coachID)
}

// GetMuscleGroups lists the muscle group catalogue.
func (s *exerciseService) GetMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	return s.exerciseRepo.GetMuscleGroups(ctx)
}
