package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// --- Error Definitions ---
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerNotManaged = errors.New("customer is not managed by this coach")
	ErrInvalidPlanWindow  = errors.New("plan window is invalid: end date must not precede start date")
	ErrNegativeMacros     = errors.New("diet macro values must not be negative")
	ErrPlanOverlap        = errors.New("customer already has a plan overlapping this window")
	ErrExerciseNotVisible = errors.New("exercise is not visible to this coach")
	ErrPlanNotFound       = errors.New("training plan not found")
	ErrPlanCreationFailed = errors.New("training plan creation failed")
)

// DietInput is one nutrition target for the plan window. Calories may be
// left zero, in which case they are derived from the macros.
type DietInput struct {
	Proteins int
	Fats     int
	Carbs    int
	Calories int
}

// TrainingInput is one training with its exercise assignments in execution
// order.
type TrainingInput struct {
	Name      string
	Exercises []ExerciseAssignment
}

// PlanInput is the structured request for a full plan aggregate.
type PlanInput struct {
	StartDate    time.Time
	EndDate      time.Time
	Notes        string
	SetRest      int
	ExerciseRest int
	Diets        []DietInput
	Trainings    []TrainingInput
}

// --- Service Interface ---
type PlanService interface {
	// CreateTrainingPlan assembles and persists the whole aggregate in one
	// transaction and returns it with trainings' exercises sorted by
	// ordering.
	CreateTrainingPlan(ctx context.Context, coachID, customerID uuid.UUID, input PlanInput) (*domain.TrainingPlan, error)
	GetTrainingPlan(ctx context.Context, planID uuid.UUID) (*domain.TrainingPlan, error)
	GetCustomerPlans(ctx context.Context, customerID uuid.UUID) ([]domain.TrainingPlan, error)
	DeleteTrainingPlan(ctx context.Context, coachID, planID uuid.UUID) error
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	planRepo     repository.TrainingPlanRepository
	logger       *slog.Logger
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	planRepo repository.TrainingPlanRepository,
	logger *slog.Logger,
) PlanService {
	return &planService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		planRepo:     planRepo,
		logger:       logger,
	}
}

// CreateTrainingPlan validates the request, computes ordering and superset
// groups, and persists the aggregate. All validation happens before the
// first write; a creation failure leaves no partial rows behind.
func (s *planService) CreateTrainingPlan(ctx context.Context, coachID, customerID uuid.UUID, input PlanInput) (*domain.TrainingPlan, error) {
	// 1. Validate the plan window.
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidPlanWindow
	}
	for _, diet := range input.Diets {
		if diet.Proteins < 0 || diet.Fats < 0 || diet.Carbs < 0 || diet.Calories < 0 {
			return nil, ErrNegativeMacros
		}
	}

	// 2. Verify the customer exists and is managed by this coach.
	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if !customer.IsCustomer() {
		return nil, ErrCustomerNotFound
	}
	if customer.CoachID == nil || *customer.CoachID != coachID {
		return nil, ErrCustomerNotManaged
	}

	// 3. Reject a window overlapping an existing plan.
	overlapping, err := s.planRepo.CountOverlapping(ctx, customerID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrPlanOverlap
	}

	// 4. Resolve every referenced exercise and check visibility before any
	// row is written.
	if err := s.checkExerciseVisibility(ctx, coachID, input.Trainings); err != nil {
		return nil, err
	}

	// 5. Build the aggregate: diets with derived calories, trainings in
	// input order, join rows with zero-based ordering and superset groups.
	plan := &domain.TrainingPlan{
		CustomerID:   customerID,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Notes:        input.Notes,
		SetRest:      input.SetRest,
		ExerciseRest: input.ExerciseRest,
	}
	if plan.SetRest <= 0 {
		plan.SetRest = domain.DefaultSetRest
	}
	if plan.ExerciseRest <= 0 {
		plan.ExerciseRest = domain.DefaultExerciseRest
	}

	for _, diet := range input.Diets {
		calories := diet.Calories
		if calories == 0 {
			calories = domain.CaloriesFromMacros(diet.Proteins, diet.Fats, diet.Carbs)
		}
		plan.Diets = append(plan.Diets, domain.Diet{
			TotalProteins: diet.Proteins,
			TotalFats:     diet.Fats,
			TotalCarbs:    diet.Carbs,
			TotalCalories: calories,
		})
	}

	for _, trainingInput := range input.Trainings {
		training := domain.Training{Name: trainingInput.Name}
		groups := AssignSupersetGroups(trainingInput.Exercises)
		for position, assignment := range trainingInput.Exercises {
			row := domain.ExerciseOnTraining{
				ExerciseID: assignment.ExerciseID,
				Sets:       datatypes.JSONSlice[int](assignment.Sets),
				Ordering:   position,
			}
			if group, ok := groups[assignment.ExerciseID]; ok {
				groupID := group
				row.SupersetID = &groupID
			}
			training.Exercises = append(training.Exercises, row)
		}
		plan.Trainings = append(plan.Trainings, training)
	}

	// 6. Persist atomically.
	if err := s.planRepo.Create(ctx, plan); err != nil {
		s.logger.Error("training plan creation failed",
			"customer_id", customerID, "error", err)
		return nil, ErrPlanCreationFailed
	}

	s.logger.Info("training plan created",
		"plan_id", plan.ID,
		"customer_id", customerID,
		"trainings", len(plan.Trainings),
		"diets", len(plan.Diets))

	// Refetch so exercises carry their library entries, sorted by ordering.
	return s.GetTrainingPlan(ctx, plan.ID)
}

// checkExerciseVisibility ensures every referenced exercise is either shared
// or owned by the requesting coach.
func (s *planService) checkExerciseVisibility(ctx context.Context, coachID uuid.UUID, trainings []TrainingInput) error {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, training := range trainings {
		for _, assignment := range training.Exercises {
			if !seen[assignment.ExerciseID] {
				seen[assignment.ExerciseID] = true
				ids = append(ids, assignment.ExerciseID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	visible := make(map[uuid.UUID]bool, len(exercises))
	for i := range exercises {
		if exercises[i].VisibleTo(coachID) {
			visible[exercises[i].ID] = true
		}
	}
	for _, id := range ids {
		if !visible[id] {
			return ErrExerciseNotVisible
		}
	}
	return nil
}

// GetTrainingPlan returns the full aggregate with trainings' exercises
// sorted by their persisted ordering.
func (s *planService) GetTrainingPlan(ctx context.Context, planID uuid.UUID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	plan.SortExercises()
	return plan, nil
}

// GetCustomerPlans returns the customer's plans, most recent first.
func (s *planService) GetCustomerPlans(ctx context.Context, customerID uuid.UUID) ([]domain.TrainingPlan, error) {
	return s.planRepo.GetByCustomerID(ctx, customerID)
}

// DeleteTrainingPlan removes the plan; trainings, join rows and diet
// templates follow through the cascades. Library exercises and muscle
// groups are untouched.
func (s *planService) DeleteTrainingPlan(ctx context.Context, coachID, planID uuid.UUID) error {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	customer, err := s.userRepo.GetByID(ctx, plan.CustomerID)
	if err != nil {
		return err
	}
	if customer.CoachID == nil || *customer.CoachID != coachID {
		return ErrCustomerNotManaged
	}

	return s.planRepo.Delete(ctx, planID)
}
