package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"coachhub/coaching-app/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planFixture struct {
	userRepo     *fakeUserRepo
	exerciseRepo *fakeExerciseRepo
	planRepo     *fakePlanRepo
	service      PlanService
	coach        *domain.User
	customer     *domain.User
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	exerciseRepo := newFakeExerciseRepo()
	planRepo := newFakePlanRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	coach := userRepo.add(&domain.User{Role: domain.RoleCoach, FirstName: "Anna"})
	coachID := coach.ID
	customer := userRepo.add(&domain.User{Role: domain.RoleCustomer, FirstName: "Boris", CoachID: &coachID})

	return &planFixture{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		planRepo:     planRepo,
		service:      NewPlanService(userRepo, exerciseRepo, planRepo, logger),
		coach:        coach,
		customer:     customer,
	}
}

func (f *planFixture) sharedExercise() *domain.Exercise {
	return f.exerciseRepo.add(&domain.Exercise{Name: "Squat"})
}

func window(startDay, endDay int) (time.Time, time.Time) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, startDay), base.AddDate(0, 0, endDay)
}

func TestPlanService_CreateTrainingPlan_AssignsOrderingAndGroups(t *testing.T) {
	f := newPlanFixture(t)
	bench := f.sharedExercise()
	row := f.sharedExercise()
	curl := f.sharedExercise()
	start, end := window(0, 27)

	plan, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Trainings: []TrainingInput{{
			Name: "Push day",
			Exercises: []ExerciseAssignment{
				{ExerciseID: bench.ID, Sets: []int{10, 8, 6}, Supersets: []uuid.UUID{row.ID}},
				{ExerciseID: row.ID, Sets: []int{10, 10}},
				{ExerciseID: curl.ID, Sets: []int{12}},
			},
		}},
	})
	require.NoError(t, err)
	require.Len(t, plan.Trainings, 1)

	exercises := plan.Trainings[0].Exercises
	require.Len(t, exercises, 3)

	// Submission order is preserved as zero-based ordering.
	for i, ex := range exercises {
		assert.Equal(t, i, ex.Ordering)
	}

	// The linked pair shares a group, the standalone exercise has none.
	require.NotNil(t, exercises[0].SupersetID)
	require.NotNil(t, exercises[1].SupersetID)
	assert.Equal(t, *exercises[0].SupersetID, *exercises[1].SupersetID)
	assert.Nil(t, exercises[2].SupersetID)
}

func TestPlanService_CreateTrainingPlan_DistinctGroupsAcrossTrainings(t *testing.T) {
	f := newPlanFixture(t)
	a := f.sharedExercise()
	b := f.sharedExercise()
	start, end := window(0, 27)

	pair := []ExerciseAssignment{
		{ExerciseID: a.ID, Sets: []int{10}, Supersets: []uuid.UUID{b.ID}},
		{ExerciseID: b.ID, Sets: []int{10}},
	}
	plan, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Trainings: []TrainingInput{
			{Name: "Day A", Exercises: pair},
			{Name: "Day B", Exercises: pair},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Trainings, 2)

	groupA := plan.Trainings[0].Exercises[0].SupersetID
	groupB := plan.Trainings[1].Exercises[0].SupersetID
	require.NotNil(t, groupA)
	require.NotNil(t, groupB)
	assert.NotEqual(t, *groupA, *groupB, "the same pair in two trainings must not share a group")
}

func TestPlanService_CreateTrainingPlan_DerivesCaloriesFromMacros(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 13)

	plan, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Diets:     []DietInput{{Proteins: 200, Fats: 100, Carbs: 400}},
	})
	require.NoError(t, err)
	require.Len(t, plan.Diets, 1)

	// 200*4 + 100*9 + 400*4
	assert.Equal(t, 2700, plan.Diets[0].TotalCalories)
}

func TestPlanService_CreateTrainingPlan_KeepsExplicitCalories(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 13)

	plan, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Diets:     []DietInput{{Proteins: 150, Fats: 60, Carbs: 250, Calories: 2200}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2200, plan.Diets[0].TotalCalories)
}

func TestPlanService_CreateTrainingPlan_AppliesRestDefaults(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 6)

	plan, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSetRest, plan.SetRest)
	assert.Equal(t, domain.DefaultExerciseRest, plan.ExerciseRest)
}

func TestPlanService_CreateTrainingPlan_RejectsInvertedWindow(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(10, 3)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
	})
	assert.ErrorIs(t, err, ErrInvalidPlanWindow)
}

func TestPlanService_CreateTrainingPlan_SingleDayWindowAllowed(t *testing.T) {
	f := newPlanFixture(t)
	start, _ := window(0, 0)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   start,
	})
	assert.NoError(t, err)
}

func TestPlanService_CreateTrainingPlan_RejectsNegativeMacros(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 13)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Diets:     []DietInput{{Proteins: -10, Fats: 50, Carbs: 100}},
	})
	assert.ErrorIs(t, err, ErrNegativeMacros)
}

func TestPlanService_CreateTrainingPlan_RejectsUnknownCustomer(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 13)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, uuid.New(), PlanInput{
		StartDate: start,
		EndDate:   end,
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestPlanService_CreateTrainingPlan_RejectsForeignCustomer(t *testing.T) {
	f := newPlanFixture(t)
	otherCoach := f.userRepo.add(&domain.User{Role: domain.RoleCoach})
	otherCoachID := otherCoach.ID
	foreign := f.userRepo.add(&domain.User{Role: domain.RoleCustomer, CoachID: &otherCoachID})
	start, end := window(0, 13)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, foreign.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
	})
	assert.ErrorIs(t, err, ErrCustomerNotManaged)
}

func TestPlanService_CreateTrainingPlan_RejectsOverlappingWindow(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 27)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	// A window touching the last day of the existing plan still overlaps.
	start2, end2 := window(27, 55)
	_, err = f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start2,
		EndDate:   end2,
	})
	assert.ErrorIs(t, err, ErrPlanOverlap)

	// The day after the existing plan ends is free.
	start3, end3 := window(28, 55)
	_, err = f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start3,
		EndDate:   end3,
	})
	assert.NoError(t, err)
}

func TestPlanService_CreateTrainingPlan_RejectsInvisibleExercise(t *testing.T) {
	f := newPlanFixture(t)
	otherCoach := f.userRepo.add(&domain.User{Role: domain.RoleCoach})
	otherCoachID := otherCoach.ID
	private := f.exerciseRepo.add(&domain.Exercise{Name: "Secret move", CoachID: &otherCoachID})
	start, end := window(0, 13)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Trainings: []TrainingInput{{
			Name:      "Day A",
			Exercises: []ExerciseAssignment{{ExerciseID: private.ID, Sets: []int{10}}},
		}},
	})
	assert.ErrorIs(t, err, ErrExerciseNotVisible)
	assert.Empty(t, f.planRepo.plans, "no partial aggregate may be written")
}

func TestPlanService_CreateTrainingPlan_RejectsUnknownExercise(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 13)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Trainings: []TrainingInput{{
			Name:      "Day A",
			Exercises: []ExerciseAssignment{{ExerciseID: uuid.New(), Sets: []int{10}}},
		}},
	})
	assert.ErrorIs(t, err, ErrExerciseNotVisible)
}

func TestPlanService_CreateTrainingPlan_WrapsStorageFailure(t *testing.T) {
	f := newPlanFixture(t)
	f.planRepo.createErr = errors.New("connection reset")
	start, end := window(0, 13)

	_, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
	})
	assert.ErrorIs(t, err, ErrPlanCreationFailed)
}

func TestPlanService_DeleteTrainingPlan(t *testing.T) {
	f := newPlanFixture(t)
	start, end := window(0, 13)
	plan, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	t.Run("foreign coach is rejected", func(t *testing.T) {
		stranger := f.userRepo.add(&domain.User{Role: domain.RoleCoach})
		err := f.service.DeleteTrainingPlan(context.Background(), stranger.ID, plan.ID)
		assert.ErrorIs(t, err, ErrCustomerNotManaged)
	})

	t.Run("owning coach deletes", func(t *testing.T) {
		err := f.service.DeleteTrainingPlan(context.Background(), f.coach.ID, plan.ID)
		require.NoError(t, err)

		_, err = f.service.GetTrainingPlan(context.Background(), plan.ID)
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})

	t.Run("missing plan", func(t *testing.T) {
		err := f.service.DeleteTrainingPlan(context.Background(), f.coach.ID, uuid.New())
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestPlanService_DeleteTrainingPlan_LeavesLibraryIntact(t *testing.T) {
	f := newPlanFixture(t)
	legs := f.exerciseRepo.addGroup("Legs")
	squat := f.sharedExercise()
	squat.MuscleGroupID = legs.ID
	start, end := window(0, 13)

	plan, err := f.service.CreateTrainingPlan(context.Background(), f.coach.ID, f.customer.ID, PlanInput{
		StartDate: start,
		EndDate:   end,
		Trainings: []TrainingInput{{
			Name:      "Leg day",
			Exercises: []ExerciseAssignment{{ExerciseID: squat.ID, Sets: []int{5, 5, 5}}},
		}},
	})
	require.NoError(t, err)
	require.NoError(t, f.service.DeleteTrainingPlan(context.Background(), f.coach.ID, plan.ID))

	// Removing an assignment must not touch the shared exercise library.
	remaining, err := f.exerciseRepo.GetByIDs(context.Background(), []uuid.UUID{squat.ID})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, squat.Name, remaining[0].Name)

	groups, err := f.exerciseRepo.GetMuscleGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, legs.ID, groups[0].ID)
}
