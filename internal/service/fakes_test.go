package service

import (
	"context"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests.

// --- Users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Username != "" && existing.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[copied.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetCustomersByCoachID(ctx context.Context, coachID uuid.UUID) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleCustomer && user.CoachID != nil && *user.CoachID == coachID {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetCustomerByFullName(ctx context.Context, coachID uuid.UUID, firstName, lastName string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Role == domain.RoleCustomer && user.CoachID != nil && *user.CoachID == coachID &&
			user.FirstName == firstName && user.LastName == lastName {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// --- Exercises ---

type fakeExerciseRepo struct {
	exercises map[uuid.UUID]*domain.Exercise
	groups    []domain.MuscleGroup
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[uuid.UUID]*domain.Exercise)}
}

func (r *fakeExerciseRepo) add(exercise *domain.Exercise) *domain.Exercise {
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	r.exercises[exercise.ID] = exercise
	return exercise
}

func (r *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) error {
	r.add(exercise)
	return nil
}

func (r *fakeExerciseRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, id := range ids {
		if exercise, ok := r.exercises[id]; ok {
			out = append(out, *exercise)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) GetVisibleToCoach(ctx context.Context, coachID uuid.UUID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, exercise := range r.exercises {
		if exercise.VisibleTo(coachID) {
			out = append(out, *exercise)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) GetMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	return r.groups, nil
}

func (r *fakeExerciseRepo) GetMuscleGroupByID(ctx context.Context, id uuid.UUID) (*domain.MuscleGroup, error) {
	for i := range r.groups {
		if r.groups[i].ID == id {
			return &r.groups[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) addGroup(name string) domain.MuscleGroup {
	group := domain.MuscleGroup{Base: domain.Base{ID: uuid.New()}, Name: name}
	r.groups = append(r.groups, group)
	return group
}

// --- Training plans ---

type fakePlanRepo struct {
	plans     map[uuid.UUID]*domain.TrainingPlan
	createErr error
	listErr   error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[uuid.UUID]*domain.TrainingPlan)}
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	if r.createErr != nil {
		return r.createErr
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	for i := range plan.Trainings {
		if plan.Trainings[i].ID == uuid.Nil {
			plan.Trainings[i].ID = uuid.New()
		}
	}
	r.plans[plan.ID] = plan
	return nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]domain.TrainingPlan, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.TrainingPlan
	for _, plan := range r.plans {
		if plan.CustomerID == customerID {
			out = append(out, *plan)
		}
	}
	// Newest end date first, matching the storage implementation.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].EndDate.After(out[i].EndDate) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakePlanRepo) CountOverlapping(ctx context.Context, customerID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	for _, plan := range r.plans {
		if plan.CustomerID != customerID {
			continue
		}
		if !start.After(plan.EndDate) && !end.Before(plan.StartDate) {
			count++
		}
	}
	return count, nil
}

func (r *fakePlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

// --- Diets ---

type fakeDietRepo struct {
	templates map[uuid.UUID]*dietWindow // keyed by customer
	days      map[uuid.UUID][]*domain.DietDay
	updateErr error
}

type dietWindow struct {
	diet  *domain.Diet
	start time.Time
	end   time.Time
}

func newFakeDietRepo() *fakeDietRepo {
	return &fakeDietRepo{
		templates: make(map[uuid.UUID]*dietWindow),
		days:      make(map[uuid.UUID][]*domain.DietDay),
	}
}

func (r *fakeDietRepo) addTemplate(customerID uuid.UUID, diet *domain.Diet, start, end time.Time) {
	if diet.ID == uuid.Nil {
		diet.ID = uuid.New()
	}
	r.templates[customerID] = &dietWindow{diet: diet, start: start, end: end}
}

func (r *fakeDietRepo) GetTemplateForDate(ctx context.Context, customerID uuid.UUID, day time.Time) (*domain.Diet, error) {
	window, ok := r.templates[customerID]
	if !ok || day.Before(window.start) || day.After(window.end) {
		return nil, repository.ErrNotFound
	}
	copied := *window.diet
	for _, fact := range r.days[window.diet.ID] {
		copied.Days = append(copied.Days, *fact)
	}
	return &copied, nil
}

func (r *fakeDietRepo) CreateDay(ctx context.Context, day *domain.DietDay) error {
	for _, existing := range r.days[day.DietID] {
		if existing.Date.Equal(day.Date) {
			return repository.ErrDuplicate
		}
	}
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	r.days[day.DietID] = append(r.days[day.DietID], day)
	return nil
}

func (r *fakeDietRepo) GetDay(ctx context.Context, dietID uuid.UUID, day time.Time) (*domain.DietDay, error) {
	for _, fact := range r.days[dietID] {
		if fact.Date.Equal(day) {
			copied := *fact
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDietRepo) UpdateDaySlots(ctx context.Context, day *domain.DietDay, expectedVersion int) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.days[day.DietID] {
		if existing.ID == day.ID {
			if existing.Version != expectedVersion {
				return repository.ErrVersionConflict
			}
			updated := *day
			updated.Version = expectedVersion + 1
			r.days[day.DietID][i] = &updated
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- Products ---

type fakeProductRepo struct {
	products map[string]*domain.Product
	history  []domain.CustomerHistoryProduct
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (r *fakeProductRepo) add(product *domain.Product) *domain.Product {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.Barcode] = product
	return product
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	product, ok := r.products[barcode]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) SaveHistory(ctx context.Context, entry *domain.CustomerHistoryProduct) error {
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakeProductRepo) GetHistoryByCustomerID(ctx context.Context, customerID uuid.UUID, limit int) ([]domain.CustomerHistoryProduct, error) {
	var out []domain.CustomerHistoryProduct
	for i := len(r.history) - 1; i >= 0 && len(out) < limit; i-- {
		if r.history[i].CustomerID == customerID {
			out = append(out, r.history[i])
		}
	}
	return out, nil
}
