package service

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrCustomerUsernameTaken = errors.New("customer with this phone number already exists")
	ErrCustomerNameTaken     = errors.New("customer with this full name already exists for the coach")
)

// Length of the generated one-time password handed to a new customer.
const otpLength = 6

// CustomerInput is the data a coach submits to create a customer.
type CustomerInput struct {
	PhoneNumber string
	FirstName   string
	LastName    string
}

// CustomerWithPlan pairs a customer with the end date of their latest plan,
// when any plan exists.
type CustomerWithPlan struct {
	User            domain.User
	LastPlanEndDate *time.Time
}

// --- Service Interface ---
type CustomerService interface {
	// CreateCustomer registers a customer under the coach and returns the
	// generated one-time password alongside the created user.
	CreateCustomer(ctx context.Context, coachID uuid.UUID, input CustomerInput) (*domain.User, string, error)
	GetCustomers(ctx context.Context, coachID uuid.UUID) ([]CustomerWithPlan, error)
	GetCustomer(ctx context.Context, coachID, customerID uuid.UUID) (*CustomerWithPlan, error)
}

// --- Service Implementation ---

// customerService implements the CustomerService interface.
type customerService struct {
	userRepo repository.UserRepository
	planRepo repository.TrainingPlanRepository
}

// NewCustomerService creates a new instance of customerService.
func NewCustomerService(userRepo repository.UserRepository, planRepo repository.TrainingPlanRepository) CustomerService {
	return &customerService{
		userRepo: userRepo,
		planRepo: planRepo,
	}
}

// CreateCustomer registers a new customer for the coach.
func (s *customerService) CreateCustomer(ctx context.Context, coachID uuid.UUID, input CustomerInput) (*domain.User, string, error) {
	// 1. Basic input validation.
	if input.FirstName == "" || input.LastName == "" {
		return nil, "", errors.New("first name and last name are required")
	}

	// 2. Reject a duplicate phone number.
	if input.PhoneNumber != "" {
		_, err := s.userRepo.GetByUsername(ctx, input.PhoneNumber)
		if err == nil {
			return nil, "", ErrCustomerUsernameTaken
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, "", err
		}
	}

	// 3. Reject a duplicate full name within this coach's roster.
	_, err := s.userRepo.GetCustomerByFullName(ctx, coachID, input.FirstName, input.LastName)
	if err == nil {
		return nil, "", ErrCustomerNameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	// 4. Generate the one-time password the coach hands to the customer.
	otp := generateOneTimePassword(otpLength)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrHashingFailed
	}

	// 5. Create and save the customer.
	customer := &domain.User{
		Username:     input.PhoneNumber,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleCustomer,
		CoachID:      &coachID,
	}
	if err := s.userRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrCustomerUsernameTaken
		}
		return nil, "", err
	}

	customer.PasswordHash = ""
	return customer, otp, nil
}

// GetCustomers returns the coach's roster with each customer's latest plan
// end date.
func (s *customerService) GetCustomers(ctx context.Context, coachID uuid.UUID) ([]CustomerWithPlan, error) {
	customers, err := s.userRepo.GetCustomersByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	result := make([]CustomerWithPlan, 0, len(customers))
	for i := range customers {
		customers[i].PasswordHash = ""
		end, err := s.lastPlanEndDate(ctx, customers[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CustomerWithPlan{User: customers[i], LastPlanEndDate: end})
	}
	return result, nil
}

// GetCustomer returns one customer, enforcing that they belong to the coach.
func (s *customerService) GetCustomer(ctx context.Context, coachID, customerID uuid.UUID) (*CustomerWithPlan, error) {
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

	customer.PasswordHash = ""
	end, err := s.lastPlanEndDate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &CustomerWithPlan{User: *customer, LastPlanEndDate: end}, nil
}

func (s *customerService) lastPlanEndDate(ctx context.Context, customerID uuid.UUID) (*time.Time, error) {
	plans, err := s.planRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	// Plans arrive sorted by end date, newest first.
	end := plans[0].EndDate
	return &end, nil
}

// generateOneTimePassword builds a random numeric password of the given
// length.
func generateOneTimePassword(length int) string {
	const digits = "0123456789"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf)
}
