package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrUnknownMealSlot = errors.New("unknown meal slot")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrProductNotFound = errors.New("product not found")
	ErrNoDietForDate   = errors.New("no diet covers this date")
	ErrConcurrentLog   = errors.New("the day was updated concurrently, retry the log")
)

// DailyNutrition is the uniform nutrition view for one customer and date:
// the coach's targets merged with what was actually consumed. The same shape
// is returned whether or not a plan covers the date or a day-fact exists, so
// callers never branch on which case occurred.
type DailyNutrition struct {
	Date time.Time `json:"date"`

	// Targets from the coach's template; zero when no plan covers the date.
	TemplateDietID *uuid.UUID `json:"templateDietId"`
	TotalCalories  int        `json:"totalCalories"`
	TotalProteins  int        `json:"totalProteins"`
	TotalFats      int        `json:"totalFats"`
	TotalCarbs     int        `json:"totalCarbs"`

	// Actual consumption; zero until a day-fact is materialized.
	DietDayID        *uuid.UUID `json:"dietDayId"`
	ConsumedCalories int        `json:"consumedCalories"`
	ConsumedProteins int        `json:"consumedProteins"`
	ConsumedFats     int        `json:"consumedFats"`
	ConsumedCarbs    int        `json:"consumedCarbs"`

	Breakfast domain.Meal `json:"breakfast"`
	Lunch     domain.Meal `json:"lunch"`
	Dinner    domain.Meal `json:"dinner"`
	Snacks    domain.Meal `json:"snacks"`
}

// --- Service Interface ---
type NutritionService interface {
	// GetDailyDiet resolves the nutrition view for the customer and date.
	// A date outside any plan, or one never logged, is not an error.
	GetDailyDiet(ctx context.Context, customerID uuid.UUID, day time.Time) (*DailyNutrition, error)
	// LogProduct appends a consumed product to a meal slot of the given
	// date, materializing the day-fact on first write, and returns the
	// refreshed view.
	LogProduct(ctx context.Context, customerID uuid.UUID, day time.Time, slot domain.MealSlot, barcode string, amount float64) (*DailyNutrition, error)
	GetHistory(ctx context.Context, customerID uuid.UUID, limit int) ([]domain.CustomerHistoryProduct, error)
}

// --- Service Implementation ---

// nutritionService implements the NutritionService interface.
type nutritionService struct {
	dietRepo    repository.DietRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewNutritionService creates a new instance of nutritionService.
func NewNutritionService(
	dietRepo repository.DietRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) NutritionService {
	return &nutritionService{
		dietRepo:    dietRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetDailyDiet walks the resolution states in order: no covering plan, plan
// without logged days, logged days but not this date, and finally a
// materialized day-fact whose slots are summed.
func (s *nutritionService) GetDailyDiet(ctx context.Context, customerID uuid.UUID, day time.Time) (*DailyNutrition, error) {
	day = dateOnly(day)

	template, err := s.dietRepo.GetTemplateForDate(ctx, customerID, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("no diet covers date", "customer_id", customerID, "date", day)
			return emptyDailyNutrition(nil, day), nil
		}
		return nil, err
	}

	fact := findDayFact(template.Days, day)
	if fact == nil {
		return emptyDailyNutrition(template, day), nil
	}

	return dailyNutritionFromFact(template, fact), nil
}

// LogProduct performs the read-modify-write of one meal slot: the slot's
// totals are recomputed from its product list before the write, and the
// write is guarded by the day-fact's version.
func (s *nutritionService) LogProduct(ctx context.Context, customerID uuid.UUID, day time.Time, slot domain.MealSlot, barcode string, amount float64) (*DailyNutrition, error) {
	// 1. Validate input.
	if !domain.ValidSlot(slot) {
		return nil, ErrUnknownMealSlot
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	day = dateOnly(day)

	// 2. A product can only be logged under a covering template.
	template, err := s.dietRepo.GetTemplateForDate(ctx, customerID, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoDietForDate
		}
		return nil, err
	}

	// 3. Resolve the product by barcode.
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// 4. Materialize the day-fact on first write for this date.
	fact, err := s.ensureDayFact(ctx, template.ID, day)
	if err != nil {
		return nil, err
	}

	// 5. Append the portion, recompute the slot totals, write behind the
	// version check.
	portion := product.Portion(amount)
	meal := fact.Slot(slot)
	meal.Products = append(meal.Products, portion)
	meal.Recalculate()
	fact.SetSlot(slot, meal)

	if err := s.dietRepo.UpdateDaySlots(ctx, fact, fact.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrConcurrentLog
		}
		return nil, err
	}

	// 6. Record the consumption history. A failure here is logged, not
	// surfaced: the day-fact is already consistent.
	history := &domain.CustomerHistoryProduct{
		CustomerID: customerID,
		Barcode:    product.Barcode,
		Name:       product.Name,
		Type:       product.Type,
		VendorName: product.VendorName,
		Proteins:   portion.Proteins,
		Fats:       portion.Fats,
		Carbs:      portion.Carbs,
		Calories:   portion.Calories,
		Amount:     amount,
	}
	if err := s.productRepo.SaveHistory(ctx, history); err != nil {
		s.logger.Error("failed to record product history",
			"customer_id", customerID, "barcode", barcode, "error", err)
	}

	return dailyNutritionFromFact(template, fact), nil
}

func (s *nutritionService) GetHistory(ctx context.Context, customerID uuid.UUID, limit int) ([]domain.CustomerHistoryProduct, error) {
	return s.productRepo.GetHistoryByCustomerID(ctx, customerID, limit)
}

// ensureDayFact returns the day-fact for (diet, date), creating it with
// zeroed slots when this is the first write for the date. A concurrent
// creator winning the race is fine: the unique (diet, date) index rejects
// the duplicate and the winner's row is fetched instead.
func (s *nutritionService) ensureDayFact(ctx context.Context, dietID uuid.UUID, day time.Time) (*domain.DietDay, error) {
	fact, err := s.dietRepo.GetDay(ctx, dietID, day)
	if err == nil {
		return fact, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	fact = domain.NewDietDay(dietID, day)
	if err := s.dietRepo.CreateDay(ctx, fact); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.dietRepo.GetDay(ctx, dietID, day)
		}
		return nil, err
	}
	return fact, nil
}

// --- View construction ---

func emptyDailyNutrition(template *domain.Diet, day time.Time) *DailyNutrition {
	// Empty slots still carry a products list, so every outcome serializes
	// with the same shape.
	blank := domain.Meal{Products: []domain.MealProduct{}}
	view := &DailyNutrition{
		Date:      day,
		Breakfast: blank,
		Lunch:     blank,
		Dinner:    blank,
		Snacks:    blank,
	}
	if template != nil {
		templateID := template.ID
		view.TemplateDietID = &templateID
		view.TotalCalories = template.TotalCalories
		view.TotalProteins = template.TotalProteins
		view.TotalFats = template.TotalFats
		view.TotalCarbs = template.TotalCarbs
	}
	return view
}

func dailyNutritionFromFact(template *domain.Diet, fact *domain.DietDay) *DailyNutrition {
	view := emptyDailyNutrition(template, fact.Date)
	factID := fact.ID
	view.DietDayID = &factID

	consumed := fact.ConsumedTotals()
	view.ConsumedCalories = consumed.Calories
	view.ConsumedProteins = consumed.Proteins
	view.ConsumedFats = consumed.Fats
	view.ConsumedCarbs = consumed.Carbs

	view.Breakfast = fact.Breakfast.Data()
	view.Lunch = fact.Lunch.Data()
	view.Dinner = fact.Dinner.Data()
	view.Snacks = fact.Snacks.Data()
	return view
}

// findDayFact locates the fact for the exact date among a template's
// preloaded days, if any was ever materialized.
func findDayFact(days []domain.DietDay, day time.Time) *domain.DietDay {
	for i := range days {
		if sameDate(days[i].Date, day) {
			return &days[i]
		}
	}
	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
