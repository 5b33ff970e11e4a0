package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CaloriesFromMacros derives the caloric value of a macro split using the
// fixed 4/9/4 kcal-per-gram conversion.
func CaloriesFromMacros(proteins, fats, carbs int) int {
	return proteins*4 + fats*9 + carbs*4
}

// Diet is the coach's nutritional target for the duration of a training
// plan. Day-facts logged by the customer hang off it.
type Diet struct {
	Base
	TrainingPlanID uuid.UUID `gorm:"type:uuid;not null;index" json:"trainingPlanId"`
	TotalProteins  int       `gorm:"not null" json:"totalProteins"`
	TotalFats      int       `gorm:"not null" json:"totalFats"`
	TotalCarbs     int       `gorm:"not null" json:"totalCarbs"`
	TotalCalories  int       `gorm:"not null" json:"totalCalories"`
	Days           []DietDay `gorm:"foreignKey:DietID;constraint:OnDelete:CASCADE" json:"-"`
}

// MealProduct is one logged product inside a meal slot.
type MealProduct struct {
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"` // grams
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}

// Meal is the value stored in one meal slot of a day-fact: the logged
// products plus the cached per-slot totals. The totals are recomputed from
// the product list on every write, so readers may sum them directly.
type Meal struct {
	TotalCalories int           `json:"total_calories"`
	TotalProteins int           `json:"total_proteins"`
	TotalFats     int           `json:"total_fats"`
	TotalCarbs    int           `json:"total_carbs"`
	Products      []MealProduct `json:"products"`
}

// Recalculate rebuilds the cached totals from the product list.
func (m *Meal) Recalculate() {
	var calories, proteins, fats, carbs float64
	for _, p := range m.Products {
		calories += p.Calories
		proteins += p.Proteins
		fats += p.Fats
		carbs += p.Carbs
	}
	m.TotalCalories = int(calories + 0.5)
	m.TotalProteins = int(proteins + 0.5)
	m.TotalFats = int(fats + 0.5)
	m.TotalCarbs = int(carbs + 0.5)
}

// MealSlot names one of the four meal slots of a day-fact.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnacks    MealSlot = "snacks"
)

// ValidSlot reports whether s names one of the four meal slots.
func ValidSlot(s MealSlot) bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnacks:
		return true
	}
	return false
}

// DietDay is the customer's logged consumption for one calendar date under a
// diet template. Rows are materialized lazily, on the first write for that
// date. Version guards the read-modify-write of the meal slots.
type DietDay struct {
	Base
	DietID    uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_diet_day" json:"dietId"`
	Date      time.Time                `gorm:"type:date;not null;uniqueIndex:idx_diet_day" json:"date"`
	Breakfast datatypes.JSONType[Meal] `json:"breakfast"`
	Lunch     datatypes.JSONType[Meal] `json:"lunch"`
	Dinner    datatypes.JSONType[Meal] `json:"dinner"`
	Snacks    datatypes.JSONType[Meal] `json:"snacks"`
	Version   int                      `gorm:"not null;default:0" json:"-"`
}

// NewDietDay returns a day-fact for the given template and date with all
// four slots zeroed.
func NewDietDay(dietID uuid.UUID, date time.Time) *DietDay {
	empty := datatypes.NewJSONType(Meal{Products: []MealProduct{}})
	return &DietDay{
		DietID:    dietID,
		Date:      date,
		Breakfast: empty,
		Lunch:     empty,
		Dinner:    empty,
		Snacks:    empty,
	}
}

// Slot returns the value of the named meal slot.
func (d *DietDay) Slot(slot MealSlot) Meal {
	switch slot {
	case SlotBreakfast:
		return d.Breakfast.Data()
	case SlotLunch:
		return d.Lunch.Data()
	case SlotDinner:
		return d.Dinner.Data()
	default:
		return d.Snacks.Data()
	}
}

// SetSlot replaces the value of the named meal slot.
func (d *DietDay) SetSlot(slot MealSlot, meal Meal) {
	value := datatypes.NewJSONType(meal)
	switch slot {
	case SlotBreakfast:
		d.Breakfast = value
	case SlotLunch:
		d.Lunch = value
	case SlotDinner:
		d.Dinner = value
	default:
		d.Snacks = value
	}
}

// NutrientTotals is a summed macro/caloric amount.
type NutrientTotals struct {
	Calories int `json:"calories"`
	Proteins int `json:"proteins"`
	Fats     int `json:"fats"`
	Carbs    int `json:"carbs"`
}

// ConsumedTotals sums the cached totals of the four meal slots. Slot totals
// are assumed consistent; keeping them so is the logging operation's job.
func (d *DietDay) ConsumedTotals() NutrientTotals {
	var totals NutrientTotals
	for _, meal := range []Meal{d.Breakfast.Data(), d.Lunch.Data(), d.Dinner.Data(), d.Snacks.Data()} {
		totals.Calories += meal.TotalCalories
		totals.Proteins += meal.TotalProteins
		totals.Fats += meal.TotalFats
		totals.Carbs += meal.TotalCarbs
	}
	return totals
}
