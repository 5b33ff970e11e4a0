package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Default rest intervals (seconds) applied when a plan does not override them.
const (
	DefaultSetRest      = 60
	DefaultExerciseRest = 120
)

// TrainingPlan is the aggregate a coach assigns to a customer: a date window,
// rest-interval defaults, the ordered trainings and the diet templates.
// The whole aggregate is created in one transaction and cascade-deleted with
// the plan.
type TrainingPlan struct {
	Base
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer     *User      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	StartDate    time.Time  `gorm:"type:date;not null" json:"startDate"`
	EndDate      time.Time  `gorm:"type:date;not null" json:"endDate"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	SetRest      int        `gorm:"default:60" json:"setRest"`
	ExerciseRest int        `gorm:"default:120" json:"exerciseRest"`
	Trainings    []Training `gorm:"foreignKey:TrainingPlanID;constraint:OnDelete:CASCADE" json:"trainings"`
	Diets        []Diet     `gorm:"foreignKey:TrainingPlanID;constraint:OnDelete:CASCADE" json:"diets"`
}

// Covers reports whether the given day falls inside the plan window,
// boundaries included.
func (p *TrainingPlan) Covers(day time.Time) bool {
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// SortExercises orders every training's exercises by their persisted
// ordering value.
func (p *TrainingPlan) SortExercises() {
	for i := range p.Trainings {
		exercises := p.Trainings[i].Exercises
		sort.Slice(exercises, func(a, b int) bool {
			return exercises[a].Ordering < exercises[b].Ordering
		})
	}
}

// Training is one named session inside a plan. Its exercises are reachable
// only through the ExerciseOnTraining join rows.
type Training struct {
	Base
	Name           string               `gorm:"size:50;not null" json:"name"`
	TrainingPlanID uuid.UUID            `gorm:"type:uuid;not null;index" json:"trainingPlanId"`
	Exercises      []ExerciseOnTraining `gorm:"foreignKey:TrainingID;constraint:OnDelete:CASCADE" json:"exercises"`
}

// ExerciseOnTraining is the join row between Training and Exercise. Ordering
// is the zero-based position within the training; SupersetID is shared by all
// exercises performed back-to-back as one superset and null otherwise.
type ExerciseOnTraining struct {
	Base
	TrainingID uuid.UUID                `gorm:"type:uuid;not null;index" json:"trainingId"`
	ExerciseID uuid.UUID                `gorm:"type:uuid;not null;index" json:"exerciseId"`
	Exercise   Exercise                 `json:"exercise"`
	Sets       datatypes.JSONSlice[int] `json:"sets"`
	SupersetID *uuid.UUID               `gorm:"type:uuid" json:"supersetId,omitempty"`
	Ordering   int                      `gorm:"not null" json:"ordering"`
}
