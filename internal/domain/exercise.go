package domain

import (
	"github.com/google/uuid"
)

// MuscleGroup categorizes exercises in the library (e.g. "Chest", "Legs").
type MuscleGroup struct {
	Base
	Name      string     `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Exercises []Exercise `gorm:"foreignKey:MuscleGroupID" json:"-"`
}

// Exercise represents a single exercise definition in the library.
// An exercise with no CoachID is shared and visible to every coach. A coach's
// custom exercises are visible only to that coach and are removed together
// with them.
type Exercise struct {
	Base
	Name          string      `gorm:"size:50;not null" json:"name"`
	CoachID       *uuid.UUID  `gorm:"type:uuid;index" json:"coachId,omitempty"`
	Coach         *User       `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`
	MuscleGroupID uuid.UUID   `gorm:"type:uuid;not null;index" json:"muscleGroupId"`
	MuscleGroup   MuscleGroup `json:"muscleGroup"`
}

// VisibleTo reports whether the exercise can be used by the given coach.
func (e *Exercise) VisibleTo(coachID uuid.UUID) bool {
	return e.CoachID == nil || *e.CoachID == coachID
}
