package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleCoach    Role = "coach"
	RoleCustomer Role = "customer"
)

// Gender of a user, optional.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User represents a user in the system (either a Coach or a Customer).
// Behavior is routed by the Role tag, never by inspecting which optional
// fields happen to be set.
type User struct {
	Base
	Username     string     `gorm:"size:100;uniqueIndex" json:"username"` // phone number
	PasswordHash string     `gorm:"size:255" json:"-"`                    // Never expose this via JSON
	FirstName    string     `gorm:"size:50" json:"firstName"`
	LastName     string     `gorm:"size:50" json:"lastName"`
	Gender       *Gender    `gorm:"size:10" json:"gender,omitempty"`
	Role         Role       `gorm:"size:20;index" json:"role"`
	Email        string     `gorm:"size:100" json:"email,omitempty"`
	Birthday     *time.Time `gorm:"type:date" json:"birthday,omitempty"`

	// PhotoKey is the object key of the profile photo in file storage.
	PhotoKey string `gorm:"size:255" json:"-"`

	// --- Customer-specific ---
	// CoachID is set when the customer is created by a coach; deleting the
	// coach cascades to their customers.
	CoachID *uuid.UUID `gorm:"type:uuid;index" json:"coachId,omitempty"`
	Coach   *User      `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`

	// TelegramChatID is the delivery address for plan notifications.
	TelegramChatID *int64 `json:"-"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
