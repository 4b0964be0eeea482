package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent      UserRole = "student"
	RolePsychologist UserRole = "psychologist"
)

type Modality string

const (
	ModalityOnline   Modality = "online"
	ModalityInPerson Modality = "in_person"
)

// WeeklyAvailability maps lowercase weekday names ("monday".."sunday") to the
// ordered "HH:MM" slots a psychologist offers on that weekday.
type WeeklyAvailability map[string][]string

// ReminderSettings is the per-user daily check-in reminder configuration.
type ReminderSettings struct {
	Enabled      bool       `json:"enabled"`
	Time         string     `json:"time"` // "HH:MM"
	ConfiguredAt *time.Time `json:"configured_at,omitempty"`
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email        string   `json:"email" gorm:"not null;size:120;uniqueIndex" validate:"required,email"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index" validate:"required,user_role"`

	// Student-only fields
	University *string `json:"university,omitempty" gorm:"size:200"`
	Course     *string `json:"course,omitempty" gorm:"size:100"`
	Semester   *string `json:"semester,omitempty" gorm:"size:20"`

	// Psychologist-only fields
	LicenseID    *string                                `json:"license_id,omitempty" gorm:"size:20"`
	Specialties  datatypes.JSONType[[]string]           `json:"specialties" gorm:"type:jsonb"`
	Modalities   datatypes.JSONType[[]string]           `json:"modalities" gorm:"type:jsonb"`
	Availability datatypes.JSONType[WeeklyAvailability] `json:"availability" gorm:"type:jsonb"`
	Reminders    datatypes.JSONType[ReminderSettings]   `json:"reminders" gorm:"type:jsonb"`

	// Consent metadata
	ConsentAccepted bool       `json:"consent_accepted" gorm:"default:false"`
	ConsentAt       *time.Time `json:"consent_at,omitempty"`

	Active    bool           `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations; constraints cascade so deleting a user removes their data
	Assessments []Assessment `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MoodEntries []MoodEntry  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// IsPsychologist reports whether the user holds the psychologist role.
func (u *User) IsPsychologist() bool {
	return u.Role == RolePsychologist
}

// SupportsModality reports whether the psychologist offers the given modality.
func (u *User) SupportsModality(m Modality) bool {
	for _, mod := range u.Modalities.Data() {
		if mod == string(m) {
			return true
		}
	}
	return false
}
