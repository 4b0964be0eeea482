package models

import (
	"time"

	"gorm.io/datatypes"
)

// MoodEntry is one journal record for a calendar day. EntryDate is the day
// being recorded, which can differ from CreatedAt. Entries are never updated
// after creation.
type MoodEntry struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`

	MoodLevel   int     `json:"mood_level" gorm:"not null" validate:"required,min=1,max=5"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	Notes       *string `json:"notes,omitempty" gorm:"type:text"`

	Emotions          datatypes.JSONType[[]string] `json:"emotions" gorm:"type:jsonb"`
	Factors           datatypes.JSONType[[]string] `json:"factors" gorm:"type:jsonb"`
	Activities        datatypes.JSONType[[]string] `json:"activities" gorm:"type:jsonb"`
	PlannedActivities datatypes.JSONType[[]string] `json:"planned_activities" gorm:"type:jsonb"`

	SleepHours   *float64 `json:"sleep_hours,omitempty"`
	SleepQuality *int     `json:"sleep_quality,omitempty" validate:"omitempty,min=1,max=5"`
	StressLevel  *int     `json:"stress_level,omitempty" validate:"omitempty,min=1,max=5"`

	EntryDate time.Time `json:"entry_date" gorm:"type:date;not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}
