package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusFinished  AppointmentStatus = "finished"
	StatusCancelled AppointmentStatus = "cancelled"
)

// CanTransitionTo enforces the appointment lifecycle:
// pending -> confirmed -> finished, with cancelled reachable from pending or
// confirmed. No transition re-enters pending.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusFinished || target == StatusCancelled
	default:
		return false
	}
}

// IsActive reports whether the appointment still occupies its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Appointment struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	StudentID      uint `json:"student_id" gorm:"not null;index"`
	PsychologistID uint `json:"psychologist_id" gorm:"not null;index"`

	Date     time.Time         `json:"date" gorm:"type:date;not null;index"`
	Time     string            `json:"time" gorm:"not null;size:5"` // "HH:MM"
	Modality Modality          `json:"modality" gorm:"not null;size:20" validate:"required,modality"`
	Notes    *string           `json:"notes,omitempty" gorm:"type:text"`
	Status   AppointmentStatus `json:"status" gorm:"not null;size:20;default:pending;index" validate:"omitempty,appointment_status"`

	// Student-granted permission for the psychologist to read their
	// assessments in the context of this appointment.
	AllowAssessmentAccess bool `json:"allow_assessment_access" gorm:"default:false"`

	// Generated for online appointments only.
	MeetLink *string `json:"meet_link,omitempty" gorm:"size:255"`

	// Recorded when the appointment is finished.
	Attended *bool `json:"attended,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Student      User `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Psychologist User `json:"-" gorm:"foreignKey:PsychologistID;constraint:OnDelete:CASCADE"`
}

func (Appointment) TableName() string {
	return "appointments"
}
