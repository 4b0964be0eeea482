package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/mente-leve/wellbeing-service/internal/models"
)

// EventType represents different types of notification events
type EventType string

const (
	// Appointment events
	EventAppointmentCreated       EventType = "appointment.created"
	EventAppointmentStatusChanged EventType = "appointment.status_changed"

	// Share events
	EventAssessmentShared EventType = "assessment.shared"
)

const eventSource = "wellbeing-service"

// NotificationEvent is the envelope for all notification events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewNotificationEvent builds an envelope around a payload
func NewNotificationEvent(eventType EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}

// Appointment notification event payloads

type AppointmentCreatedEvent struct {
	AppointmentID  uint            `json:"appointment_id"`
	StudentID      uint            `json:"student_id"`
	PsychologistID uint            `json:"psychologist_id"`
	Date           string          `json:"date"`
	Time           string          `json:"time"`
	Modality       models.Modality `json:"modality"`
}

type AppointmentStatusChangedEvent struct {
	AppointmentID  uint                     `json:"appointment_id"`
	StudentID      uint                     `json:"student_id"`
	PsychologistID uint                     `json:"psychologist_id"`
	OldStatus      models.AppointmentStatus `json:"old_status"`
	NewStatus      models.AppointmentStatus `json:"new_status"`
}

// Share notification event payloads

type AssessmentSharedEvent struct {
	ShareID        uint            `json:"share_id"`
	AssessmentID   uint            `json:"assessment_id"`
	StudentID      uint            `json:"student_id"`
	PsychologistID uint            `json:"psychologist_id"`
	RiskTier       models.RiskTier `json:"risk_tier"`
}
