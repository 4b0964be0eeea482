package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mente-leve/wellbeing-service/internal/events"
	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"gorm.io/gorm"
)

// meetLinkTemplate is the videoconference room URL for online appointments.
const meetLinkTemplate = "https://meet.jit.si/mente-leve-%s"

// AppointmentService runs the scheduling workflow: availability projection,
// conflict-free booking and the status state machine.
type AppointmentService interface {
	GetAvailability(ctx context.Context, psychologistID uint) (AvailabilityProjection, error)
	Book(ctx context.Context, studentID uint, req *BookAppointmentRequest) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, psychologistID, appointmentID uint, req *UpdateStatusRequest) (*models.Appointment, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.Appointment, error)
	SharedAssessments(ctx context.Context, psychologistID, appointmentID uint) ([]*models.Assessment, error)
}

type BookAppointmentRequest struct {
	PsychologistID uint            `json:"psychologist_id" validate:"required"`
	Date           string          `json:"date" validate:"required"` // "2006-01-02"
	Time           string          `json:"time" validate:"required,time_hhmm"`
	Modality       models.Modality `json:"modality" validate:"required,modality"`
	Notes          *string         `json:"notes,omitempty"`

	// AllowAssessmentAccess lets the psychologist see the student's
	// assessments for the duration of this appointment.
	AllowAssessmentAccess bool `json:"allow_assessment_access"`
}

type UpdateStatusRequest struct {
	Status   models.AppointmentStatus `json:"status" validate:"required,appointment_status"`
	Attended *bool                    `json:"attended,omitempty"`
}

type appointmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
	now       func() time.Time
}

func NewAppointmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) AppointmentService {
	return &appointmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

// GetAvailability projects the psychologist's weekly template into concrete
// free slots. The projection is recomputed on every call so it always
// reflects live bookings.
func (s *appointmentService) GetAvailability(ctx context.Context, psychologistID uint) (AvailabilityProjection, error) {
	psychologist, err := s.repo.Users().GetByID(ctx, psychologistID)
	if err != nil || !psychologist.IsPsychologist() || !psychologist.Active {
		return nil, ErrPsychologistNotFound
	}

	today := s.now()
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	active, err := s.repo.Appointments().ListActiveByPsychologistFrom(ctx, psychologistID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to load active appointments: %w", err)
	}
	return ProjectAvailability(psychologist.Availability.Data(), active, today), nil
}

// Book validates the request in a fixed order, failing on the first
// violation, then creates the appointment under a slot lock.
func (s *appointmentService) Book(ctx context.Context, studentID uint, req *BookAppointmentRequest) (*models.Appointment, error) {
	// 1. Required fields.
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Users().GetByID(ctx, studentID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if student.Role != models.RoleStudent {
		return nil, ErrNotAStudent
	}

	// 2. Psychologist exists and offers the modality.
	psychologist, err := s.repo.Users().GetByID(ctx, req.PsychologistID)
	if err != nil || !psychologist.IsPsychologist() || !psychologist.Active {
		return nil, ErrPsychologistNotFound
	}
	if !psychologist.SupportsModality(req.Modality) {
		return nil, ErrModalityNotOffered
	}

	// 3. Date parses; the time format is covered by struct validation.
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrBadRequest, req.Date)
	}

	// 4. Slot is not in the past.
	slotTime, _ := time.Parse("15:04", req.Time)
	slot := time.Date(date.Year(), date.Month(), date.Day(), slotTime.Hour(), slotTime.Minute(), 0, 0, s.now().Location())
	if slot.Before(s.now()) {
		return nil, ErrAppointmentInPast
	}

	// 5. The slot exists in the weekly template.
	if !templateHasSlot(psychologist.Availability.Data(), date, req.Time) {
		return nil, ErrSlotNotAvailable
	}

	// 6. Psychologist has no active appointment at the slot.
	taken, err := s.repo.Appointments().HasActiveAtSlot(ctx, req.PsychologistID, date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	// 7. Student has no active appointment at the slot with anyone.
	busy, err := s.repo.Appointments().StudentHasActiveAtSlot(ctx, studentID, date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to check student schedule: %w", err)
	}
	if busy {
		return nil, ErrStudentDoubleBooked
	}

	appointment := &models.Appointment{
		StudentID:             studentID,
		PsychologistID:        req.PsychologistID,
		Date:                  date,
		Time:                  req.Time,
		Modality:              req.Modality,
		Notes:                 req.Notes,
		Status:                models.StatusPending,
		AllowAssessmentAccess: req.AllowAssessmentAccess,
	}
	if req.Modality == models.ModalityOnline {
		link := fmt.Sprintf(meetLinkTemplate, uuid.NewString())
		appointment.MeetLink = &link
	}

	if err := s.repo.Appointments().CreateWithSlotLock(ctx, appointment); err != nil {
		if errors.Is(err, repositories.ErrSlotOccupied) {
			return nil, ErrSlotTaken
		}
		if errors.Is(err, repositories.ErrStudentSlotOccupied) {
			return nil, ErrStudentDoubleBooked
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.publishCreated(ctx, appointment)
	s.logger.Info("appointment booked",
		"appointment_id", appointment.ID,
		"student_id", studentID,
		"psychologist_id", req.PsychologistID,
		"date", req.Date,
		"time", req.Time)
	return appointment, nil
}

// UpdateStatus applies one state-machine transition. Only the owning
// psychologist may change status, and finishing requires an attendance flag.
func (s *appointmentService) UpdateStatus(ctx context.Context, psychologistID, appointmentID uint, req *UpdateStatusRequest) (*models.Appointment, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	appointment, err := s.repo.Appointments().GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if appointment.PsychologistID != psychologistID {
		return nil, ErrAppointmentAccess
	}

	if !appointment.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusChange, appointment.Status, req.Status)
	}
	if req.Status == models.StatusFinished {
		if req.Attended == nil {
			return nil, ErrAttendanceRequired
		}
		appointment.Attended = req.Attended
	}

	oldStatus := appointment.Status
	appointment.Status = req.Status
	if err := s.repo.Appointments().Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.publishStatusChanged(ctx, appointment, oldStatus)
	s.logger.Info("appointment status changed",
		"appointment_id", appointment.ID,
		"from", oldStatus,
		"to", appointment.Status)
	return appointment, nil
}

// ListForUser returns the caller's appointments, scoped by role.
func (s *appointmentService) ListForUser(ctx context.Context, userID uint) ([]*models.Appointment, error) {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.IsPsychologist() {
		return s.repo.Appointments().ListByPsychologist(ctx, userID)
	}
	return s.repo.Appointments().ListByStudent(ctx, userID)
}

// SharedAssessments returns the student's assessments for an appointment
// where the student granted access and the appointment is still active.
func (s *appointmentService) SharedAssessments(ctx context.Context, psychologistID, appointmentID uint) ([]*models.Assessment, error) {
	appointment, err := s.repo.Appointments().GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if appointment.PsychologistID != psychologistID {
		return nil, ErrAppointmentAccess
	}
	if !appointment.AllowAssessmentAccess {
		return nil, ErrAssessmentsNotGranted
	}
	if !appointment.Status.IsActive() {
		return nil, ErrAssessmentsNotGranted
	}
	return s.repo.Assessments().ListByUser(ctx, appointment.StudentID)
}

// templateHasSlot is the coarse template check: the requested weekday and
// time must appear in the raw weekly availability.
func templateHasSlot(template models.WeeklyAvailability, date time.Time, timeOfDay string) bool {
	for weekdayName, times := range template {
		weekday, ok := weekdayNames[weekdayName]
		if !ok || weekday != date.Weekday() {
			continue
		}
		for _, slot := range times {
			if slot == timeOfDay {
				return true
			}
		}
	}
	return false
}

func (s *appointmentService) publishCreated(ctx context.Context, appointment *models.Appointment) {
	if s.publisher == nil {
		return
	}
	event := events.NewNotificationEvent(events.EventAppointmentCreated, events.AppointmentCreatedEvent{
		AppointmentID:  appointment.ID,
		StudentID:      appointment.StudentID,
		PsychologistID: appointment.PsychologistID,
		Date:           appointment.Date.Format("2006-01-02"),
		Time:           appointment.Time,
		Modality:       appointment.Modality,
	})
	if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish appointment event", "appointment_id", appointment.ID, "error", err)
	}
}

func (s *appointmentService) publishStatusChanged(ctx context.Context, appointment *models.Appointment, oldStatus models.AppointmentStatus) {
	if s.publisher == nil {
		return
	}
	event := events.NewNotificationEvent(events.EventAppointmentStatusChanged, events.AppointmentStatusChangedEvent{
		AppointmentID:  appointment.ID,
		StudentID:      appointment.StudentID,
		PsychologistID: appointment.PsychologistID,
		OldStatus:      oldStatus,
		NewStatus:      appointment.Status,
	})
	if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish status event", "appointment_id", appointment.ID, "error", err)
	}
}
