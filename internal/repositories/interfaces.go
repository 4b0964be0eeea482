package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/models"
)

// ErrSlotOccupied is returned when an appointment slot is already taken by an
// active appointment at creation time.
var ErrSlotOccupied = errors.New("appointment slot already occupied")

// ErrStudentSlotOccupied is returned when the booking student already holds an
// active appointment at the same slot with any psychologist.
var ErrStudentSlotOccupied = errors.New("student slot already occupied")

// UserRepository interface for user-specific operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error // Soft delete, cascades to owned records

	// Query operations
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListPsychologists(ctx context.Context) ([]*models.User, error)
}

// AssessmentRepository interface for self-assessment operations
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id uint) (*models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error

	// Query operations
	ListByUser(ctx context.Context, userID uint) ([]*models.Assessment, error)
}

// MoodRepository interface for mood journal operations
type MoodRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) error
	GetByID(ctx context.Context, id uint) (*models.MoodEntry, error)

	// Query operations
	ListByUser(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error)
	ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]*models.MoodEntry, error)
	GetLatestByUser(ctx context.Context, userID uint) (*models.MoodEntry, error)
}

// AppointmentRepository interface for scheduling operations
type AppointmentRepository interface {
	// CreateWithSlotLock creates the appointment after acquiring advisory
	// transaction locks for the psychologist and student sides of the
	// (date, time) slot and re-checking that no active appointment occupies
	// either. Returns ErrSlotOccupied when the psychologist re-check finds a
	// concurrent booking and ErrStudentSlotOccupied when the student side does.
	CreateWithSlotLock(ctx context.Context, appointment *models.Appointment) error

	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error

	// Query operations
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Appointment, error)
	ListByPsychologist(ctx context.Context, psychologistID uint) ([]*models.Appointment, error)
	ListActiveByPsychologistFrom(ctx context.Context, psychologistID uint, from time.Time) ([]*models.Appointment, error)

	// Conflict checks
	HasActiveAtSlot(ctx context.Context, psychologistID uint, date time.Time, timeOfDay string) (bool, error)
	StudentHasActiveAtSlot(ctx context.Context, studentID uint, date time.Time, timeOfDay string) (bool, error)
}

// ShareRepository interface for assessment sharing operations
type ShareRepository interface {
	Create(ctx context.Context, share *models.Share) error
	GetByID(ctx context.Context, id uint) (*models.Share, error)
	Update(ctx context.Context, share *models.Share) error

	// Query operations
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Share, error)
	ListByPsychologist(ctx context.Context, psychologistID uint) ([]*models.Share, error)
	Exists(ctx context.Context, assessmentID, psychologistID uint) (bool, error)
}

// Repository aggregates all entity repositories
type Repository interface {
	Users() UserRepository
	Assessments() AssessmentRepository
	Moods() MoodRepository
	Appointments() AppointmentRepository
	Shares() ShareRepository
}
