package postgres

import (
	"fmt"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	users        repositories.UserRepository
	assessments  repositories.AssessmentRepository
	moods        repositories.MoodRepository
	appointments repositories.AppointmentRepository
	shares       repositories.ShareRepository
}

// NewRepository wires all entity repositories over a shared gorm connection.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		users:        NewUserPostgreSQL(db),
		assessments:  NewAssessmentPostgreSQL(db),
		moods:        NewMoodPostgreSQL(db),
		appointments: NewAppointmentPostgreSQL(db),
		shares:       NewSharePostgreSQL(db),
	}
}

func (r *repository) Users() repositories.UserRepository               { return r.users }
func (r *repository) Assessments() repositories.AssessmentRepository   { return r.assessments }
func (r *repository) Moods() repositories.MoodRepository               { return r.moods }
func (r *repository) Appointments() repositories.AppointmentRepository { return r.appointments }
func (r *repository) Shares() repositories.ShareRepository             { return r.shares }

// AutoMigrate creates or updates the schema for every tracked model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Assessment{},
		&models.MoodEntry{},
		&models.Appointment{},
		&models.Share{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
