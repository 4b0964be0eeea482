package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"gorm.io/gorm"
)

type AppointmentPostgreSQL struct {
	db *gorm.DB
}

func NewAppointmentPostgreSQL(db *gorm.DB) repositories.AppointmentRepository {
	return &AppointmentPostgreSQL{db: db}
}

// slotLockKey derives the advisory lock key for a booking slot. Two concurrent
// bookings for the same (owner, date, time) always hash to the same key, so the
// second one blocks until the first transaction finishes. The scope prefix
// keeps psychologist and student keys from colliding on equal ids.
func slotLockKey(scope string, ownerID uint, date time.Time, timeOfDay string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d:%s:%s", scope, ownerID, date.Format("2006-01-02"), timeOfDay)
	return int64(h.Sum64())
}

func (a *AppointmentPostgreSQL) CreateWithSlotLock(ctx context.Context, appointment *models.Appointment) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Both locks are always taken in the same order, psychologist first.
		psychKey := slotLockKey("psychologist", appointment.PsychologistID, appointment.Date, appointment.Time)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", psychKey).Error; err != nil {
			return fmt.Errorf("failed to acquire slot lock: %w", err)
		}
		studentKey := slotLockKey("student", appointment.StudentID, appointment.Date, appointment.Time)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", studentKey).Error; err != nil {
			return fmt.Errorf("failed to acquire student slot lock: %w", err)
		}

		// Re-check under the locks; the pre-validation in the service may have
		// raced with another booking for the same slot.
		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("psychologist_id = ? AND date = ? AND time = ? AND status IN ?",
				appointment.PsychologistID, appointment.Date, appointment.Time,
				[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to re-check slot occupancy: %w", err)
		}
		if count > 0 {
			return repositories.ErrSlotOccupied
		}

		err = tx.Model(&models.Appointment{}).
			Where("student_id = ? AND date = ? AND time = ? AND status IN ?",
				appointment.StudentID, appointment.Date, appointment.Time,
				[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to re-check student occupancy: %w", err)
		}
		if count > 0 {
			return repositories.ErrStudentSlotOccupied
		}

		if err := tx.Create(appointment).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (a *AppointmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := a.db.WithContext(ctx).
		Preload("Student").
		Preload("Psychologist").
		First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (a *AppointmentPostgreSQL) Update(ctx context.Context, appointment *models.Appointment) error {
	if err := a.db.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return nil
}

func (a *AppointmentPostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := a.db.WithContext(ctx).
		Preload("Psychologist").
		Where("student_id = ?", studentID).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for student: %w", err)
	}
	return appointments, nil
}

func (a *AppointmentPostgreSQL) ListByPsychologist(ctx context.Context, psychologistID uint) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := a.db.WithContext(ctx).
		Preload("Student").
		Where("psychologist_id = ?", psychologistID).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for psychologist: %w", err)
	}
	return appointments, nil
}

func (a *AppointmentPostgreSQL) ListActiveByPsychologistFrom(ctx context.Context, psychologistID uint, from time.Time) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := a.db.WithContext(ctx).
		Where("psychologist_id = ? AND date >= ? AND status IN ?",
			psychologistID, from,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("date ASC, time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active appointments: %w", err)
	}
	return appointments, nil
}

func (a *AppointmentPostgreSQL) HasActiveAtSlot(ctx context.Context, psychologistID uint, date time.Time, timeOfDay string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("psychologist_id = ? AND date = ? AND time = ? AND status IN ?",
			psychologistID, date, timeOfDay,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	return count > 0, nil
}

func (a *AppointmentPostgreSQL) StudentHasActiveAtSlot(ctx context.Context, studentID uint, date time.Time, timeOfDay string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("student_id = ? AND date = ? AND time = ? AND status IN ?",
			studentID, date, timeOfDay,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check student slot occupancy: %w", err)
	}
	return count > 0, nil
}
