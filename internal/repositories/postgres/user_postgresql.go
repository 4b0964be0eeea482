package postgres

import (
	"context"
	"fmt"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete soft-deletes the user and the records they own in one transaction.
func (u *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.MoodEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete mood entries: %w", err)
		}
		if err := tx.Where("student_id = ? OR psychologist_id = ?", id, id).Delete(&models.Share{}).Error; err != nil {
			return fmt.Errorf("failed to delete shares: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Assessment{}).Error; err != nil {
			return fmt.Errorf("failed to delete assessments: %w", err)
		}
		if err := tx.Where("student_id = ? OR psychologist_id = ?", id, id).Delete(&models.Appointment{}).Error; err != nil {
			return fmt.Errorf("failed to delete appointments: %w", err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (u *UserPostgreSQL) ListPsychologists(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := u.db.WithContext(ctx).
		Where("role = ? AND active = ?", models.RolePsychologist, true).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list psychologists: %w", err)
	}
	return users, nil
}
