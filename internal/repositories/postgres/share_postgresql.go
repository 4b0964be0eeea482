package postgres

import (
	"context"
	"fmt"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"gorm.io/gorm"
)

type SharePostgreSQL struct {
	db *gorm.DB
}

func NewSharePostgreSQL(db *gorm.DB) repositories.ShareRepository {
	return &SharePostgreSQL{db: db}
}

func (s *SharePostgreSQL) Create(ctx context.Context, share *models.Share) error {
	if err := s.db.WithContext(ctx).Create(share).Error; err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}
	return nil
}

func (s *SharePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Share, error) {
	var share models.Share
	if err := s.db.WithContext(ctx).First(&share, id).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

func (s *SharePostgreSQL) Update(ctx context.Context, share *models.Share) error {
	if err := s.db.WithContext(ctx).Save(share).Error; err != nil {
		return fmt.Errorf("failed to update share: %w", err)
	}
	return nil
}

func (s *SharePostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.Share, error) {
	var shares []*models.Share
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sent shares: %w", err)
	}
	return shares, nil
}

func (s *SharePostgreSQL) ListByPsychologist(ctx context.Context, psychologistID uint) ([]*models.Share, error) {
	var shares []*models.Share
	err := s.db.WithContext(ctx).
		Where("psychologist_id = ?", psychologistID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list received shares: %w", err)
	}
	return shares, nil
}

func (s *SharePostgreSQL) Exists(ctx context.Context, assessmentID, psychologistID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Share{}).
		Where("assessment_id = ? AND psychologist_id = ?", assessmentID, psychologistID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check share existence: %w", err)
	}
	return count > 0, nil
}
