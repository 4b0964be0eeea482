package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"gorm.io/gorm"
)

type MoodPostgreSQL struct {
	db *gorm.DB
}

func NewMoodPostgreSQL(db *gorm.DB) repositories.MoodRepository {
	return &MoodPostgreSQL{db: db}
}

func (m *MoodPostgreSQL) Create(ctx context.Context, entry *models.MoodEntry) error {
	if err := m.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create mood entry: %w", err)
	}
	return nil
}

func (m *MoodPostgreSQL) GetByID(ctx context.Context, id uint) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	if err := m.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (m *MoodPostgreSQL) ListByUser(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	q := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}

func (m *MoodPostgreSQL) ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ?", userID, since).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries since %s: %w", since.Format("2006-01-02"), err)
	}
	return entries, nil
}

func (m *MoodPostgreSQL) GetLatestByUser(ctx context.Context, userID uint) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC, created_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
