package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/cache"
	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"gorm.io/datatypes"
)

// Cache TTLs for the mood read paths. Stats change with every entry so they
// expire fastest; correlations are the most expensive to recompute.
const (
	statsCacheTTL        = 10 * time.Minute
	recentCacheTTL       = 15 * time.Minute
	correlationsCacheTTL = 30 * time.Minute
)

const defaultRecentLimit = 10

// MoodService records journal entries and serves cached read paths.
type MoodService interface {
	Create(ctx context.Context, userID uint, req *CreateMoodEntryRequest) (*models.MoodEntry, error)
	Recent(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error)
	Stats(ctx context.Context, userID uint) (*MoodStats, error)
	Trends(ctx context.Context, userID uint, days int) ([]TrendSample, error)
}

type CreateMoodEntryRequest struct {
	MoodLevel         int      `json:"mood_level" validate:"required,min=1,max=5"`
	Description       *string  `json:"description,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	Emotions          []string `json:"emotions,omitempty"`
	Factors           []string `json:"factors,omitempty"`
	Activities        []string `json:"activities,omitempty"`
	PlannedActivities []string `json:"planned_activities,omitempty"`
	SleepHours        *float64 `json:"sleep_hours,omitempty" validate:"omitempty,min=0,max=24"`
	SleepQuality      *int     `json:"sleep_quality,omitempty" validate:"omitempty,min=1,max=5"`
	StressLevel       *int     `json:"stress_level,omitempty" validate:"omitempty,min=1,max=5"`
	EntryDate         *string  `json:"entry_date,omitempty"` // "2006-01-02", defaults to today
}

// MoodStats is the cached aggregate over a user's whole journal.
type MoodStats struct {
	TotalEntries     int64          `json:"total_entries"`
	MeanMood         float64        `json:"mean_mood"`
	FrequentEmotions []TagFrequency `json:"frequent_emotions"`
}

// TrendSample is one day's mood, stress and sleep reading for charting.
type TrendSample struct {
	Date   string `json:"date"`
	Mood   int    `json:"mood"`
	Stress int    `json:"stress"`
	Sleep  int    `json:"sleep"`
}

type moodService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
	now       func() time.Time
}

func NewMoodService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger, validator *utils.Validator) MoodService {
	return &moodService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

// Create stores the entry and drops every cached read for the user so the
// next stats or recent call reflects it.
func (s *moodService) Create(ctx context.Context, userID uint, req *CreateMoodEntryRequest) (*models.MoodEntry, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	entryDate := s.now()
	if req.EntryDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid entry date %q", ErrBadRequest, *req.EntryDate)
		}
		entryDate = parsed
	}

	entry := &models.MoodEntry{
		UserID:            userID,
		MoodLevel:         req.MoodLevel,
		Description:       req.Description,
		Notes:             req.Notes,
		Emotions:          datatypes.NewJSONType(req.Emotions),
		Factors:           datatypes.NewJSONType(req.Factors),
		Activities:        datatypes.NewJSONType(req.Activities),
		PlannedActivities: datatypes.NewJSONType(req.PlannedActivities),
		SleepHours:        req.SleepHours,
		SleepQuality:      req.SleepQuality,
		StressLevel:       req.StressLevel,
		EntryDate:         entryDate,
	}
	if err := s.repo.Moods().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to store mood entry: %w", err)
	}

	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate mood cache", "user_id", userID, "error", err)
	}

	s.logger.Info("mood entry created", "user_id", userID, "entry_id", entry.ID, "mood_level", entry.MoodLevel)
	return entry, nil
}

// Recent returns the newest entries, read through the cache.
func (s *moodService) Recent(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	key := cache.Key("mood_recent", userID, limit)
	var cached []*models.MoodEntry
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("mood cache read failed", "key", key, "error", err)
	}

	entries, err := s.repo.Moods().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetForUser(ctx, userID, key, entries, recentCacheTTL); err != nil {
		s.logger.Warn("mood cache write failed", "key", key, "error", err)
	}
	return entries, nil
}

// Stats aggregates the whole journal, read through the cache.
func (s *moodService) Stats(ctx context.Context, userID uint) (*MoodStats, error) {
	key := cache.Key("mood_stats", userID)
	var cached MoodStats
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("mood cache read failed", "key", key, "error", err)
	}

	entries, err := s.repo.Moods().ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	stats := &MoodStats{
		TotalEntries:     int64(len(entries)),
		FrequentEmotions: []TagFrequency{},
	}
	if len(entries) > 0 {
		moodSum := 0
		emotionCounts := make(map[string]int)
		for _, entry := range entries {
			moodSum += entry.MoodLevel
			for _, emotion := range entry.Emotions.Data() {
				emotionCounts[emotion]++
			}
		}
		stats.MeanMood = round2(float64(moodSum) / float64(len(entries)))
		stats.FrequentEmotions = topTags(emotionCounts, len(emotionCounts))
	}

	if err := s.cache.SetForUser(ctx, userID, key, stats, statsCacheTTL); err != nil {
		s.logger.Warn("mood cache write failed", "key", key, "error", err)
	}
	return stats, nil
}

// Trends returns per-day samples over the trailing window. Not cached: the
// window boundary moves with the clock.
func (s *moodService) Trends(ctx context.Context, userID uint, days int) ([]TrendSample, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)
	entries, err := s.repo.Moods().ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	samples := make([]TrendSample, 0, len(entries))
	for _, entry := range entries {
		sample := TrendSample{
			Date: entry.EntryDate.Format("2006-01-02"),
			Mood: entry.MoodLevel,
		}
		if entry.StressLevel != nil {
			sample.Stress = *entry.StressLevel
		}
		if entry.SleepQuality != nil {
			sample.Sleep = *entry.SleepQuality
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
