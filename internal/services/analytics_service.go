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
)

const defaultAnalyticsWindowDays = 30

// AnalyticsService serves mood correlation and trend analysis.
type AnalyticsService interface {
	Correlations(ctx context.Context, userID uint, days int) (*CorrelationReport, error)
	Trend(ctx context.Context, userID uint, days int) (*TrendReport, error)
	Report(ctx context.Context, userID uint) (*MoodReport, error)
}

type analyticsService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
	now    func() time.Time
}

func NewAnalyticsService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
		now:    time.Now,
	}
}

// Correlations relates journal tags to mood, read through the cache.
func (s *analyticsService) Correlations(ctx context.Context, userID uint, days int) (*CorrelationReport, error) {
	if days <= 0 {
		days = defaultAnalyticsWindowDays
	}

	key := cache.Key("mood_correlations", userID, days)
	var cached CorrelationReport
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("analytics cache read failed", "key", key, "error", err)
	}

	entries, err := s.entriesSince(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	report := CorrelateMood(entries, days)

	if err := s.cache.SetForUser(ctx, userID, key, &report, correlationsCacheTTL); err != nil {
		s.logger.Warn("analytics cache write failed", "key", key, "error", err)
	}
	return &report, nil
}

func (s *analyticsService) Trend(ctx context.Context, userID uint, days int) (*TrendReport, error) {
	if days <= 0 {
		days = defaultAnalyticsWindowDays
	}
	entries, err := s.entriesSince(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	report := AnalyzeTrend(entries)
	return &report, nil
}

func (s *analyticsService) Report(ctx context.Context, userID uint) (*MoodReport, error) {
	entries, err := s.entriesSince(ctx, userID, defaultAnalyticsWindowDays)
	if err != nil {
		return nil, err
	}
	report := BuildMoodReport(entries)
	return &report, nil
}

func (s *analyticsService) entriesSince(ctx context.Context, userID uint, days int) ([]*models.MoodEntry, error) {
	since := s.now().AddDate(0, 0, -days)
	entries, err := s.repo.Moods().ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood entries: %w", err)
	}
	return entries, nil
}
