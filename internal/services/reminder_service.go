package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultReminderTime = "20:00"

// ReminderService manages daily check-in reminders and history-based
// suggestions.
type ReminderService interface {
	Configure(ctx context.Context, userID uint, req *ConfigureReminderRequest) (*models.ReminderSettings, error)
	Status(ctx context.Context, userID uint) (*ReminderStatus, error)
	Suggestions(ctx context.Context, userID uint) ([]string, error)
}

type ConfigureReminderRequest struct {
	Enabled bool    `json:"enabled"`
	Time    *string `json:"time,omitempty" validate:"omitempty,time_hhmm"`
}

// ReminderStatus reports the reminder configuration together with whether the
// user already checked in today.
type ReminderStatus struct {
	Enabled       bool    `json:"enabled"`
	Time          string  `json:"time"`
	LoggedToday   bool    `json:"logged_today"`
	LastEntryDate *string `json:"last_entry_date,omitempty"`
}

type reminderService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
	now       func() time.Time
}

func NewReminderService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) ReminderService {
	return &reminderService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

func (s *reminderService) Configure(ctx context.Context, userID uint, req *ConfigureReminderRequest) (*models.ReminderSettings, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	reminderTime := defaultReminderTime
	if req.Time != nil {
		reminderTime = *req.Time
	}
	now := s.now()
	settings := models.ReminderSettings{
		Enabled:      req.Enabled,
		Time:         reminderTime,
		ConfiguredAt: &now,
	}
	user.Reminders = datatypes.NewJSONType(settings)
	if err := s.repo.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save reminder settings: %w", err)
	}

	s.logger.Info("reminder configured", "user_id", userID, "enabled", settings.Enabled, "time", settings.Time)
	return &settings, nil
}

func (s *reminderService) Status(ctx context.Context, userID uint) (*ReminderStatus, error) {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	settings := user.Reminders.Data()
	status := &ReminderStatus{
		Enabled: settings.Enabled,
		Time:    settings.Time,
	}
	if status.Time == "" {
		status.Time = defaultReminderTime
	}

	latest, err := s.repo.Moods().GetLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return nil, fmt.Errorf("failed to load latest mood entry: %w", err)
	}
	if latest != nil {
		date := latest.EntryDate.Format("2006-01-02")
		status.LastEntryDate = &date
		status.LoggedToday = date == s.now().Format("2006-01-02")
	}
	return status, nil
}

// Suggestions derives check-in prompts from the last seven days of entries.
func (s *reminderService) Suggestions(ctx context.Context, userID uint) ([]string, error) {
	since := s.now().AddDate(0, 0, -7)
	entries, err := s.repo.Moods().ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood entries: %w", err)
	}

	if len(entries) == 0 {
		return []string{
			"How about starting by logging how you feel today?",
			"Logging your mood daily helps you get to know yourself.",
			"Try writing down an activity you plan to do tomorrow!",
		}, nil
	}

	goodMoodActivities := make(map[string]int)
	emotionCounts := make(map[string]int)
	moodSum := 0
	for _, entry := range entries {
		moodSum += entry.MoodLevel
		if entry.MoodLevel >= 4 {
			for _, activity := range entry.Activities.Data() {
				goodMoodActivities[activity]++
			}
		}
		for _, emotion := range entry.Emotions.Data() {
			emotionCounts[emotion]++
		}
	}

	var suggestions []string
	if top := topTags(goodMoodActivities, 1); len(top) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("You tend to feel good when you do: %s. How about planning that for today?", top[0].Tag))
	}
	if top := topTags(emotionCounts, 1); len(top) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("You have been feeling %s often. How are you feeling today?", strings.ToLower(top[0].Tag)))
	}
	if len(entries) >= 3 {
		meanMood := float64(moodSum) / float64(len(entries))
		if meanMood >= 4 {
			suggestions = append(suggestions, "Your mood has been great! Keep it up!")
		} else if meanMood <= 2 {
			suggestions = append(suggestions, "We noticed your mood has been low. Remember that is normal and you can seek help if you need it.")
		}
	}
	if len(suggestions) == 0 {
		suggestions = []string{
			"Keep logging your mood so we can offer personalized insights!",
			"How about trying a new activity today?",
			"Remember to take care of your mental wellbeing.",
		}
	}
	return suggestions, nil
}
