package services

import (
	"log/slog"

	"github.com/mente-leve/wellbeing-service/internal/auth"
	"github.com/mente-leve/wellbeing-service/internal/cache"
	"github.com/mente-leve/wellbeing-service/internal/events"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

// Manager bundles every domain service behind one constructor.
type Manager struct {
	Auth         AuthService
	Users        UserService
	Assessments  AssessmentService
	Shares       ShareService
	Moods        MoodService
	Appointments AppointmentService
	Analytics    AnalyticsService
	Reminders    ReminderService
	Reports      ReportService
}

func NewManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	tokens *auth.TokenManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) *Manager {
	return &Manager{
		Auth:         NewAuthService(repo, tokens, logger, validator),
		Users:        NewUserService(repo, logger, validator),
		Assessments:  NewAssessmentService(repo, logger, validator),
		Shares:       NewShareService(repo, publisher, logger, validator),
		Moods:        NewMoodService(repo, cacheService, logger, validator),
		Appointments: NewAppointmentService(repo, publisher, logger, validator),
		Analytics:    NewAnalyticsService(repo, cacheService, logger),
		Reminders:    NewReminderService(repo, logger, validator),
		Reports:      NewReportService(repo, logger),
	}
}
