package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/auth"
	"github.com/mente-leve/wellbeing-service/internal/cache"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

type HandlerManager struct {
	tokens *auth.TokenManager

	authHandler        *AuthHandler
	userHandler        *UserHandler
	assessmentHandler  *AssessmentHandler
	shareHandler       *ShareHandler
	moodHandler        *MoodHandler
	appointmentHandler *AppointmentHandler
	analyticsHandler   *AnalyticsHandler
	reminderHandler    *ReminderHandler
}

func NewHandlerManager(
	manager *services.Manager,
	tokens *auth.TokenManager,
	cacheService cache.CacheService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		tokens:             tokens,
		authHandler:        NewAuthHandler(manager.Auth, logger),
		userHandler:        NewUserHandler(manager.Users, manager.Appointments, logger),
		assessmentHandler:  NewAssessmentHandler(manager.Assessments, logger),
		shareHandler:       NewShareHandler(manager.Shares, logger),
		moodHandler:        NewMoodHandler(manager.Moods, manager.Reports, cacheService, logger),
		appointmentHandler: NewAppointmentHandler(manager.Appointments, logger),
		analyticsHandler:   NewAnalyticsHandler(manager.Analytics, logger),
		reminderHandler:    NewReminderHandler(manager.Reminders, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	api := router.Group("/api")

	// Public auth routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register-student", hm.authHandler.RegisterStudent)
		authRoutes.POST("/register-psychologist", hm.authHandler.RegisterPsychologist)
		authRoutes.POST("/login", hm.authHandler.Login)
		authRoutes.POST("/refresh", hm.authHandler.Refresh)
	}

	// Everything else requires an access token
	protected := api.Group("")
	protected.Use(AuthMiddleware(hm.tokens))
	{
		protected.POST("/auth/logout", hm.authHandler.Logout)
		protected.GET("/auth/me", hm.authHandler.Me)

		profile := protected.Group("/profile")
		{
			profile.GET("", hm.userHandler.GetProfile)
			profile.PUT("", hm.userHandler.UpdateProfile)
			profile.DELETE("", hm.userHandler.DeleteAccount)
		}

		psychologists := protected.Group("/psychologists")
		{
			psychologists.GET("", hm.userHandler.ListPsychologists)
			psychologists.GET("/:id/availability", hm.userHandler.GetAvailability)
		}

		assessments := protected.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.Submit)
			assessments.GET("", hm.assessmentHandler.ListMine)
			assessments.GET("/:id", hm.assessmentHandler.Get)
		}

		shares := protected.Group("/shares")
		{
			shares.POST("", hm.shareHandler.Create)
			shares.GET("/sent", hm.shareHandler.ListSent)
			shares.GET("/received", hm.shareHandler.ListReceived)
			shares.POST("/:id/view", hm.shareHandler.MarkViewed)
			shares.PUT("/:id/observations", hm.shareHandler.UpdateObservations)
		}

		mood := protected.Group("/mood")
		{
			mood.POST("", hm.moodHandler.Create)
			mood.GET("", hm.moodHandler.Recent)
			mood.GET("/stats", hm.moodHandler.Stats)
			mood.GET("/trends", hm.moodHandler.Trends)
			mood.GET("/cache/stats", hm.moodHandler.CacheStats)
			mood.GET("/report/export", hm.moodHandler.ExportReport)
		}

		appointments := protected.Group("/appointments")
		{
			appointments.POST("", hm.appointmentHandler.Book)
			appointments.GET("", hm.appointmentHandler.List)
			appointments.PUT("/:id/status", hm.appointmentHandler.UpdateStatus)
			appointments.GET("/:id/assessments", hm.appointmentHandler.SharedAssessments)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/correlations", hm.analyticsHandler.Correlations)
			analytics.GET("/trends", hm.analyticsHandler.Trends)
			analytics.GET("/report", hm.analyticsHandler.Report)
		}

		reminders := protected.Group("/reminders")
		{
			reminders.POST("/settings", hm.reminderHandler.Configure)
			reminders.GET("/status", hm.reminderHandler.Status)
			reminders.GET("/suggestions", hm.reminderHandler.Suggestions)
		}
	}
}
