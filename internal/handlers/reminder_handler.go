package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

type ReminderHandler struct {
	BaseHandler
	reminderService services.ReminderService
}

func NewReminderHandler(reminderService services.ReminderService, logger utils.Logger) *ReminderHandler {
	return &ReminderHandler{
		BaseHandler:     NewBaseHandler(logger),
		reminderService: reminderService,
	}
}

// Configure saves the daily check-in reminder settings
func (h *ReminderHandler) Configure(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.ConfigureReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	settings, err := h.reminderService.Configure(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Reminder configured", Data: settings})
}

// Status reports the reminder configuration and today's check-in state
func (h *ReminderHandler) Status(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	status, err := h.reminderService.Status(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Suggestions returns history-based check-in prompts
func (h *ReminderHandler) Suggestions(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	suggestions, err := h.reminderService.Suggestions(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
