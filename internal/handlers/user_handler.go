package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService        services.UserService
	appointmentService services.AppointmentService
}

func NewUserHandler(userService services.UserService, appointmentService services.AppointmentService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:        NewBaseHandler(logger),
		userService:        userService,
		appointmentService: appointmentService,
	}
}

// GetProfile returns the caller's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies role-scoped profile updates
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated", Data: user})
}

// DeleteAccount removes the caller's account and owned data
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Account deleted"})
}

// ListPsychologists returns the active psychologist directory
func (h *UserHandler) ListPsychologists(c *gin.Context) {
	psychologists, err := h.userService.ListPsychologists(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"psychologists": psychologists})
}

// GetAvailability projects a psychologist's bookable slots
func (h *UserHandler) GetAvailability(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	availability, err := h.appointmentService.GetAvailability(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": availability})
}
