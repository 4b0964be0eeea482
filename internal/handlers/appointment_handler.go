package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

type AppointmentHandler struct {
	BaseHandler
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService, logger utils.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		BaseHandler:        NewBaseHandler(logger),
		appointmentService: appointmentService,
	}
}

// Book creates an appointment after the full validation chain
func (h *AppointmentHandler) Book(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	appointment, err := h.appointmentService.Book(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// List returns the caller's appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// UpdateStatus applies one state-machine transition
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// SharedAssessments returns the student's assessments when access was granted
func (h *AppointmentHandler) SharedAssessments(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	assessments, err := h.appointmentService.SharedAssessments(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}
