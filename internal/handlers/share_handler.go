package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

type ShareHandler struct {
	BaseHandler
	shareService services.ShareService
}

func NewShareHandler(shareService services.ShareService, logger utils.Logger) *ShareHandler {
	return &ShareHandler{
		BaseHandler:  NewBaseHandler(logger),
		shareService: shareService,
	}
}

// Create shares an assessment with a psychologist
func (h *ShareHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	share, err := h.shareService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, share)
}

// ListSent returns shares created by the calling student
func (h *ShareHandler) ListSent(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	shares, err := h.shareService.ListSent(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// ListReceived returns shares addressed to the calling psychologist
func (h *ShareHandler) ListReceived(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	shares, err := h.shareService.ListReceived(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// MarkViewed records that the psychologist opened the share
func (h *ShareHandler) MarkViewed(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	share, err := h.shareService.MarkViewed(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, share)
}

type observationsRequest struct {
	Observations string `json:"observations"`
}

// UpdateObservations stores the psychologist's notes on a share
func (h *ShareHandler) UpdateObservations(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req observationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	share, err := h.shareService.UpdateObservations(c.Request.Context(), userID, id, req.Observations)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, share)
}
