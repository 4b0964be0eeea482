package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
	}
}

// Correlations relates journal tags to mood levels
func (h *AnalyticsHandler) Correlations(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	days := h.parseIntQuery(c, "days", 30)

	report, err := h.analyticsService.Correlations(c.Request.Context(), userID, days)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Trends classifies mood movement over the period
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	days := h.parseIntQuery(c, "days", 30)

	report, err := h.analyticsService.Trend(c.Request.Context(), userID, days)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Report renders the full 30-day journal summary
func (h *AnalyticsHandler) Report(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.Report(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
