package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/cache"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
)

type MoodHandler struct {
	BaseHandler
	moodService   services.MoodService
	reportService services.ReportService
	cacheService  cache.CacheService
}

func NewMoodHandler(moodService services.MoodService, reportService services.ReportService, cacheService cache.CacheService, logger utils.Logger) *MoodHandler {
	return &MoodHandler{
		BaseHandler:   NewBaseHandler(logger),
		moodService:   moodService,
		reportService: reportService,
		cacheService:  cacheService,
	}
}

// Create records a mood journal entry
func (h *MoodHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req services.CreateMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	entry, err := h.moodService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Recent returns the newest journal entries
func (h *MoodHandler) Recent(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	limit := h.parseIntQuery(c, "limit", 10)

	entries, err := h.moodService.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Stats returns journal aggregates
func (h *MoodHandler) Stats(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	stats, err := h.moodService.Stats(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Trends returns per-day mood samples for charting
func (h *MoodHandler) Trends(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	days := h.parseIntQuery(c, "days", 30)

	samples, err := h.moodService.Trends(c.Request.Context(), userID, days)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": samples})
}

// CacheStats exposes in-memory cache counters for debugging
func (h *MoodHandler) CacheStats(c *gin.Context) {
	if _, ok := h.CurrentUserID(c); !ok {
		return
	}

	if memory, ok := h.cacheService.(*cache.MemoryCache); ok {
		c.JSON(http.StatusOK, memory.Stats())
		return
	}
	c.JSON(http.StatusOK, gin.H{"backend": "redis"})
}

// ExportReport streams the mood journal as an xlsx workbook
func (h *MoodHandler) ExportReport(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	days := h.parseIntQuery(c, "days", 30)

	data, err := h.reportService.ExportMoodJournal(c.Request.Context(), userID, days)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("mood-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
