package handlers

import (
	"net/http"
	"strings"

	"github.com/etude-app/etude-api/internal/middleware"
	"github.com/etude-app/etude-api/internal/models"
	"github.com/etude-app/etude-api/internal/notation"
	"github.com/etude-app/etude-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{settingsService: services.NewSettingsService(db)}
}

type UpdateSettingsRequest struct {
	Key           string   `json:"key" binding:"required"`
	TimeSignature string   `json:"time_signature" binding:"required"`
	MeasureCount  int      `json:"measure_count" binding:"required,min=1"`
	Intervals     []int    `json:"intervals" binding:"required,min=1"`
	Durations     []string `json:"durations" binding:"required,min=1"`
}

// Get returns the user's practice settings
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	settings, err := h.settingsService.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Update replaces the user's practice settings after validating them
// against the generator, so saved defaults always produce a valid exercise.
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := notation.Config{
		MeasureCount:     req.MeasureCount,
		Key:              req.Key,
		TimeSignature:    req.TimeSignature,
		AllowedIntervals: req.Intervals,
		AllowedDurations: req.Durations,
	}
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := &models.PracticeSettings{
		Key:           req.Key,
		TimeSignature: req.TimeSignature,
		MeasureCount:  req.MeasureCount,
		Intervals:     services.FormatIntervals(req.Intervals),
		Durations:     strings.Join(req.Durations, ","),
	}

	if err := h.settingsService.Update(userID, settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	updated, err := h.settingsService.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
