package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/etude-app/etude-api/internal/config"
	"github.com/etude-app/etude-api/internal/logger"
	"github.com/etude-app/etude-api/internal/metrics"
	"github.com/etude-app/etude-api/internal/middleware"
	"github.com/etude-app/etude-api/internal/models"
	"github.com/etude-app/etude-api/internal/notation"
	"github.com/etude-app/etude-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExerciseHandler struct {
	db              *gorm.DB
	cfg             *config.Config
	exerciseService *services.ExerciseService
	settingsService *services.SettingsService
	sentryMetrics   *metrics.SentryMetrics
	cloudwatch      *metrics.Client
}

func NewExerciseHandler(db *gorm.DB, cfg *config.Config, cloudwatch *metrics.Client) *ExerciseHandler {
	return &ExerciseHandler{
		db:              db,
		cfg:             cfg,
		exerciseService: services.NewExerciseService(db),
		settingsService: services.NewSettingsService(db),
		sentryMetrics:   metrics.NewSentryMetrics(),
		cloudwatch:      cloudwatch,
	}
}

type GenerateRequest struct {
	Key           string   `json:"key"`
	TimeSignature string   `json:"time_signature"`
	MeasureCount  int      `json:"measure_count"`
	Intervals     []int    `json:"intervals"`
	Durations     []string `json:"durations"`
	Seed          *int64   `json:"seed"`
}

type GenerateResponse struct {
	ABC           string   `json:"abc"`
	Seed          int64    `json:"seed"`
	Key           string   `json:"key"`
	TimeSignature string   `json:"time_signature"`
	MeasureCount  int      `json:"measure_count"`
	Intervals     []int    `json:"intervals"`
	Durations     []string `json:"durations"`
}

type SaveExerciseRequest struct {
	Title         string   `json:"title"`
	ABC           string   `json:"abc" binding:"required"`
	Key           string   `json:"key" binding:"required"`
	TimeSignature string   `json:"time_signature" binding:"required"`
	MeasureCount  int      `json:"measure_count" binding:"required"`
	Intervals     []int    `json:"intervals" binding:"required"`
	Durations     []string `json:"durations" binding:"required"`
	Seed          *int64   `json:"seed"`
}

// buildConfig merges the request with the user's saved practice settings.
// Fields left empty in the request fall back to the saved defaults.
func (h *ExerciseHandler) buildConfig(userID uint, req *GenerateRequest) (notation.Config, error) {
	cfg := notation.Config{
		MeasureCount:     req.MeasureCount,
		Key:              req.Key,
		TimeSignature:    req.TimeSignature,
		AllowedIntervals: req.Intervals,
		AllowedDurations: req.Durations,
	}

	if cfg.MeasureCount > 0 && cfg.Key != "" && cfg.TimeSignature != "" &&
		len(cfg.AllowedIntervals) > 0 && len(cfg.AllowedDurations) > 0 {
		return cfg, nil
	}

	settings, err := h.settingsService.Get(userID)
	if err != nil {
		return notation.Config{}, err
	}

	if cfg.MeasureCount == 0 {
		cfg.MeasureCount = settings.MeasureCount
	}
	if cfg.Key == "" {
		cfg.Key = settings.Key
	}
	if cfg.TimeSignature == "" {
		cfg.TimeSignature = settings.TimeSignature
	}
	if len(cfg.AllowedIntervals) == 0 {
		cfg.AllowedIntervals, err = services.ParseIntervals(settings.Intervals)
		if err != nil {
			return notation.Config{}, err
		}
	}
	if len(cfg.AllowedDurations) == 0 {
		cfg.AllowedDurations = strings.Split(settings.Durations, ",")
	}

	return cfg, nil
}

// Generate creates a new sight-reading exercise
func (h *ExerciseHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.buildConfig(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load practice settings"})
		return
	}

	start := time.Now()
	abc, seedUsed, err := h.exerciseService.Generate(cfg, req.Seed)
	duration := time.Since(start)

	if err != nil {
		var cfgErr *notation.ConfigurationError
		if errors.As(err, &cfgErr) {
			h.sentryMetrics.RecordGeneration(c.Request.Context(), cfg.Key, cfg.TimeSignature, cfg.MeasureCount, duration, false)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": cfgErr.Message,
				"field": cfgErr.Field,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate exercise"})
		return
	}

	logger.LogGeneration(c, cfg.Key, cfg.TimeSignature, cfg.MeasureCount, duration)
	h.sentryMetrics.RecordGeneration(c.Request.Context(), cfg.Key, cfg.TimeSignature, cfg.MeasureCount, duration, true)
	if h.cloudwatch != nil {
		h.cloudwatch.RecordGeneration(cfg.Key, cfg.MeasureCount, duration, true)
	}

	genLog := &models.GenerationLog{
		UserID:        userID,
		Key:           cfg.Key,
		TimeSignature: cfg.TimeSignature,
		MeasureCount:  cfg.MeasureCount,
		DurationMS:    int(duration.Milliseconds()),
		RequestID:     c.GetString("request_id"),
	}
	if logErr := h.exerciseService.LogGeneration(genLog); logErr != nil {
		logger.Warn("Failed to log generation", logger.Fields{
			"error":      logErr.Error(),
			"request_id": c.GetString("request_id"),
		})
	}

	c.JSON(http.StatusOK, GenerateResponse{
		ABC:           abc,
		Seed:          seedUsed,
		Key:           cfg.Key,
		TimeSignature: cfg.TimeSignature,
		MeasureCount:  cfg.MeasureCount,
		Intervals:     cfg.AllowedIntervals,
		Durations:     cfg.AllowedDurations,
	})
}

// Save persists a previously generated exercise
func (h *ExerciseHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req SaveExerciseRequest
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
		var cfgErr *notation.ConfigurationError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Message, "field": cfgErr.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exercise, err := h.exerciseService.Save(userID, req.Title, req.ABC, cfg, req.Seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save exercise"})
		return
	}

	h.sentryMetrics.RecordCustomMetric("exercise.saved", map[string]interface{}{
		"key":           cfg.Key,
		"measure_count": cfg.MeasureCount,
	})

	c.JSON(http.StatusCreated, exercise)
}

// List returns the user's saved exercises, newest first
func (h *ExerciseHandler) List(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, pageSize := paginationParams(c)

	exercises, total, err := h.exerciseService.List(userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exercises"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exercises": exercises,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get returns a single saved exercise by its public id
func (h *ExerciseHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	exercise, err := h.exerciseService.Get(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exercise"})
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// Delete removes a saved exercise
func (h *ExerciseHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.exerciseService.Delete(userID, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exercise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

// paginationParams reads page/page_size query params with sane bounds
func paginationParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
