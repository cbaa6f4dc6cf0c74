package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etude-app/etude-api/internal/models"
	"github.com/etude-app/etude-api/internal/notation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseService struct {
	db *gorm.DB
}

func NewExerciseService(db *gorm.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

// Generate runs the notation generator for a user. When seed is nil a
// time-based seed is chosen; the seed actually used is returned so the
// client can reproduce the exercise.
func (s *ExerciseService) Generate(cfg notation.Config, seed *int64) (abc string, seedUsed int64, err error) {
	seedUsed = time.Now().UnixNano()
	if seed != nil {
		seedUsed = *seed
	}

	abc, err = notation.Generate(cfg, notation.NewRand(seedUsed))
	if err != nil {
		return "", 0, err
	}
	return abc, seedUsed, nil
}

// LogGeneration records one generation for the dashboard stats
func (s *ExerciseService) LogGeneration(log *models.GenerationLog) error {
	return s.db.Create(log).Error
}

// Save persists a generated exercise for later practice
func (s *ExerciseService) Save(userID uint, title, abc string, cfg notation.Config, seed *int64) (*models.Exercise, error) {
	exercise := &models.Exercise{
		PublicID:      uuid.New().String(),
		UserID:        userID,
		Title:         title,
		ABC:           abc,
		Key:           cfg.Key,
		TimeSignature: cfg.TimeSignature,
		MeasureCount:  cfg.MeasureCount,
		Intervals:     FormatIntervals(cfg.AllowedIntervals),
		Durations:     strings.Join(cfg.AllowedDurations, ","),
		Seed:          seed,
	}

	if err := s.db.Create(exercise).Error; err != nil {
		return nil, err
	}
	return exercise, nil
}

// List returns a page of the user's saved exercises, newest first
func (s *ExerciseService) List(userID uint, page, pageSize int) ([]models.Exercise, int64, error) {
	var total int64
	if err := s.db.Model(&models.Exercise{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exercises []models.Exercise
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&exercises).Error
	if err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

// Get returns one saved exercise owned by the user
func (s *ExerciseService) Get(userID uint, publicID string) (*models.Exercise, error) {
	var exercise models.Exercise
	err := s.db.Where("user_id = ? AND public_id = ?", userID, publicID).First(&exercise).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// Delete removes a saved exercise owned by the user
func (s *ExerciseService) Delete(userID uint, publicID string) error {
	result := s.db.Where("user_id = ? AND public_id = ?", userID, publicID).Delete(&models.Exercise{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PracticeStats aggregates a user's generation activity over a period
type PracticeStats struct {
	TotalGenerations int64            `json:"total_generations"`
	TotalMeasures    int64            `json:"total_measures"`
	AvgDurationMS    float64          `json:"avg_duration_ms"`
	KeyUsage         map[string]int64 `json:"key_usage"`
}

// GetPracticeStats retrieves practice statistics for a user
func (s *ExerciseService) GetPracticeStats(userID uint, from, to time.Time) (*PracticeStats, error) {
	stats := &PracticeStats{KeyUsage: make(map[string]int64)}

	query := s.db.Model(&models.GenerationLog{}).Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}

	if err := query.Select(
		"COUNT(*) as total_generations",
		"COALESCE(SUM(measure_count), 0) as total_measures",
		"COALESCE(AVG(duration_ms), 0) as avg_duration_ms",
	).Scan(stats).Error; err != nil {
		return nil, err
	}

	// Per-key breakdown
	rows := []struct {
		Key   string
		Count int64
	}{}
	keyQuery := s.db.Model(&models.GenerationLog{}).Where("user_id = ?", userID)
	if !from.IsZero() {
		keyQuery = keyQuery.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		keyQuery = keyQuery.Where("created_at <= ?", to)
	}
	if err := keyQuery.Select("key, COUNT(*) as count").Group("key").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.KeyUsage[row.Key] = row.Count
	}

	return stats, nil
}

// GetHistory returns a page of the user's generation log, newest first
func (s *ExerciseService) GetHistory(userID uint, page, pageSize int) ([]models.GenerationLog, int64, error) {
	var total int64
	if err := s.db.Model(&models.GenerationLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.GenerationLog
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// FormatIntervals renders an interval set as a comma-separated string
func FormatIntervals(intervals []int) string {
	parts := make([]string, 0, len(intervals))
	for _, interval := range intervals {
		parts = append(parts, strconv.Itoa(interval))
	}
	return strings.Join(parts, ",")
}

// ParseIntervals parses a comma-separated interval string
func ParseIntervals(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	intervals := make([]int, 0, len(parts))
	for _, part := range parts {
		interval, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid interval %q", part)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}
