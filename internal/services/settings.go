package services

import (
	"errors"

	"github.com/etude-app/etude-api/internal/models"
	"gorm.io/gorm"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the user's practice settings, creating defaults on first use
func (s *SettingsService) Get(userID uint) (*models.PracticeSettings, error) {
	var settings models.PracticeSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultPracticeSettings(userID)
		if createErr := s.db.Create(&settings).Error; createErr != nil {
			return nil, createErr
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update overwrites the user's practice settings
func (s *SettingsService) Update(userID uint, settings *models.PracticeSettings) error {
	existing, err := s.Get(userID)
	if err != nil {
		return err
	}

	existing.Key = settings.Key
	existing.TimeSignature = settings.TimeSignature
	existing.MeasureCount = settings.MeasureCount
	existing.Intervals = settings.Intervals
	existing.Durations = settings.Durations

	return s.db.Save(existing).Error
}
