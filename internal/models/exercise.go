package models

import (
	"time"

	"gorm.io/gorm"
)

// Exercise is a saved sight-reading exercise: the generated ABC document plus
// the configuration that produced it, so it can be re-rendered or regenerated.
type Exercise struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"uniqueIndex;not null" json:"id"` // uuid handed to clients
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"not null;index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Title     string         `json:"title"`
	ABC       string         `gorm:"type:text;not null" json:"abc"`

	// Generation parameters, flattened for querying
	Key           string `gorm:"not null" json:"key"`
	TimeSignature string `gorm:"not null" json:"time_signature"`
	MeasureCount  int    `gorm:"not null" json:"measure_count"`
	Intervals     string `gorm:"not null" json:"intervals"` // comma-separated, e.g. "1,2,3"
	Durations     string `gorm:"not null" json:"durations"` // comma-separated, e.g. "1/8,1/4"
	Seed          *int64 `json:"seed,omitempty"`
}

// PracticeSettings stores a user's default generation parameters, shown
// pre-filled on the practice screen.
type PracticeSettings struct {
	ID            uint           `gorm:"primarykey" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"-"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Key           string         `gorm:"default:'C'" json:"key"`
	TimeSignature string         `gorm:"default:'4/4'" json:"time_signature"`
	MeasureCount  int            `gorm:"default:4" json:"measure_count"`
	Intervals     string         `gorm:"default:'1,2,3'" json:"intervals"`
	Durations     string         `gorm:"default:'1/8,1/4'" json:"durations"`
}

// DefaultPracticeSettings returns the starting settings for a new user
func DefaultPracticeSettings(userID uint) PracticeSettings {
	return PracticeSettings{
		UserID:        userID,
		Key:           "C",
		TimeSignature: "4/4",
		MeasureCount:  4,
		Intervals:     "1,2,3",
		Durations:     "1/8,1/4",
	}
}

// GenerationLog tracks exercise generations for the dashboard stats
type GenerationLog struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	Key           string    `gorm:"not null" json:"key"`
	TimeSignature string    `gorm:"not null" json:"time_signature"`
	MeasureCount  int       `gorm:"not null" json:"measure_count"`
	DurationMS    int       `gorm:"not null" json:"duration_ms"`
	RequestID     string    `gorm:"index" json:"request_id"`
}
