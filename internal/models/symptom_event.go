package models

import "time"

const (
	FlowNone     = "none"
	FlowSpotting = "spotting"
	FlowLight    = "light"
	FlowMedium   = "medium"
	FlowHeavy    = "heavy"
)

type SymptomEvent struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        string    `gorm:"not null;index"`
	Date          time.Time `gorm:"type:date;not null;index"`
	FlowIntensity *string
	Symptoms      []string `gorm:"serializer:json"`
	Mood          []string `gorm:"serializer:json"`
	Discharge     []string `gorm:"serializer:json"`
	Sex           []string `gorm:"serializer:json"`
	OvulationTest *bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
