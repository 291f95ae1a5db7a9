package models

import "time"

type TemperatureState struct {
	UserID        string `gorm:"primaryKey"`
	Phase         string `gorm:"not null"`
	Baseline      *float64
	LastEvaluated time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}

type CycleState struct {
	UserID          string `gorm:"primaryKey"`
	State           string `gorm:"not null"`
	AvgCycleLength  *int
	AvgPeriodLength *int
	LastPeriodStart *time.Time `gorm:"type:date"`
	LastEvaluated   time.Time  `gorm:"not null"`
	UpdatedAt       time.Time
}
