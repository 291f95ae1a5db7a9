package models

import "time"

type Period struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       string     `gorm:"not null;index"`
	StartDate    time.Time  `gorm:"type:date;not null;index"`
	EndDate      *time.Time `gorm:"type:date"`
	Duration     *int
	LutealLength *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
