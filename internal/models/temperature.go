package models

import "time"

type Temperature struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      string    `gorm:"not null;index"`
	Temperature float64   `gorm:"not null"`
	Timestamp   time.Time `gorm:"not null;index"`
}
