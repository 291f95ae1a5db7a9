package models

import "time"

type User struct {
	ID             string `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex;not null"`
	DisplayName    *string
	HashedPassword string `gorm:"not null"`
	IsAdmin        bool   `gorm:"not null;default:false"`
	IsDisabled     bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
