package db

import (
	"time"

	"github.com/basaltlabs/basalt/internal/models"
	"gorm.io/gorm"
)

type TemperatureRepository struct {
	database *gorm.DB
}

func NewTemperatureRepository(database *gorm.DB) *TemperatureRepository {
	return &TemperatureRepository{database: database}
}

func (repo *TemperatureRepository) Create(reading *models.Temperature) error {
	return repo.database.Create(reading).Error
}

func (repo *TemperatureRepository) ListByUser(userID string) ([]models.Temperature, error) {
	readings := make([]models.Temperature, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("timestamp ASC, id ASC").
		Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (repo *TemperatureRepository) ListByUserRange(userID string, from *time.Time, to *time.Time) ([]models.Temperature, error) {
	query := repo.database.Model(&models.Temperature{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("timestamp >= ?", *from)
	}
	if to != nil {
		query = query.Where("timestamp < ?", *to)
	}

	readings := make([]models.Temperature, 0)
	if err := query.Order("timestamp ASC, id ASC").Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (repo *TemperatureRepository) ListAll() ([]models.Temperature, error) {
	readings := make([]models.Temperature, 0)
	if err := repo.database.Order("timestamp ASC, id ASC").Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}
