package db

import (
	"github.com/basaltlabs/basalt/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) Create(period *models.Period) error {
	return repo.database.Create(period).Error
}

func (repo *PeriodRepository) Save(period *models.Period) error {
	return repo.database.Save(period).Error
}

func (repo *PeriodRepository) FindByIDForUser(periodID uint, userID string) (models.Period, error) {
	var period models.Period
	if err := repo.database.
		Where("id = ? AND user_id = ?", periodID, userID).
		First(&period).Error; err != nil {
		return models.Period{}, err
	}
	return period, nil
}

func (repo *PeriodRepository) ListByUser(userID string) ([]models.Period, error) {
	periods := make([]models.Period, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (repo *PeriodRepository) ListRecentByUser(userID string, limit int) ([]models.Period, error) {
	periods := make([]models.Period, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Limit(limit).
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (repo *PeriodRepository) DeleteByIDForUser(periodID uint, userID string) error {
	return repo.database.
		Where("id = ? AND user_id = ?", periodID, userID).
		Delete(&models.Period{}).Error
}
