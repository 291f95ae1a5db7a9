package db

import (
	"time"

	"github.com/basaltlabs/basalt/internal/models"
	"gorm.io/gorm"
)

type SymptomEventRepository struct {
	database *gorm.DB
}

func NewSymptomEventRepository(database *gorm.DB) *SymptomEventRepository {
	return &SymptomEventRepository{database: database}
}

func (repo *SymptomEventRepository) Create(event *models.SymptomEvent) error {
	return repo.database.Create(event).Error
}

func (repo *SymptomEventRepository) Save(event *models.SymptomEvent) error {
	return repo.database.Save(event).Error
}

func (repo *SymptomEventRepository) FindByIDForUser(eventID uint, userID string) (models.SymptomEvent, error) {
	var event models.SymptomEvent
	if err := repo.database.
		Where("id = ? AND user_id = ?", eventID, userID).
		First(&event).Error; err != nil {
		return models.SymptomEvent{}, err
	}
	return event, nil
}

func (repo *SymptomEventRepository) ListByUser(userID string) ([]models.SymptomEvent, error) {
	events := make([]models.SymptomEvent, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *SymptomEventRepository) ListByUserRange(userID string, from *time.Time, to *time.Time) ([]models.SymptomEvent, error) {
	query := repo.database.Model(&models.SymptomEvent{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", *to)
	}

	events := make([]models.SymptomEvent, 0)
	if err := query.Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *SymptomEventRepository) ListAll() ([]models.SymptomEvent, error) {
	events := make([]models.SymptomEvent, 0)
	if err := repo.database.Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *SymptomEventRepository) DeleteByIDForUser(eventID uint, userID string) error {
	return repo.database.
		Where("id = ? AND user_id = ?", eventID, userID).
		Delete(&models.SymptomEvent{}).Error
}
