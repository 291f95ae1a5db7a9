package db

import (
	"errors"

	"github.com/basaltlabs/basalt/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StateRepository struct {
	database *gorm.DB
}

func NewStateRepository(database *gorm.DB) *StateRepository {
	return &StateRepository{database: database}
}

func (repo *StateRepository) FindTemperatureState(userID string) (models.TemperatureState, bool, error) {
	var state models.TemperatureState
	err := repo.database.Where("user_id = ?", userID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TemperatureState{}, false, nil
	}
	if err != nil {
		return models.TemperatureState{}, false, err
	}
	return state, true, nil
}

func (repo *StateRepository) ReplaceTemperatureState(state *models.TemperatureState) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(state).Error
}

func (repo *StateRepository) FindCycleState(userID string) (models.CycleState, bool, error) {
	var state models.CycleState
	err := repo.database.Where("user_id = ?", userID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CycleState{}, false, nil
	}
	if err != nil {
		return models.CycleState{}, false, err
	}
	return state, true, nil
}

func (repo *StateRepository) ReplaceCycleState(state *models.CycleState) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(state).Error
}
