package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Temperatures *TemperatureRepository
	Periods      *PeriodRepository
	Symptoms     *SymptomEventRepository
	States       *StateRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Temperatures: NewTemperatureRepository(database),
		Periods:      NewPeriodRepository(database),
		Symptoms:     NewSymptomEventRepository(database),
		States:       NewStateRepository(database),
	}
}
