package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/basaltlabs/basalt/internal/db"
	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
	"github.com/basaltlabs/basalt/internal/queue"
)

// RecomputeService runs engine evaluations off the request path and persists
// the replacement state rows. Jobs for the same user are serialized through a
// per-user lock; across users they run freely. Last writer wins.
type RecomputeService struct {
	repos    *db.Repositories
	cfg      engine.Config
	location *time.Location

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRecomputeService(repos *db.Repositories, cfg engine.Config, location *time.Location) *RecomputeService {
	if location == nil {
		location = time.UTC
	}
	return &RecomputeService{
		repos:    repos,
		cfg:      cfg,
		location: location,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (service *RecomputeService) Handle(_ context.Context, job queue.Job) {
	lock := service.userLock(job.UserID)
	lock.Lock()
	defer lock.Unlock()

	var err error
	switch job.Kind {
	case queue.KindPhase:
		err = service.recomputePhase(job.UserID)
	case queue.KindCycle:
		err = service.recomputeCycle(job.UserID)
	case queue.KindLuteal:
		err = service.recomputeLuteal(job.UserID, job.PeriodID)
	default:
		log.Printf("recompute: unknown job kind %q", job.Kind)
		return
	}
	if err != nil {
		log.Printf("recompute: %s job for user %s failed: %v", job.Kind, job.UserID, err)
	}
}

func (service *RecomputeService) userLock(userID string) *sync.Mutex {
	service.mu.Lock()
	defer service.mu.Unlock()

	lock, ok := service.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		service.locks[userID] = lock
	}
	return lock
}

func (service *RecomputeService) recomputePhase(userID string) error {
	readings, err := service.repos.Temperatures.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load temperatures: %w", err)
	}

	previous, err := service.previousTemperatureState(userID)
	if err != nil {
		return err
	}

	state := engine.EvaluateTemperatureState(service.cfg, service.observations(readings), previous, time.Now().In(service.location))
	if err := service.repos.States.ReplaceTemperatureState(&models.TemperatureState{
		UserID:        userID,
		Phase:         string(state.Phase),
		Baseline:      state.Baseline,
		LastEvaluated: state.LastEvaluated,
	}); err != nil {
		return fmt.Errorf("store temperature state: %w", err)
	}
	return nil
}

func (service *RecomputeService) recomputeCycle(userID string) error {
	periods, err := service.repos.Periods.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load periods: %w", err)
	}

	previous, err := service.previousCycleState(userID)
	if err != nil {
		return err
	}

	state := engine.EvaluateCycleState(service.cfg, enginePeriods(periods), previous, time.Now().In(service.location))
	if err := service.repos.States.ReplaceCycleState(&models.CycleState{
		UserID:          userID,
		State:           string(state.State),
		AvgCycleLength:  state.AvgCycleLength,
		AvgPeriodLength: state.AvgPeriodLength,
		LastPeriodStart: state.LastPeriodStart,
		LastEvaluated:   state.LastEvaluated,
	}); err != nil {
		return fmt.Errorf("store cycle state: %w", err)
	}
	return nil
}

func (service *RecomputeService) recomputeLuteal(userID string, periodID uint) error {
	period, err := service.repos.Periods.FindByIDForUser(periodID, userID)
	if err != nil {
		return fmt.Errorf("load period: %w", err)
	}

	readings, err := service.repos.Temperatures.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load temperatures: %w", err)
	}

	elevatedStart := engine.DetectElevatedPhaseStart(service.cfg, service.observations(readings), engine.Period{StartDate: period.StartDate})
	if elevatedStart == nil {
		return nil
	}

	length := engine.LutealLength(*elevatedStart, period.StartDate)
	if !engine.ValidLutealLength(service.cfg, length) {
		return nil
	}

	period.LutealLength = &length
	if err := service.repos.Periods.Save(&period); err != nil {
		return fmt.Errorf("store luteal length: %w", err)
	}
	return nil
}

func (service *RecomputeService) previousTemperatureState(userID string) (*engine.TemperatureState, error) {
	row, found, err := service.repos.States.FindTemperatureState(userID)
	if err != nil {
		return nil, fmt.Errorf("load temperature state: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &engine.TemperatureState{
		Phase:         engine.Phase(row.Phase),
		Baseline:      row.Baseline,
		LastEvaluated: row.LastEvaluated,
	}, nil
}

func (service *RecomputeService) previousCycleState(userID string) (*engine.CycleState, error) {
	row, found, err := service.repos.States.FindCycleState(userID)
	if err != nil {
		return nil, fmt.Errorf("load cycle state: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &engine.CycleState{
		State:           engine.CycleStatus(row.State),
		AvgCycleLength:  row.AvgCycleLength,
		AvgPeriodLength: row.AvgPeriodLength,
		LastPeriodStart: row.LastPeriodStart,
		LastEvaluated:   row.LastEvaluated,
	}, nil
}

func (service *RecomputeService) observations(readings []models.Temperature) []engine.Observation {
	observations := make([]engine.Observation, 0, len(readings))
	for _, reading := range readings {
		observations = append(observations, engine.Observation{
			Timestamp: reading.Timestamp.In(service.location),
			Value:     reading.Temperature,
		})
	}
	return observations
}

func enginePeriods(periods []models.Period) []engine.Period {
	converted := make([]engine.Period, 0, len(periods))
	for _, period := range periods {
		converted = append(converted, engine.Period{
			StartDate:    period.StartDate,
			EndDate:      period.EndDate,
			LutealLength: period.LutealLength,
		})
	}
	return converted
}
