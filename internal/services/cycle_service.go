package services

import (
	"fmt"

	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
)

// predictionPeriodWindow bounds how much period history feeds a prediction.
const predictionPeriodWindow = 6

type CycleStateReader interface {
	FindTemperatureState(userID string) (models.TemperatureState, bool, error)
	FindCycleState(userID string) (models.CycleState, bool, error)
}

type CyclePeriodReader interface {
	ListRecentByUser(userID string, limit int) ([]models.Period, error)
}

type CycleService struct {
	states  CycleStateReader
	periods CyclePeriodReader
	cfg     engine.Config
}

func NewCycleService(states CycleStateReader, periods CyclePeriodReader, cfg engine.Config) *CycleService {
	return &CycleService{
		states:  states,
		periods: periods,
		cfg:     cfg,
	}
}

// CycleSnapshot bundles the per-user derived state rows. Either pointer is
// nil when the corresponding recompute has never run for the user.
type CycleSnapshot struct {
	TemperatureState *models.TemperatureState
	CycleState       *models.CycleState
}

func (service *CycleService) Snapshot(userID string) (CycleSnapshot, error) {
	var snapshot CycleSnapshot

	temperatureState, found, err := service.states.FindTemperatureState(userID)
	if err != nil {
		return CycleSnapshot{}, fmt.Errorf("load temperature state: %w", err)
	}
	if found {
		snapshot.TemperatureState = &temperatureState
	}

	cycleState, found, err := service.states.FindCycleState(userID)
	if err != nil {
		return CycleSnapshot{}, fmt.Errorf("load cycle state: %w", err)
	}
	if found {
		snapshot.CycleState = &cycleState
	}

	return snapshot, nil
}

// PredictNext estimates the user's next period. It returns nil without error
// when no prediction can be made, mirroring the engine's contract.
func (service *CycleService) PredictNext(userID string) (*engine.Prediction, error) {
	row, found, err := service.states.FindCycleState(userID)
	if err != nil {
		return nil, fmt.Errorf("load cycle state: %w", err)
	}

	state := engine.CycleState{State: engine.CycleLearning}
	if found {
		state = engine.CycleState{
			State:           engine.CycleStatus(row.State),
			AvgCycleLength:  row.AvgCycleLength,
			AvgPeriodLength: row.AvgPeriodLength,
			LastPeriodStart: row.LastPeriodStart,
			LastEvaluated:   row.LastEvaluated,
		}
	}

	recent, err := service.periods.ListRecentByUser(userID, predictionPeriodWindow)
	if err != nil {
		return nil, fmt.Errorf("load recent periods: %w", err)
	}

	return engine.PredictNextPeriod(service.cfg, state, enginePeriods(recent)), nil
}
