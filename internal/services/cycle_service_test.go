package services

import (
	"errors"
	"testing"
	"time"

	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
)

type stubCycleStateReader struct {
	temperatureState *models.TemperatureState
	cycleState       *models.CycleState
	err              error
}

func (stub *stubCycleStateReader) FindTemperatureState(string) (models.TemperatureState, bool, error) {
	if stub.err != nil {
		return models.TemperatureState{}, false, stub.err
	}
	if stub.temperatureState == nil {
		return models.TemperatureState{}, false, nil
	}
	return *stub.temperatureState, true, nil
}

func (stub *stubCycleStateReader) FindCycleState(string) (models.CycleState, bool, error) {
	if stub.err != nil {
		return models.CycleState{}, false, stub.err
	}
	if stub.cycleState == nil {
		return models.CycleState{}, false, nil
	}
	return *stub.cycleState, true, nil
}

type stubCyclePeriodReader struct {
	periods   []models.Period
	err       error
	lastLimit int
}

func (stub *stubCyclePeriodReader) ListRecentByUser(_ string, limit int) ([]models.Period, error) {
	stub.lastLimit = limit
	if stub.err != nil {
		return nil, stub.err
	}
	result := make([]models.Period, len(stub.periods))
	copy(result, stub.periods)
	return result, nil
}

func TestCycleSnapshotCarriesBothStates(t *testing.T) {
	baseline := 36.45
	states := &stubCycleStateReader{
		temperatureState: &models.TemperatureState{
			UserID:   "user-1",
			Phase:    string(engine.PhaseElevated),
			Baseline: &baseline,
		},
		cycleState: &models.CycleState{
			UserID:         "user-1",
			State:          string(engine.CycleStable),
			AvgCycleLength: intRef(28),
		},
	}
	service := NewCycleService(states, &stubCyclePeriodReader{}, engine.DefaultConfig())

	snapshot, err := service.Snapshot("user-1")
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	if snapshot.TemperatureState == nil || snapshot.TemperatureState.Phase != string(engine.PhaseElevated) {
		t.Fatalf("expected elevated temperature state, got %#v", snapshot.TemperatureState)
	}
	if snapshot.CycleState == nil || snapshot.CycleState.AvgCycleLength == nil || *snapshot.CycleState.AvgCycleLength != 28 {
		t.Fatalf("expected stable cycle state with average 28, got %#v", snapshot.CycleState)
	}
}

func TestCycleSnapshotEmptyBeforeFirstRecompute(t *testing.T) {
	service := NewCycleService(&stubCycleStateReader{}, &stubCyclePeriodReader{}, engine.DefaultConfig())

	snapshot, err := service.Snapshot("user-1")
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	if snapshot.TemperatureState != nil || snapshot.CycleState != nil {
		t.Fatalf("expected empty snapshot, got %#v", snapshot)
	}
}

func TestPredictNextUsesBoundedRecentHistory(t *testing.T) {
	states := &stubCycleStateReader{
		cycleState: &models.CycleState{
			UserID:          "user-1",
			State:           string(engine.CycleStable),
			AvgCycleLength:  intRef(28),
			AvgPeriodLength: intRef(5),
		},
	}
	periods := &stubCyclePeriodReader{
		periods: []models.Period{
			{UserID: "user-1", StartDate: mustParsePredictionDay(t, "2026-05-01")},
			{UserID: "user-1", StartDate: mustParsePredictionDay(t, "2026-04-03")},
		},
	}
	service := NewCycleService(states, periods, engine.DefaultConfig())

	prediction, err := service.PredictNext("user-1")
	if err != nil {
		t.Fatalf("PredictNext() unexpected error: %v", err)
	}
	if prediction == nil {
		t.Fatalf("expected a prediction")
	}
	if periods.lastLimit != predictionPeriodWindow {
		t.Fatalf("expected period window %d, got %d", predictionPeriodWindow, periods.lastLimit)
	}

	expectedStart := mustParsePredictionDay(t, "2026-05-29")
	if !prediction.StartDate.Equal(expectedStart) {
		t.Fatalf("expected start %v, got %v", expectedStart, prediction.StartDate)
	}
	if !prediction.EndDate.Equal(expectedStart.AddDate(0, 0, 5)) {
		t.Fatalf("expected five day window, got end %v", prediction.EndDate)
	}
	if prediction.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", prediction.Confidence)
	}
}

func TestPredictNextNilWithoutAnyHistory(t *testing.T) {
	service := NewCycleService(&stubCycleStateReader{}, &stubCyclePeriodReader{}, engine.DefaultConfig())

	prediction, err := service.PredictNext("user-1")
	if err != nil {
		t.Fatalf("PredictNext() unexpected error: %v", err)
	}
	if prediction != nil {
		t.Fatalf("expected nil prediction, got %#v", prediction)
	}
}

func TestPredictNextNilWhenCycleUnstable(t *testing.T) {
	states := &stubCycleStateReader{
		cycleState: &models.CycleState{
			UserID: "user-1",
			State:  string(engine.CycleUnstable),
		},
	}
	periods := &stubCyclePeriodReader{
		periods: []models.Period{
			{UserID: "user-1", StartDate: mustParsePredictionDay(t, "2026-05-01")},
		},
	}
	service := NewCycleService(states, periods, engine.DefaultConfig())

	prediction, err := service.PredictNext("user-1")
	if err != nil {
		t.Fatalf("PredictNext() unexpected error: %v", err)
	}
	if prediction != nil {
		t.Fatalf("expected nil prediction for unstable cycles, got %#v", prediction)
	}
}

func TestPredictNextPropagatesReaderErrors(t *testing.T) {
	service := NewCycleService(&stubCycleStateReader{err: errors.New("state load failed")}, &stubCyclePeriodReader{}, engine.DefaultConfig())
	if _, err := service.PredictNext("user-1"); err == nil {
		t.Fatalf("expected error when state reader fails")
	}
}

func mustParsePredictionDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func intRef(value int) *int {
	return &value
}
