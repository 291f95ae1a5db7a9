package engine

import "time"

type Phase string

const (
	PhaseLearning Phase = "learning"
	PhaseLow      Phase = "low"
	PhaseElevated Phase = "elevated"
	PhaseUnknown  Phase = "unknown"
)

// TemperatureState is the per-user temperature phase snapshot. Every
// evaluation produces a complete replacement value; persisting it is the
// caller's concern.
type TemperatureState struct {
	Phase         Phase
	Baseline      *float64
	LastEvaluated time.Time
}

// EvaluateTemperatureState classifies the user's current temperature phase
// from their observation history. The decision is recomputed from scratch on
// every call; previous only contributes the carried-over baseline when the
// history is too sparse to establish a fresh one.
func EvaluateTemperatureState(cfg Config, observations []Observation, previous *TemperatureState, now time.Time) TemperatureState {
	state := TemperatureState{Phase: PhaseLearning, LastEvaluated: now}
	if previous != nil && previous.Baseline != nil {
		baseline := *previous.Baseline
		state.Baseline = &baseline
	}

	series := BuildDailySeries(observations)
	if len(series) == 0 {
		return state
	}

	if series.HasLongGap(cfg.MaxMissingDays) {
		state.Phase = PhaseUnknown
		return state
	}

	smoothed := ExponentialAverage(series.Values(), cfg.SmoothingSpanDays)
	if len(smoothed) < cfg.MinPointsForBaseline {
		return state
	}

	baselineSeries := ExponentialAverage(series.Values(), cfg.BaselineSpanDays)
	baselineValue := baselineSeries[len(baselineSeries)-1]
	state.Baseline = &baselineValue

	if sustainedElevation(cfg, smoothed, baselineValue) {
		state.Phase = PhaseElevated
	} else {
		state.Phase = PhaseLow
	}
	return state
}

func sustainedElevation(cfg Config, smoothed []float64, baseline float64) bool {
	if len(smoothed) < cfg.ElevationDaysRequired {
		return false
	}

	deltas := make([]float64, len(smoothed))
	for i, value := range smoothed {
		deltas[i] = value - baseline
	}

	threshold := cfg.ElevationMinDelta
	if deviation := sampleStdDev(deltas); deviation > threshold {
		threshold = deviation
	}

	for _, delta := range deltas[len(deltas)-cfg.ElevationDaysRequired:] {
		if delta <= threshold {
			return false
		}
	}
	return true
}
