package engine

import "time"

const (
	fallbackCycleDays = 28
	lutealAverageSpan = 3

	confidenceWithLuteal   = 0.8
	confidenceCycleAverage = 0.5
	confidenceFallback     = 0.2
)

// Prediction is a pure output; it is never persisted.
type Prediction struct {
	StartDate  time.Time
	EndDate    time.Time
	Confidence float64
}

// PredictNextPeriod estimates the next period start from the cycle state and
// history. It returns nil when there is no history at all or the cycle state
// is unstable. Confidence reflects which rung of the fallback ladder served:
// luteal-informed, plain cycle average, or the population-average 28 days.
func PredictNextPeriod(cfg Config, state CycleState, periods []Period) *Prediction {
	sorted := sortPeriods(periods)
	if len(sorted) == 0 {
		return nil
	}
	if state.State == CycleUnstable {
		return nil
	}

	lastStart := dateOnly(sorted[len(sorted)-1].StartDate)
	avgLuteal := averageLutealLength(sorted)

	var start time.Time
	var confidence float64
	switch {
	case avgLuteal != nil && state.AvgCycleLength != nil:
		start = lastStart.AddDate(0, 0, *state.AvgCycleLength-*avgLuteal)
		confidence = confidenceWithLuteal
	case state.AvgCycleLength != nil:
		start = lastStart.AddDate(0, 0, *state.AvgCycleLength)
		confidence = confidenceCycleAverage
	default:
		start = lastStart.AddDate(0, 0, fallbackCycleDays)
		confidence = confidenceFallback
	}

	periodDays := 0
	if state.AvgPeriodLength != nil {
		periodDays = *state.AvgPeriodLength
	}

	return &Prediction{
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, periodDays),
		Confidence: confidence,
	}
}

func averageLutealLength(periods []Period) *int {
	lengths := make([]int, 0, len(periods))
	for _, period := range periods {
		if period.LutealLength != nil {
			lengths = append(lengths, *period.LutealLength)
		}
	}
	if len(lengths) < 2 {
		return nil
	}
	return averageLengths(lengths, lutealAverageSpan)
}
