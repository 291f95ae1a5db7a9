package engine

import (
	"sort"
	"time"
)

type Period struct {
	StartDate    time.Time
	EndDate      *time.Time
	LutealLength *int
}

type CycleStatus string

const (
	CycleLearning CycleStatus = "learning"
	CycleStable   CycleStatus = "stable"
	CycleUnstable CycleStatus = "unstable"
)

// CycleState is the per-user cycle snapshot, replaced wholesale on every
// evaluation.
type CycleState struct {
	State           CycleStatus
	AvgCycleLength  *int
	AvgPeriodLength *int
	LastPeriodStart *time.Time
	LastEvaluated   time.Time
}

// CycleLengths returns day distances between consecutive period starts,
// aligned with the periods sorted by start date. The first entry is nil:
// there is no preceding cycle.
func CycleLengths(periods []Period) []*int {
	sorted := sortPeriods(periods)
	lengths := make([]*int, len(sorted))
	for i := 1; i < len(sorted); i++ {
		days := daysBetween(dateOnly(sorted[i-1].StartDate), dateOnly(sorted[i].StartDate))
		lengths[i] = &days
	}
	return lengths
}

// PeriodLengths returns bleed durations in days, nil where the end date is
// missing.
func PeriodLengths(periods []Period) []*int {
	sorted := sortPeriods(periods)
	lengths := make([]*int, len(sorted))
	for i, period := range sorted {
		if period.EndDate == nil {
			continue
		}
		days := daysBetween(dateOnly(period.StartDate), dateOnly(*period.EndDate))
		lengths[i] = &days
	}
	return lengths
}

// ClassifyCycleLengths marks each cycle length valid or not. Lengths outside
// the plausible range are always invalid. Once at least 3 of the most recent
// CycleEWMSpan lengths exist, their plain mean times LongCycleMultiplier caps
// every length in the history. Revalidation happens on every call, so an
// outlier can become valid again once later cycles pull the mean up.
func ClassifyCycleLengths(cfg Config, cycleLengths []*int) []bool {
	valid := make([]bool, len(cycleLengths))
	for i, length := range cycleLengths {
		if length == nil {
			continue
		}
		valid[i] = *length >= cfg.MinPlausibleCycleDays && *length <= cfg.MaxPlausibleCycleDays
	}

	recent := presentLengths(cycleLengths)
	if len(recent) > cfg.CycleEWMSpan {
		recent = recent[len(recent)-cfg.CycleEWMSpan:]
	}
	if len(recent) < 3 {
		return valid
	}

	mean := 0.0
	for _, length := range recent {
		mean += float64(length)
	}
	mean /= float64(len(recent))
	maxAllowed := mean * cfg.LongCycleMultiplier

	for i, length := range cycleLengths {
		if length != nil && float64(*length) > maxAllowed {
			valid[i] = false
		}
	}
	return valid
}

// EvaluateCycleState classifies cycle regularity from the period history.
// Verdicts require more than MinCyclesForStable periods; until then the
// state stays LEARNING and any previously computed averages are carried
// over untouched.
func EvaluateCycleState(cfg Config, periods []Period, previous *CycleState, now time.Time) CycleState {
	state := CycleState{State: CycleLearning, LastEvaluated: now}
	if previous != nil {
		state.AvgCycleLength = copyInt(previous.AvgCycleLength)
		state.AvgPeriodLength = copyInt(previous.AvgPeriodLength)
		state.LastPeriodStart = copyTime(previous.LastPeriodStart)
	}

	sorted := sortPeriods(periods)
	if len(sorted) > 0 {
		lastStart := dateOnly(sorted[len(sorted)-1].StartDate)
		state.LastPeriodStart = &lastStart
	}
	if len(sorted) <= cfg.MinCyclesForStable {
		return state
	}

	cycleLengths := CycleLengths(sorted)
	validMask := ClassifyCycleLengths(cfg, cycleLengths)
	state.AvgCycleLength = averageLengths(maskedLengths(cycleLengths, validMask), cfg.CycleEWMSpan)
	state.AvgPeriodLength = averageLengths(presentLengths(PeriodLengths(sorted)), cfg.CycleEWMSpan)

	switch {
	case state.AvgCycleLength == nil:
		state.State = CycleLearning
	case allTrue(tailBools(validMask, cfg.MinCyclesForStable)):
		state.State = CycleStable
	default:
		state.State = CycleUnstable
	}
	return state
}

func averageLengths(lengths []int, span int) *int {
	if len(lengths) == 0 {
		return nil
	}
	values := make([]float64, len(lengths))
	for i, length := range lengths {
		values[i] = float64(length)
	}
	averaged := ExponentialAverage(values, span)
	rounded := roundedInt(averaged[len(averaged)-1])
	return &rounded
}

func sortPeriods(periods []Period) []Period {
	sorted := make([]Period, 0, len(periods))
	sorted = append(sorted, periods...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}

func presentLengths(lengths []*int) []int {
	present := make([]int, 0, len(lengths))
	for _, length := range lengths {
		if length != nil {
			present = append(present, *length)
		}
	}
	return present
}

func maskedLengths(lengths []*int, mask []bool) []int {
	masked := make([]int, 0, len(lengths))
	for i, length := range lengths {
		if mask[i] && length != nil {
			masked = append(masked, *length)
		}
	}
	return masked
}

func tailBools(values []bool, n int) []bool {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func allTrue(values []bool) bool {
	for _, value := range values {
		if !value {
			return false
		}
	}
	return true
}

func copyInt(value *int) *int {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func copyTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
