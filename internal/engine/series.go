package engine

import (
	"sort"
	"time"
)

type Observation struct {
	Timestamp time.Time
	Value     float64
}

type DaySample struct {
	Day   time.Time
	Value float64
}

// DailySeries is an ordered day-to-mean-temperature series. Days without
// observations are absent, never zero-filled.
type DailySeries []DaySample

// BuildDailySeries groups observations by calendar day, averaging duplicate
// same-day readings. An empty input yields an empty series.
func BuildDailySeries(observations []Observation) DailySeries {
	if len(observations) == 0 {
		return nil
	}

	sorted := make([]Observation, 0, len(observations))
	sorted = append(sorted, observations...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	series := make(DailySeries, 0, len(sorted))
	currentDay := dateOnly(sorted[0].Timestamp)
	sum := 0.0
	count := 0

	for _, observation := range sorted {
		day := dateOnly(observation.Timestamp)
		if !day.Equal(currentDay) {
			series = append(series, DaySample{Day: currentDay, Value: sum / float64(count)})
			currentDay = day
			sum = 0
			count = 0
		}
		sum += observation.Value
		count++
	}
	series = append(series, DaySample{Day: currentDay, Value: sum / float64(count)})

	return series
}

func (series DailySeries) Values() []float64 {
	values := make([]float64, 0, len(series))
	for _, sample := range series {
		values = append(values, sample.Value)
	}
	return values
}

// MaxGapDays returns the largest calendar-day distance between consecutive
// present entries, or zero when fewer than two entries exist.
func (series DailySeries) MaxGapDays() int {
	if len(series) < 2 {
		return 0
	}

	maxGap := 0
	for i := 1; i < len(series); i++ {
		gap := daysBetween(series[i-1].Day, series[i].Day)
		if gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap
}

func (series DailySeries) HasLongGap(maxMissingDays int) bool {
	if len(series) < 2 {
		return false
	}
	return series.MaxGapDays() > maxMissingDays
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
