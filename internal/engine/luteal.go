package engine

import "time"

// DetectElevatedPhaseStart returns the first day of a sustained temperature
// elevation inside the lookback window before the period's start, or nil if
// no qualifying run exists. The baseline is computed over the full supplied
// history so it reflects longer-term context, then aligned to the window. A
// day counts as elevated when its raw daily mean sits at least
// ElevationMinDelta above the baseline; the run counter resets on
// non-elevated days and on days without any reading.
func DetectElevatedPhaseStart(cfg Config, observations []Observation, period Period) *time.Time {
	series := BuildDailySeries(observations)
	if len(series) == 0 {
		return nil
	}

	periodStart := dateOnly(period.StartDate)
	windowStart := periodStart.AddDate(0, 0, -cfg.LutealLookbackDays)

	baselineSeries := ExponentialAverage(series.Values(), cfg.BaselineSpanDays)
	valueByDay := make(map[string]float64, len(series))
	baselineByDay := make(map[string]float64, len(series))
	for i, sample := range series {
		key := dayKey(sample.Day)
		valueByDay[key] = sample.Value
		baselineByDay[key] = baselineSeries[i]
	}

	scanStart := windowStart
	if first := series[0].Day; first.After(scanStart) {
		scanStart = first
	}
	scanEnd := periodStart
	if afterLast := series[len(series)-1].Day.AddDate(0, 0, 1); afterLast.Before(scanEnd) {
		scanEnd = afterLast
	}

	consecutive := 0
	for day := scanStart; day.Before(scanEnd); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		value, present := valueByDay[key]
		if !present || value < baselineByDay[key]+cfg.ElevationMinDelta {
			consecutive = 0
			continue
		}
		consecutive++
		if consecutive == cfg.ElevationDaysRequired {
			start := day.AddDate(0, 0, -(cfg.ElevationDaysRequired - 1))
			return &start
		}
	}
	return nil
}

// LutealLength measures from the day before the elevated-phase start through
// the period start, in days.
func LutealLength(elevatedStart, periodStart time.Time) int {
	lutealStart := dateOnly(elevatedStart).AddDate(0, 0, -1)
	return daysBetween(lutealStart, dateOnly(periodStart))
}

func ValidLutealLength(cfg Config, length int) bool {
	return length >= cfg.MinLutealDays && length <= cfg.MaxLutealDays
}

func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}
