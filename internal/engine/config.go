package engine

// Config carries every threshold the inference entry points need. It is
// passed explicitly into each call; the engine keeps no ambient settings.
type Config struct {
	SmoothingSpanDays     int
	BaselineSpanDays      int
	MinPointsForBaseline  int
	ElevationMinDelta     float64
	ElevationDaysRequired int
	MaxMissingDays        int
	CycleEWMSpan          int
	MinCyclesForStable    int
	MinPlausibleCycleDays int
	MaxPlausibleCycleDays int
	LongCycleMultiplier   float64
	MinLutealDays         int
	MaxLutealDays         int
	LutealLookbackDays    int
}

func DefaultConfig() Config {
	return Config{
		SmoothingSpanDays:     3,
		BaselineSpanDays:      30,
		MinPointsForBaseline:  10,
		ElevationMinDelta:     0.3,
		ElevationDaysRequired: 3,
		MaxMissingDays:        3,
		CycleEWMSpan:          6,
		MinCyclesForStable:    3,
		MinPlausibleCycleDays: 21,
		MaxPlausibleCycleDays: 90,
		LongCycleMultiplier:   1.5,
		MinLutealDays:         10,
		MaxLutealDays:         16,
		LutealLookbackDays:    20,
	}
}
