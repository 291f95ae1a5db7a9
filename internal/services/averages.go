package services

import (
	"time"

	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
)

// TemperatureAverage pairs a reading with the running exponentially weighted
// average up to and including that reading.
type TemperatureAverage struct {
	Timestamp          time.Time `json:"timestamp"`
	Temperature        float64   `json:"temperature"`
	AverageTemperature float64   `json:"average_temperature"`
}

// BuildTemperatureAverages expects readings ordered by timestamp ascending,
// which is how the repository returns them.
func BuildTemperatureAverages(cfg engine.Config, readings []models.Temperature) []TemperatureAverage {
	if len(readings) == 0 {
		return []TemperatureAverage{}
	}

	values := make([]float64, len(readings))
	for i, reading := range readings {
		values[i] = reading.Temperature
	}
	averaged := engine.ExponentialAverage(values, cfg.SmoothingSpanDays)

	rows := make([]TemperatureAverage, len(readings))
	for i, reading := range readings {
		rows[i] = TemperatureAverage{
			Timestamp:          reading.Timestamp,
			Temperature:        reading.Temperature,
			AverageTemperature: averaged[i],
		}
	}
	return rows
}
