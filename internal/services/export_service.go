package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
)

const exportDateLayout = "2006-01-02"

var TemperatureCSVHeaders = []string{"timestamp", "temperature", "average_temperature"}

var SymptomCSVHeaders = []string{
	"date",
	"flow_intensity",
	"symptoms",
	"mood",
	"discharge",
	"sex",
	"ovulation_test",
}

type ExportTemperatureReader interface {
	ListByUserRange(userID string, from *time.Time, to *time.Time) ([]models.Temperature, error)
}

type ExportSymptomReader interface {
	ListByUserRange(userID string, from *time.Time, to *time.Time) ([]models.SymptomEvent, error)
}

type ExportService struct {
	temperatures ExportTemperatureReader
	symptoms     ExportSymptomReader
	cfg          engine.Config
}

func NewExportService(temperatures ExportTemperatureReader, symptoms ExportSymptomReader, cfg engine.Config) *ExportService {
	return &ExportService{
		temperatures: temperatures,
		symptoms:     symptoms,
		cfg:          cfg,
	}
}

type TemperatureCSVRow struct {
	Date               string
	Temperature        float64
	AverageTemperature float64
}

func (service *ExportService) TemperatureRows(userID string, from *time.Time, to *time.Time) ([]TemperatureCSVRow, error) {
	readings, err := service.temperatures.ListByUserRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	averages := BuildTemperatureAverages(service.cfg, readings)
	rows := make([]TemperatureCSVRow, 0, len(averages))
	for _, average := range averages {
		rows = append(rows, TemperatureCSVRow{
			Date:               average.Timestamp.Format(exportDateLayout),
			Temperature:        average.Temperature,
			AverageTemperature: average.AverageTemperature,
		})
	}
	return rows, nil
}

func (row TemperatureCSVRow) Columns() []string {
	return []string{
		row.Date,
		fmt.Sprintf("%g", row.Temperature),
		fmt.Sprintf("%.2f", row.AverageTemperature),
	}
}

type SymptomCSVRow struct {
	Date          string
	FlowIntensity string
	Symptoms      []string
	Mood          []string
	Discharge     []string
	Sex           []string
	OvulationTest *bool
}

func (service *ExportService) SymptomRows(userID string, from *time.Time, to *time.Time) ([]SymptomCSVRow, error) {
	events, err := service.symptoms.ListByUserRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]SymptomCSVRow, 0, len(events))
	for _, event := range events {
		rows = append(rows, SymptomCSVRow{
			Date:          event.Date.Format(exportDateLayout),
			FlowIntensity: csvOptional(event.FlowIntensity),
			Symptoms:      event.Symptoms,
			Mood:          event.Mood,
			Discharge:     event.Discharge,
			Sex:           event.Sex,
			OvulationTest: event.OvulationTest,
		})
	}
	return rows, nil
}

func (row SymptomCSVRow) Columns() []string {
	return []string{
		row.Date,
		row.FlowIntensity,
		strings.Join(row.Symptoms, ","),
		strings.Join(row.Mood, ","),
		strings.Join(row.Discharge, ","),
		strings.Join(row.Sex, ","),
		csvYesNo(row.OvulationTest),
	}
}

func csvOptional(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func csvYesNo(value *bool) string {
	if value == nil {
		return ""
	}
	if *value {
		return "Yes"
	}
	return "No"
}
