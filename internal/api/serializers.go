package api

import (
	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
	"github.com/gofiber/fiber/v2"
)

const dateOnlyLayout = "2006-01-02"

func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"is_admin":     user.IsAdmin,
		"is_disabled":  user.IsDisabled,
		"created_at":   user.CreatedAt,
	}
}

func temperatureResponse(reading *models.Temperature) fiber.Map {
	return fiber.Map{
		"id":          reading.ID,
		"user_id":     reading.UserID,
		"temperature": reading.Temperature,
		"timestamp":   reading.Timestamp,
	}
}

func temperatureListResponse(readings []models.Temperature) fiber.Map {
	events := make([]fiber.Map, 0, len(readings))
	for index := range readings {
		events = append(events, temperatureResponse(&readings[index]))
	}
	return fiber.Map{"events": events, "count": len(events)}
}

func periodResponse(period *models.Period) fiber.Map {
	response := fiber.Map{
		"id":            period.ID,
		"user_id":       period.UserID,
		"start_date":    period.StartDate.Format(dateOnlyLayout),
		"end_date":      nil,
		"duration":      period.Duration,
		"luteal_length": period.LutealLength,
	}
	if period.EndDate != nil {
		response["end_date"] = period.EndDate.Format(dateOnlyLayout)
	}
	return response
}

func symptomResponse(event *models.SymptomEvent) fiber.Map {
	return fiber.Map{
		"id":             event.ID,
		"user_id":        event.UserID,
		"date":           event.Date.Format(dateOnlyLayout),
		"flow_intensity": event.FlowIntensity,
		"symptoms":       event.Symptoms,
		"mood":           event.Mood,
		"discharge":      event.Discharge,
		"sex":            event.Sex,
		"ovulation_test": event.OvulationTest,
	}
}

func symptomListResponse(events []models.SymptomEvent) fiber.Map {
	responses := make([]fiber.Map, 0, len(events))
	for index := range events {
		responses = append(responses, symptomResponse(&events[index]))
	}
	return fiber.Map{"events": responses, "count": len(responses)}
}

func predictionResponse(prediction *engine.Prediction) fiber.Map {
	return fiber.Map{
		"start_date": prediction.StartDate.Format(dateOnlyLayout),
		"end_date":   prediction.EndDate.Format(dateOnlyLayout),
		"confidence": prediction.Confidence,
	}
}

func temperatureStateResponse(state *models.TemperatureState) fiber.Map {
	return fiber.Map{
		"phase":          state.Phase,
		"baseline":       state.Baseline,
		"last_evaluated": state.LastEvaluated,
	}
}

func cycleStateResponse(state *models.CycleState) fiber.Map {
	response := fiber.Map{
		"state":             state.State,
		"avg_cycle_length":  state.AvgCycleLength,
		"avg_period_length": state.AvgPeriodLength,
		"last_period_start": nil,
		"last_evaluated":    state.LastEvaluated,
	}
	if state.LastPeriodStart != nil {
		response["last_period_start"] = state.LastPeriodStart.Format(dateOnlyLayout)
	}
	return response
}
