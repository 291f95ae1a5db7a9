package api

import (
	"time"

	"github.com/basaltlabs/basalt/internal/models"
	"github.com/basaltlabs/basalt/internal/queue"
	"github.com/basaltlabs/basalt/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CreateTemperature stores a reading stamped with the server clock and
// schedules a phase recompute. Readings are append-only.
func (handler *Handler) CreateTemperature(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input temperatureInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	reading := models.Temperature{
		UserID:      user.ID,
		Temperature: input.Temperature,
		Timestamp:   time.Now().In(handler.location),
	}
	if err := handler.repositories.Temperatures.Create(&reading); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	handler.enqueueJob(queue.Job{Kind: queue.KindPhase, UserID: user.ID})
	return c.Status(fiber.StatusCreated).JSON(temperatureResponse(&reading))
}

func (handler *Handler) MyTemperatures(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDateRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, rangeErrorMessage(err))
	}

	readings, err := handler.repositories.Temperatures.ListByUserRange(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(temperatureListResponse(readings))
}

func (handler *Handler) MyTemperatureAverages(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDateRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, rangeErrorMessage(err))
	}

	readings, err := handler.repositories.Temperatures.ListByUserRange(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	averages := services.BuildTemperatureAverages(handler.engineConfig, readings)
	return c.JSON(fiber.Map{"events": averages, "count": len(averages)})
}

func (handler *Handler) ExportMyTemperatures(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDateRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, rangeErrorMessage(err))
	}

	rows, err := handler.exportService.TemperatureRows(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch readings")
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Columns())
	}
	return sendCSVAttachment(c, "temperature_readings.csv", services.TemperatureCSVHeaders, records)
}

func (handler *Handler) ListAllTemperatures(c *fiber.Ctx) error {
	readings, err := handler.repositories.Temperatures.ListAll()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(temperatureListResponse(readings))
}
