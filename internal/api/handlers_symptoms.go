package api

import (
	"strings"
	"time"

	"github.com/basaltlabs/basalt/internal/models"
	"github.com/basaltlabs/basalt/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateSymptomEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input symptomEventInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	date, err := time.ParseInLocation(dateOnlyLayout, input.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "date must be formatted as 2006-01-02")
	}

	event := models.SymptomEvent{
		UserID:        user.ID,
		Date:          date,
		FlowIntensity: normalizeFlow(input.FlowIntensity),
		Symptoms:      input.Symptoms,
		Mood:          input.Mood,
		Discharge:     input.Discharge,
		Sex:           input.Sex,
		OvulationTest: input.OvulationTest,
	}
	if err := handler.repositories.Symptoms.Create(&event); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.Status(fiber.StatusCreated).JSON(symptomResponse(&event))
}

func (handler *Handler) MySymptomEvents(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDateRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, rangeErrorMessage(err))
	}

	events, err := handler.repositories.Symptoms.ListByUserRange(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(symptomListResponse(events))
}

func (handler *Handler) GetSymptomEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	eventID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom event id")
	}
	event, err := handler.repositories.Symptoms.FindByIDForUser(eventID, user.ID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "symptom event not found")
	}
	return c.JSON(symptomResponse(&event))
}

func (handler *Handler) UpdateSymptomEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	eventID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom event id")
	}
	event, err := handler.repositories.Symptoms.FindByIDForUser(eventID, user.ID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "symptom event not found")
	}

	var input symptomEventPatchInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if input.Date != nil {
		date, err := time.ParseInLocation(dateOnlyLayout, *input.Date, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "date must be formatted as 2006-01-02")
		}
		event.Date = date
	}
	if input.FlowIntensity != nil {
		event.FlowIntensity = normalizeFlow(input.FlowIntensity)
	}
	if input.Symptoms != nil {
		event.Symptoms = input.Symptoms
	}
	if input.Mood != nil {
		event.Mood = input.Mood
	}
	if input.Discharge != nil {
		event.Discharge = input.Discharge
	}
	if input.Sex != nil {
		event.Sex = input.Sex
	}
	if input.OvulationTest != nil {
		event.OvulationTest = input.OvulationTest
	}

	if err := handler.repositories.Symptoms.Save(&event); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(symptomResponse(&event))
}

func (handler *Handler) DeleteSymptomEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	eventID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom event id")
	}
	if _, err := handler.repositories.Symptoms.FindByIDForUser(eventID, user.ID); err != nil {
		return apiError(c, fiber.StatusNotFound, "symptom event not found")
	}

	if err := handler.repositories.Symptoms.DeleteByIDForUser(eventID, user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"resource_type": "symptom", "resource_id": eventID})
}

func (handler *Handler) ExportMySymptomEvents(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDateRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, rangeErrorMessage(err))
	}

	rows, err := handler.exportService.SymptomRows(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch symptom events")
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Columns())
	}
	return sendCSVAttachment(c, "symptoms.csv", services.SymptomCSVHeaders, records)
}

func (handler *Handler) ListAllSymptomEvents(c *fiber.Ctx) error {
	events, err := handler.repositories.Symptoms.ListAll()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(symptomListResponse(events))
}

func normalizeFlow(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
