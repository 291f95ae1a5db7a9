package api

import (
	"time"

	"github.com/basaltlabs/basalt/internal/models"
	"github.com/basaltlabs/basalt/internal/queue"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreatePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input periodInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	startDate, err := time.ParseInLocation(dateOnlyLayout, input.StartDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "start_date must be formatted as 2006-01-02")
	}

	period := models.Period{
		UserID:    user.ID,
		StartDate: startDate,
	}
	if input.EndDate != nil {
		endDate, err := time.ParseInLocation(dateOnlyLayout, *input.EndDate, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "end_date must be formatted as 2006-01-02")
		}
		if endDate.Before(startDate) {
			return apiError(c, fiber.StatusBadRequest, "end_date must not be before start_date")
		}
		period.EndDate = &endDate
	}
	applyPeriodDuration(&period)

	if err := handler.repositories.Periods.Create(&period); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	handler.enqueueJob(queue.Job{Kind: queue.KindCycle, UserID: user.ID})
	handler.maybeEnqueueLuteal(user.ID, period.ID)
	return c.Status(fiber.StatusCreated).JSON(periodResponse(&period))
}

func (handler *Handler) MyPeriods(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periods, err := handler.repositories.Periods.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	responses := make([]fiber.Map, 0, len(periods))
	for index := range periods {
		responses = append(responses, periodResponse(&periods[index]))
	}
	return c.JSON(responses)
}

func (handler *Handler) UpdatePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periodID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}
	period, err := handler.repositories.Periods.FindByIDForUser(periodID, user.ID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "period not found")
	}

	var input periodPatchInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	startChanged := false
	if input.StartDate != nil {
		startDate, err := time.ParseInLocation(dateOnlyLayout, *input.StartDate, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "start_date must be formatted as 2006-01-02")
		}
		startChanged = !startDate.Equal(period.StartDate)
		period.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, err := time.ParseInLocation(dateOnlyLayout, *input.EndDate, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "end_date must be formatted as 2006-01-02")
		}
		period.EndDate = &endDate
	}
	if period.EndDate != nil && period.EndDate.Before(period.StartDate) {
		return apiError(c, fiber.StatusBadRequest, "end_date must not be before start_date")
	}
	applyPeriodDuration(&period)

	// A moved start invalidates the stored luteal length until the scan
	// anchored to the new date lands.
	if startChanged {
		period.LutealLength = nil
	}

	if err := handler.repositories.Periods.Save(&period); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	handler.enqueueJob(queue.Job{Kind: queue.KindCycle, UserID: user.ID})
	if startChanged {
		handler.maybeEnqueueLuteal(user.ID, period.ID)
	}
	return c.JSON(periodResponse(&period))
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periodID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}
	if _, err := handler.repositories.Periods.FindByIDForUser(periodID, user.ID); err != nil {
		return apiError(c, fiber.StatusNotFound, "period not found")
	}

	if err := handler.repositories.Periods.DeleteByIDForUser(periodID, user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	handler.enqueueJob(queue.Job{Kind: queue.KindCycle, UserID: user.ID})
	return c.JSON(fiber.Map{"resource_type": "period", "resource_id": periodID})
}

func (handler *Handler) NextPeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	prediction, err := handler.cycleService.PredictNext(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	if prediction == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(predictionResponse(prediction))
}

// applyPeriodDuration keeps the stored duration in step with the dates.
// Open-ended periods carry no duration.
func applyPeriodDuration(period *models.Period) {
	if period.EndDate == nil {
		period.Duration = nil
		return
	}
	days := daysApart(period.StartDate, *period.EndDate)
	period.Duration = &days
}

// daysApart counts calendar days between two dates, immune to DST offsets
// in the configured location.
func daysApart(start time.Time, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours() / 24)
}
