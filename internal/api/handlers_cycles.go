package api

import (
	"github.com/gofiber/fiber/v2"
)

// MyCycle reports the stored inference snapshot. Null sections mean the
// matching recompute has never run for this user.
func (handler *Handler) MyCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	snapshot, err := handler.cycleService.Snapshot(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	response := fiber.Map{"temperature": nil, "cycle": nil}
	if snapshot.TemperatureState != nil {
		response["temperature"] = temperatureStateResponse(snapshot.TemperatureState)
	}
	if snapshot.CycleState != nil {
		response["cycle"] = cycleStateResponse(snapshot.CycleState)
	}
	return c.JSON(response)
}
