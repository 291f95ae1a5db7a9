package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().In(handler.location).Format(time.RFC3339),
	})
}

func (handler *Handler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"app_name": appName,
		"version":  appVersion,
	})
}
