package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)

	api := app.Group("/api")
	api.Get("/info", handler.Info)

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh", handler.Refresh)
	auth.Post("/logout", handler.Logout)

	users := api.Group("/users")
	users.Get("/me", handler.AuthRequired, handler.Me)
	users.Patch("/me", handler.AuthRequired, handler.UpdateMe)
	users.Get("", handler.AuthRequired, handler.AdminOnly, handler.ListUsers)
	users.Post("", handler.AuthRequired, handler.AdminOnly, handler.CreateUser)
	users.Patch("/:id", handler.AuthRequired, handler.AdminOnly, handler.UpdateUser)
	users.Delete("/:id", handler.AuthRequired, handler.AdminOnly, handler.DeleteUser)

	temperatures := api.Group("/temperatures", handler.AuthRequired)
	temperatures.Post("", handler.CreateTemperature)
	temperatures.Get("", handler.AdminOnly, handler.ListAllTemperatures)
	temperatures.Get("/me", handler.MyTemperatures)
	temperatures.Get("/me/averages", handler.MyTemperatureAverages)
	temperatures.Get("/me/export", handler.ExportMyTemperatures)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Post("", handler.CreatePeriod)
	periods.Get("/me", handler.MyPeriods)
	periods.Get("/next", handler.NextPeriod)
	periods.Patch("/:id", handler.UpdatePeriod)
	periods.Delete("/:id", handler.DeletePeriod)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Post("", handler.CreateSymptomEvent)
	symptoms.Get("", handler.AdminOnly, handler.ListAllSymptomEvents)
	symptoms.Get("/me", handler.MySymptomEvents)
	symptoms.Get("/me/export", handler.ExportMySymptomEvents)
	symptoms.Get("/:id", handler.GetSymptomEvent)
	symptoms.Patch("/:id", handler.UpdateSymptomEvent)
	symptoms.Delete("/:id", handler.DeleteSymptomEvent)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("/me", handler.MyCycle)
}
