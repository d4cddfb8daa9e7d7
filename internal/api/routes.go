package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Static("/uploads", handler.uploadDir)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	plants := api.Group("/plants", handler.AuthRequired)
	plants.Get("", handler.ListPlants)
	plants.Post("", handler.CreatePlant)
	plants.Get("/:id", handler.GetPlant)
	plants.Put("/:id", handler.UpdatePlant)
	plants.Delete("/:id", handler.DeletePlant)

	reminders := api.Group("/reminders", handler.AuthRequired)
	reminders.Get("", handler.ListReminders)
	reminders.Post("", handler.CreateReminder)
	reminders.Put("/:id", handler.UpdateReminder)
	reminders.Delete("/:id", handler.DeleteReminder)

	api.Post("/upload", handler.AuthRequired, handler.UploadImage)
	api.Get("/weather", handler.GetWeather)
	api.Get("/caretips/random", handler.GetCareTip)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
