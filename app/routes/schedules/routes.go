package schedules

import (
	"github.com/carlosmourajunior/FisioPilatesApp/app/config"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupSchedulesRoutes sets up the weekly schedule routes.
func SetupSchedulesRoutes(app *fiber.App) {
	api := app.Group("/api/schedules")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetSchedulesAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateScheduleAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateScheduleAPI(c, config.GetDB())
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteScheduleAPI(c, config.GetDB())
	})
}
