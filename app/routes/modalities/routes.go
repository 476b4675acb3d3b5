package modalities

import (
	"github.com/carlosmourajunior/FisioPilatesApp/app/config"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupModalitiesRoutes sets up the modalities routes.
func SetupModalitiesRoutes(app *fiber.App) {
	api := app.Group("/api/modalities")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetModalitiesAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetModalityAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateModalityAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateModalityAPI(c, config.GetDB())
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteModalityAPI(c, config.GetDB())
	})
}
