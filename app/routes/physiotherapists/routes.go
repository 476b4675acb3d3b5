package physiotherapists

import (
	"github.com/carlosmourajunior/FisioPilatesApp/app/config"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupPhysiotherapistsRoutes sets up the physiotherapists routes. The
// whole area is staff-only.
func SetupPhysiotherapistsRoutes(app *fiber.App) {
	api := app.Group("/api/physiotherapists")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.StaffMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetPhysiotherapistsAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetPhysiotherapistAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreatePhysiotherapistAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdatePhysiotherapistAPI(c, config.GetDB())
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeletePhysiotherapistAPI(c, config.GetDB())
	})
}
