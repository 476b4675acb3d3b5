package main

import (
	"log"

	"github.com/carlosmourajunior/FisioPilatesApp/app/config"
	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/modalities"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/payments"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/physiotherapists"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/schedules"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/students"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// customErrorHandler renders every error as the API's JSON envelope.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))

	// Routes
	auth.SetupAuthRoutes(app)
	physiotherapists.SetupPhysiotherapistsRoutes(app)
	modalities.SetupModalitiesRoutes(app)
	students.SetupStudentsRoutes(app)
	schedules.SetupSchedulesRoutes(app)
	payments.SetupPaymentsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	// Start server
	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
