package payments

import (
	"github.com/carlosmourajunior/FisioPilatesApp/app/config"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentsRoutes sets up the payment ledger, reconciliation and
// commission routes.
func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/summary", func(c *fiber.Ctx) error {
		return MonthlySummaryAPI(c, config.GetDB())
	})

	api.Get("/dashboard_summary", func(c *fiber.Ctx) error {
		return DashboardSummaryAPI(c, config.GetDB())
	})

	commission := api.Group("/commission")

	commission.Get("/due/:physiotherapistId", func(c *fiber.Ctx) error {
		return CommissionDueAPI(c, config.GetDB())
	})

	commission.Get("/total_commission_due", func(c *fiber.Ctx) error {
		return TotalCommissionDueAPI(c, config.GetDB())
	})

	commission.Get("/", func(c *fiber.Ctx) error {
		return GetCommissionPaymentsAPI(c, config.GetDB())
	})

	commission.Post("/", auth.StaffMiddleware, func(c *fiber.Ctx) error {
		return CreateCommissionPaymentAPI(c, config.GetDB())
	})

	commission.Get("/:id", func(c *fiber.Ctx) error {
		return GetCommissionPaymentAPI(c, config.GetDB())
	})

	commission.Post("/:id/approve", auth.StaffMiddleware, func(c *fiber.Ctx) error {
		return ApproveCommissionPaymentAPI(c, config.GetDB())
	})

	commission.Delete("/:id", auth.StaffMiddleware, func(c *fiber.Ctx) error {
		return DeleteCommissionPaymentAPI(c, config.GetDB())
	})

	api.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreatePaymentAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetPaymentAPI(c, config.GetDB())
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		return UpdatePaymentAPI(c, config.GetDB())
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeletePaymentAPI(c, config.GetDB())
	})
}
