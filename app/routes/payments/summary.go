package payments

import (
	"database/sql"
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/carlosmourajunior/FisioPilatesApp/app/services"
	"github.com/gofiber/fiber/v2"
)

// scopeFor derives the reconciliation scope from the actor. Staff may
// narrow to one physiotherapist through the query parameter; everyone else
// is pinned to their own roster.
func scopeFor(c *fiber.Ctx, actor auth.Actor) (services.Scope, error) {
	if actor.IsStaff {
		return services.StaffScope(c.Query("physiotherapist")), nil
	}
	if actor.PhysiotherapistID == nil {
		return services.Scope{}, fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
	}
	return services.PhysiotherapistScope(*actor.PhysiotherapistID), nil
}

// MonthlySummaryAPI reconciles the monthly roster against the ledger for
// the month named by the month_year query parameter (YYYY-MM).
func MonthlySummaryAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	monthYear := c.Query("month_year")
	if monthYear == "" {
		return fiber.NewError(fiber.StatusBadRequest, "month_year query parameter is required")
	}
	target, err := services.ParseMonth(monthYear)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month_year must be in YYYY-MM format")
	}

	scope, err := scopeFor(c, actor)
	if err != nil {
		return err
	}

	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment data")
	}

	summary := services.Summarize(snap, scope, target, time.Now())

	return c.JSON(fiber.Map{
		"success": true,
		"data":    summary,
	})
}

// DashboardSummaryAPI returns the rolling dashboard: a five month trend
// around the current month plus, for staff, the per-physiotherapist
// breakdown and current month totals.
func DashboardSummaryAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	scope, err := scopeFor(c, actor)
	if err != nil {
		return err
	}

	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment data")
	}

	dashboard := services.BuildDashboard(snap, scope, time.Now())

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dashboard,
	})
}
