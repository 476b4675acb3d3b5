package payments

import (
	"database/sql"
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/carlosmourajunior/FisioPilatesApp/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CommissionPaymentRequest is the payload for registering a payout. The
// month names which commission period the payout covers; the payments it
// consumes are the ones still outside any payout for that month.
type CommissionPaymentRequest struct {
	PhysiotherapistID string           `json:"physiotherapist" validate:"required,uuid"`
	TransferDate      time.Time        `json:"transfer_date" validate:"required"`
	MonthYear         string           `json:"month_year" validate:"required"`
	AmountPaid        *decimal.Decimal `json:"amount_paid"`
	Description       string           `json:"description"`
}

// targetMonth reads the optional month_year query parameter, defaulting to
// the month of the reference instant.
func targetMonth(c *fiber.Ctx, now time.Time) (services.Month, error) {
	if v := c.Query("month_year"); v != "" {
		m, err := services.ParseMonth(v)
		if err != nil {
			return services.Month{}, fiber.NewError(fiber.StatusBadRequest, "month_year must be in YYYY-MM format")
		}
		return m, nil
	}
	return services.MonthOf(now), nil
}

// GetCommissionPaymentsAPI lists payouts. Physiotherapists only see their
// own; staff may filter by physiotherapist and status.
func GetCommissionPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	filter := database.CommissionFilter{}
	if !actor.IsStaff {
		if actor.PhysiotherapistID == nil {
			return fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
		}
		filter.PhysiotherapistID = actor.PhysiotherapistID
	} else if v := c.Query("physiotherapist"); v != "" {
		filter.PhysiotherapistID = &v
	}
	if v := c.Query("status"); v != "" {
		status := models.CommissionStatus(v)
		filter.Status = &status
	}

	payouts, err := database.GetCommissionPayments(db, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch commission payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payouts,
	})
}

// GetCommissionPaymentAPI returns one payout.
func GetCommissionPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	payout, err := database.GetCommissionPaymentByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Commission payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch commission payment")
	}
	if !actor.IsStaff {
		if actor.PhysiotherapistID == nil || payout.PhysiotherapistID != *actor.PhysiotherapistID {
			return fiber.NewError(fiber.StatusForbidden, "Commission payment belongs to another physiotherapist")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payout,
	})
}

// CreateCommissionPaymentAPI registers a payout awaiting approval. The
// payout consumes every payment of the covered month that is not yet in a
// payout; those payments stop counting towards commission due immediately.
func CreateCommissionPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CommissionPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	month, err := services.ParseMonth(req.MonthYear)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month_year must be in YYYY-MM format")
	}

	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment data")
	}

	due := services.CommissionForMonth(snap, req.PhysiotherapistID, month)
	if len(due.Details) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No commission due for this physiotherapist and month")
	}

	amountPaid := due.RemainingDue
	if req.AmountPaid != nil {
		if req.AmountPaid.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Amount paid must not be negative")
		}
		amountPaid = *req.AmountPaid
	}

	payout := &models.CommissionPayment{
		PhysiotherapistID:  req.PhysiotherapistID,
		TransferDate:       req.TransferDate,
		TotalCommissionDue: due.TotalCommission,
		AmountPaid:         amountPaid,
		Status:             models.CommissionAwaitingApproval,
		Description:        req.Description,
	}
	for _, detail := range due.Details {
		payout.PaymentIDs = append(payout.PaymentIDs, detail.PaymentID)
	}

	if err := database.CreateCommissionPayment(db, payout); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown physiotherapist")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create commission payment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payout,
	})
}

// approvePayout is the compare-and-set transition; tests substitute it to
// exercise the handler's status mapping without a database.
var approvePayout = database.ApproveCommissionPayment

// ApproveCommissionPaymentAPI flips a payout from awaiting_approval to
// approved exactly once. Re-approving reports a conflict rather than
// silently succeeding.
func ApproveCommissionPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	err := approvePayout(db, c.Params("id"))
	if err == database.ErrNotFound {
		return fiber.NewError(fiber.StatusNotFound, "Commission payment not found")
	}
	if err == database.ErrAlreadyApproved {
		return fiber.NewError(fiber.StatusConflict, "Commission payment is already approved")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to approve commission payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Commission payment approved",
	})
}

// DeleteCommissionPaymentAPI removes a payout still awaiting approval,
// releasing its payments back into commission due.
func DeleteCommissionPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	err := database.DeleteCommissionPayment(db, c.Params("id"))
	if err == database.ErrNotFound {
		return fiber.NewError(fiber.StatusNotFound, "Commission payment not found")
	}
	if err == database.ErrAlreadyApproved {
		return fiber.NewError(fiber.StatusConflict, "Approved commission payments cannot be deleted")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete commission payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Commission payment deleted successfully",
	})
}

// CommissionDueAPI details the commission owed to one physiotherapist for a
// month. Physiotherapists may only query themselves.
func CommissionDueAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)
	physioID := c.Params("physiotherapistId")

	if !actor.IsStaff {
		if actor.PhysiotherapistID == nil || physioID != *actor.PhysiotherapistID {
			return fiber.NewError(fiber.StatusForbidden, "You may only view your own commission")
		}
	}

	now := time.Now()
	month, err := targetMonth(c, now)
	if err != nil {
		return err
	}

	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    services.CommissionForMonth(snap, physioID, month),
	})
}

// TotalCommissionDueAPI sums the remaining commission due for the month
// across the actor's scope.
func TotalCommissionDueAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	scope, err := scopeFor(c, actor)
	if err != nil {
		return err
	}

	now := time.Now()
	month, err := targetMonth(c, now)
	if err != nil {
		return err
	}

	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment data")
	}

	total := decimal.Zero
	if scope.PhysiotherapistID != nil {
		total = services.CommissionForMonth(snap, *scope.PhysiotherapistID, month).RemainingDue
	} else {
		for _, physio := range snap.Physiotherapists {
			total = total.Add(services.CommissionForMonth(snap, physio.ID, month).RemainingDue)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"year":                 month.Year,
			"month":                month.Month,
			"total_commission_due": total,
		},
	})
}
