package payments

import (
	"database/sql"
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// PaymentRequest is the payload for recording or correcting a payment.
// ReferenceMonth is any date inside the month the payment covers; it is
// required for pre-paid monthly billing and normalized to the first day.
type PaymentRequest struct {
	StudentID      string          `json:"student" validate:"required,uuid"`
	ModalityID     *string         `json:"modality" validate:"omitempty,uuid"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate    time.Time       `json:"payment_date" validate:"required"`
	ReferenceMonth *time.Time      `json:"reference_month"`
}

func (req *PaymentRequest) toModel(db *sql.DB) (*models.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Amount must be positive")
	}

	student, err := database.GetStudentByID(db, req.StudentID)
	if err != nil {
		if err == database.ErrNotFound {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown student")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	p := &models.Payment{
		StudentID:   student.ID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
	}

	switch {
	case req.ModalityID != nil:
		p.ModalityID = *req.ModalityID
	case student.ModalityID != nil:
		p.ModalityID = *student.ModalityID
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Student has no modality; specify one on the payment")
	}

	if req.ReferenceMonth != nil {
		first := time.Date(req.ReferenceMonth.Year(), req.ReferenceMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
		p.ReferenceMonth = &first
	} else if student.PaymentType == models.BillingPrePaid {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Reference month is required for pre-paid students")
	}

	return p, nil
}

// requirePaymentAccess blocks non-staff actors from touching payments of
// students outside their roster.
func requirePaymentAccess(db *sql.DB, actor auth.Actor, studentID string) error {
	if actor.IsStaff {
		return nil
	}
	if actor.PhysiotherapistID == nil {
		return fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
	}
	owned, err := database.StudentOwnedBy(db, studentID, *actor.PhysiotherapistID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check student ownership")
	}
	if !owned {
		return fiber.NewError(fiber.StatusForbidden, "Student belongs to another physiotherapist")
	}
	return nil
}

// GetPaymentsAPI lists payments newest first, scoped by actor.
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	filter := database.PaymentFilter{}
	if !actor.IsStaff {
		if actor.PhysiotherapistID == nil {
			return fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
		}
		filter.PhysiotherapistID = actor.PhysiotherapistID
	} else if v := c.Query("physiotherapist"); v != "" {
		filter.PhysiotherapistID = &v
	}
	if v := c.Query("student"); v != "" {
		filter.StudentID = &v
	}

	payments, err := database.GetPayments(db, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
	})
}

// GetPaymentAPI returns a single payment.
func GetPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	payment, err := database.GetPaymentByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	if err := requirePaymentAccess(db, actor, payment.StudentID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// CreatePaymentAPI records a payment.
func CreatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := requirePaymentAccess(db, actor, req.StudentID); err != nil {
		return err
	}

	payment, err := req.toModel(db)
	if err != nil {
		return err
	}
	if err := database.CreatePayment(db, payment); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown student or modality")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create payment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// UpdatePaymentAPI corrects a payment that has not yet entered a commission
// payout.
func UpdatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	existing, err := database.GetPaymentByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	if err := requirePaymentAccess(db, actor, existing.StudentID); err != nil {
		return err
	}

	inPayout, err := database.PaymentInPayout(db, existing.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check payment payout state")
	}
	if inPayout {
		return fiber.NewError(fiber.StatusConflict, "Payment is part of a commission payout and cannot be changed")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := requirePaymentAccess(db, actor, req.StudentID); err != nil {
		return err
	}

	payment, err := req.toModel(db)
	if err != nil {
		return err
	}
	payment.ID = existing.ID
	if err := database.UpdatePayment(db, payment); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// DeletePaymentAPI removes a payment that has not entered a payout.
func DeletePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	existing, err := database.GetPaymentByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	if err := requirePaymentAccess(db, actor, existing.StudentID); err != nil {
		return err
	}

	if err := database.DeletePayment(db, existing.ID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Payment is part of a commission payout and cannot be deleted")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment deleted successfully",
	})
}
