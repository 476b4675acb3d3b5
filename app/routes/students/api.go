package students

import (
	"database/sql"
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/carlosmourajunior/FisioPilatesApp/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// StudentRequest is the payload for creating or updating a student.
type StudentRequest struct {
	Name              string           `json:"name" validate:"required"`
	Email             *string          `json:"email" validate:"omitempty,email"`
	Phone             *string          `json:"phone"`
	DateOfBirth       *time.Time       `json:"date_of_birth"`
	Active            *bool            `json:"active"`
	Notes             *string          `json:"notes"`
	PaymentType       string           `json:"payment_type" validate:"required,oneof=PRE POS"`
	PaymentDay        *int             `json:"payment_day" validate:"omitempty,min=1,max=31"`
	SessionQuantity   *int             `json:"session_quantity" validate:"omitempty,min=0"`
	Commission        *decimal.Decimal `json:"commission"`
	PhysiotherapistID *string          `json:"physiotherapist" validate:"omitempty,uuid"`
	ModalityID        *string          `json:"modality" validate:"omitempty,uuid"`
}

func (req *StudentRequest) toModel() (*models.Student, error) {
	commission := decimal.NewFromInt(50)
	if req.Commission != nil {
		commission = *req.Commission
	}
	if commission.IsNegative() || commission.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Commission must be between 0 and 100")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &models.Student{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		DateOfBirth:       req.DateOfBirth,
		Active:            active,
		Notes:             req.Notes,
		PaymentType:       models.BillingCycle(req.PaymentType),
		PaymentDay:        req.PaymentDay,
		SessionQuantity:   req.SessionQuantity,
		Commission:        commission,
		PhysiotherapistID: req.PhysiotherapistID,
		ModalityID:        req.ModalityID,
	}, nil
}

// rosterEntry flattens a loaded student into the shape the reconciliation
// engine consumes, so list and detail responses carry the same payment
// status the monthly summary reports.
func rosterEntry(s *models.Student) *services.RosterEntry {
	entry := &services.RosterEntry{
		ID:                s.ID,
		Name:              s.Name,
		Active:            s.Active,
		RegistrationDate:  s.RegistrationDate,
		PaymentType:       s.PaymentType,
		PaymentDay:        s.PaymentDay,
		SessionQuantity:   s.SessionQuantity,
		Commission:        s.Commission,
		PhysiotherapistID: s.PhysiotherapistID,
	}
	if s.ModalityDetails != nil {
		entry.HasModality = true
		entry.ModalityID = s.ModalityDetails.ID
		entry.ModalityName = s.ModalityDetails.Name
		entry.ModalityPrice = s.ModalityDetails.Price
		entry.ModalityBilling = s.ModalityDetails.PaymentType
	}
	return entry
}

func paymentRecords(payments []*models.Payment) []services.PaymentRecord {
	records := make([]services.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, services.PaymentRecord{
			ID:             p.ID,
			StudentID:      p.StudentID,
			Amount:         p.Amount,
			PaymentDate:    p.PaymentDate,
			ReferenceMonth: p.ReferenceMonth,
		})
	}
	return records
}

// GetStudentsAPI lists students with their computed payment status. Staff
// see every student; physiotherapists only their own roster.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	filter := database.StudentFilter{}
	if !actor.IsStaff {
		if actor.PhysiotherapistID == nil {
			return fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
		}
		filter.PhysiotherapistID = actor.PhysiotherapistID
	} else if v := c.Query("physiotherapist"); v != "" {
		filter.PhysiotherapistID = &v
	}
	switch c.Query("active") {
	case "true":
		t := true
		filter.Active = &t
	case "false":
		f := false
		filter.Active = &f
	}

	studentsList, err := database.GetStudents(db, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	payments, err := database.GetPayments(db, database.PaymentFilter{PhysiotherapistID: filter.PhysiotherapistID})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}
	byStudent := make(map[string][]services.PaymentRecord)
	for _, rec := range paymentRecords(payments) {
		byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
	}

	now := time.Now()
	for _, s := range studentsList {
		s.PaymentStatus = services.PaymentStatusFor(rosterEntry(s), byStudent[s.ID], now)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    studentsList,
	})
}

// GetStudentAPI returns a student with modality, physiotherapist, schedule
// and payment status details.
func GetStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	if err := requireOwnership(actor, student); err != nil {
		return err
	}

	sid := student.ID
	payments, err := database.GetPayments(db, database.PaymentFilter{StudentID: &sid})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}
	student.PaymentStatus = services.PaymentStatusFor(rosterEntry(student), paymentRecords(payments), time.Now())

	return c.JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

// CreateStudentAPI registers a student. Physiotherapist creators always own
// the students they register.
func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)
	if !actor.IsStaff && actor.PhysiotherapistID == nil {
		return fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student, err := req.toModel()
	if err != nil {
		return err
	}
	if !actor.IsStaff {
		student.PhysiotherapistID = actor.PhysiotherapistID
	}

	if err := database.CreateStudent(db, student); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown modality or physiotherapist")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

// UpdateStudentAPI updates a student. Physiotherapists may only touch their
// own roster and cannot reassign a student to someone else.
func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	existing, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	if err := requireOwnership(actor, existing); err != nil {
		return err
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student, err := req.toModel()
	if err != nil {
		return err
	}
	student.ID = existing.ID
	if !actor.IsStaff {
		student.PhysiotherapistID = actor.PhysiotherapistID
	}

	if err := database.UpdateStudent(db, student); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown modality or physiotherapist")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

// DeleteStudentAPI removes a student. Students with recorded payments are
// protected by the ledger foreign keys.
func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	existing, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	if err := requireOwnership(actor, existing); err != nil {
		return err
	}

	if err := database.DeleteStudent(db, existing.ID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Student has payments and cannot be deleted")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student deleted successfully",
	})
}

func requireOwnership(actor auth.Actor, student *models.Student) error {
	if actor.IsStaff {
		return nil
	}
	if actor.PhysiotherapistID == nil || student.PhysiotherapistID == nil ||
		*student.PhysiotherapistID != *actor.PhysiotherapistID {
		return fiber.NewError(fiber.StatusForbidden, "Student belongs to another physiotherapist")
	}
	return nil
}
