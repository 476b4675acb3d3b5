package schedules

import (
	"database/sql"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ScheduleRequest is the payload for creating or updating a weekly slot.
type ScheduleRequest struct {
	StudentID string `json:"student" validate:"required,uuid"`
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	Hour      int    `json:"hour" validate:"min=6,max=21"`
}

// GetSchedulesAPI lists weekly slots. Staff see the whole grid and may
// filter by physiotherapist; physiotherapists only see their own roster.
func GetSchedulesAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)

	var physioID, studentID *string
	if actor.IsStaff {
		if v := c.Query("physiotherapist"); v != "" {
			physioID = &v
		}
	} else {
		if actor.PhysiotherapistID == nil {
			return fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
		}
		physioID = actor.PhysiotherapistID
	}
	if v := c.Query("student"); v != "" {
		studentID = &v
	}

	schedules, err := database.GetSchedules(db, physioID, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch schedules")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    schedules,
	})
}

// CreateScheduleAPI adds a weekly slot for a monthly-billed student.
func CreateScheduleAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	monthly, err := database.StudentHasMonthlyModality(db, req.StudentID)
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check student modality")
	}
	if !monthly {
		return fiber.NewError(fiber.StatusBadRequest, "Only students with a monthly modality can have a fixed schedule")
	}

	sc := &models.StudentSchedule{
		StudentID: req.StudentID,
		Weekday:   req.Weekday,
		Hour:      req.Hour,
	}
	if err := database.CreateSchedule(db, sc); err != nil {
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Student already has a slot at this weekday and hour")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create schedule")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sc,
	})
}

// UpdateScheduleAPI moves an existing slot to a new weekday or hour.
func UpdateScheduleAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sc := &models.StudentSchedule{
		ID:        c.Params("id"),
		StudentID: req.StudentID,
		Weekday:   req.Weekday,
		Hour:      req.Hour,
	}
	if err := database.UpdateSchedule(db, sc); err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Schedule not found")
		}
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Student already has a slot at this weekday and hour")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update schedule")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sc,
	})
}

// DeleteScheduleAPI removes a weekly slot.
func DeleteScheduleAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteSchedule(db, c.Params("id")); err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Schedule not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete schedule")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Schedule deleted successfully",
	})
}
