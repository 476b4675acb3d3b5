package physiotherapists

import (
	"database/sql"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PhysiotherapistRequest is the payload for creating or updating a
// physiotherapist and their user account.
type PhysiotherapistRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Password        string `json:"password" validate:"omitempty,min=8"`
	PasswordConfirm string `json:"password_confirm"`
	Crefito         string `json:"crefito" validate:"required"`
	Phone           string `json:"phone"`
	Specialization  string `json:"specialization"`
}

// GetPhysiotherapistsAPI returns all physiotherapists.
func GetPhysiotherapistsAPI(c *fiber.Ctx, db *sql.DB) error {
	physios, err := database.GetPhysiotherapists(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch physiotherapists")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    physios,
	})
}

// GetPhysiotherapistAPI returns a specific physiotherapist by ID.
func GetPhysiotherapistAPI(c *fiber.Ctx, db *sql.DB) error {
	physio, err := database.GetPhysiotherapistByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Physiotherapist not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch physiotherapist")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    physio,
	})
}

// CreatePhysiotherapistAPI provisions a physiotherapist and the linked user
// account.
func CreatePhysiotherapistAPI(c *fiber.Ctx, db *sql.DB) error {
	var req PhysiotherapistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Password is required")
	}
	if req.Password != req.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "Passwords do not match")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	physio := &models.Physiotherapist{
		Crefito:        req.Crefito,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		User: &models.User{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
	}
	if err := database.CreatePhysiotherapist(db, physio, hash); err != nil {
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Email or CREFITO already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create physiotherapist")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    physio,
	})
}

// UpdatePhysiotherapistAPI updates a physiotherapist and their user fields.
func UpdatePhysiotherapistAPI(c *fiber.Ctx, db *sql.DB) error {
	var req PhysiotherapistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	physio := &models.Physiotherapist{
		ID:             c.Params("id"),
		Crefito:        req.Crefito,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		User: &models.User{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
	}
	if err := database.UpdatePhysiotherapist(db, physio); err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Physiotherapist not found")
		}
		if database.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Email or CREFITO already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update physiotherapist")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    physio,
	})
}

// DeletePhysiotherapistAPI removes a physiotherapist and their user
// account. Physiotherapists with commission payouts are protected.
func DeletePhysiotherapistAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeletePhysiotherapist(db, c.Params("id")); err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Physiotherapist not found")
		}
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Physiotherapist has commission payments and cannot be deleted")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete physiotherapist")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Physiotherapist deleted successfully",
	})
}
