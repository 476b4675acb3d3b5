package modalities

import (
	"database/sql"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// ModalityRequest is the payload for creating or updating a modality.
type ModalityRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=MONTHLY SESSION"`
}

// GetModalitiesAPI returns all modalities.
func GetModalitiesAPI(c *fiber.Ctx, db *sql.DB) error {
	modalities, err := database.GetModalities(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch modalities")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    modalities,
	})
}

// GetModalityAPI returns a specific modality by ID.
func GetModalityAPI(c *fiber.Ctx, db *sql.DB) error {
	modality, err := database.GetModalityByID(db, c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Modality not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch modality")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    modality,
	})
}

// CreateModalityAPI creates a new modality.
func CreateModalityAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ModalityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Price.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Price must not be negative")
	}

	modality := &models.Modality{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PaymentType: models.ModalityBilling(req.PaymentType),
	}
	if err := database.CreateModality(db, modality); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create modality")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    modality,
	})
}

// UpdateModalityAPI updates an existing modality.
func UpdateModalityAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ModalityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	modality := &models.Modality{
		ID:          c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PaymentType: models.ModalityBilling(req.PaymentType),
	}
	if err := database.UpdateModality(db, modality); err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Modality not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update modality")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    modality,
	})
}

// DeleteModalityAPI deletes a modality. Modalities still referenced by
// students or payments are protected.
func DeleteModalityAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteModality(db, c.Params("id")); err != nil {
		if err == database.ErrNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Modality not found")
		}
		if database.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Modality has students or payments and cannot be deleted")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete modality")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Modality deleted successfully",
	})
}
