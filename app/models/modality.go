package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modality represents a treatment type the clinic offers (e.g. pilates,
// physiotherapy session) and how it is charged.
type Modality struct {
	ID          string          `json:"id" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	PaymentType ModalityBilling `json:"payment_type" validate:"required,oneof=MONTHLY SESSION"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
