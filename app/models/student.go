package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student represents a patient enrolled at the clinic.
type Student struct {
	ID                string          `json:"id" validate:"required,uuid"`
	Name              string          `json:"name" validate:"required"`
	Email             *string         `json:"email" validate:"omitempty,email"`
	Phone             *string         `json:"phone"`
	DateOfBirth       *time.Time      `json:"date_of_birth"`
	RegistrationDate  time.Time       `json:"registration_date"`
	Active            bool            `json:"active"`
	Notes             *string         `json:"notes"`
	PaymentType       BillingCycle    `json:"payment_type" validate:"required,oneof=PRE POS"`
	PaymentDay        *int            `json:"payment_day" validate:"omitempty,min=1,max=31"`
	SessionQuantity   *int            `json:"session_quantity" validate:"omitempty,min=0"`
	Commission        decimal.Decimal `json:"commission"`
	PhysiotherapistID *string         `json:"physiotherapist" validate:"omitempty,uuid"`
	ModalityID        *string         `json:"modality" validate:"omitempty,uuid"`

	PhysiotherapistDetails *Physiotherapist   `json:"physiotherapist_details,omitempty"`
	ModalityDetails        *Modality          `json:"modality_details,omitempty"`
	Schedules              []*StudentSchedule `json:"schedules,omitempty"`
	PaymentStatus          interface{}        `json:"payment_status,omitempty"`
}
