package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money received from a student. ReferenceMonth is set for
// pre-paid monthly billing and names the month the payment covers, which may
// differ from the date the money actually arrived.
type Payment struct {
	ID             string          `json:"id" validate:"required,uuid"`
	StudentID      string          `json:"student" validate:"required,uuid"`
	ModalityID     string          `json:"modality" validate:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate    time.Time       `json:"payment_date" validate:"required"`
	ReferenceMonth *time.Time      `json:"reference_month"`
	CreatedAt      time.Time       `json:"created_at"`

	StudentDetails  *Student  `json:"student_details,omitempty"`
	ModalityDetails *Modality `json:"modality_details,omitempty"`
}
