package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionPayment is a payout of accumulated commission to a
// physiotherapist. It is created awaiting approval and covers a set of
// student payments; once a payment is attached to a payout it no longer
// counts towards commission due.
type CommissionPayment struct {
	ID                 string           `json:"id" validate:"required,uuid"`
	PhysiotherapistID  string           `json:"physiotherapist" validate:"required,uuid"`
	TransferDate       time.Time        `json:"transfer_date" validate:"required"`
	TotalCommissionDue decimal.Decimal  `json:"total_commission_due"`
	AmountPaid         decimal.Decimal  `json:"amount_paid"`
	Status             CommissionStatus `json:"status"`
	Description        string           `json:"description"`
	CreatedAt          time.Time        `json:"created_at"`

	PaymentIDs             []string         `json:"payments"`
	PhysiotherapistDetails *Physiotherapist `json:"physiotherapist_details,omitempty"`
}
