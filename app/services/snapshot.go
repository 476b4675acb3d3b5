package services

import (
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/shopspring/decimal"
)

// RosterEntry is a student row joined with its modality, flattened for
// reconciliation. Students without a modality never become eligible but are
// still carried so total counts stay honest.
type RosterEntry struct {
	ID                string
	Name              string
	Active            bool
	RegistrationDate  time.Time
	PaymentType       models.BillingCycle
	PaymentDay        *int
	SessionQuantity   *int
	Commission        decimal.Decimal
	PhysiotherapistID *string

	HasModality     bool
	ModalityID      string
	ModalityName    string
	ModalityPrice   decimal.Decimal
	ModalityBilling models.ModalityBilling
}

// PaymentRecord is a payment row as the engine sees it. InPayout marks
// payments already covered by a commission payout; those are excluded from
// commission-due computations.
type PaymentRecord struct {
	ID             string
	StudentID      string
	Amount         decimal.Decimal
	PaymentDate    time.Time
	ReferenceMonth *time.Time
	InPayout       bool
}

// PayoutRecord is a commission payout row.
type PayoutRecord struct {
	ID                string
	PhysiotherapistID string
	TransferDate      time.Time
	AmountPaid        decimal.Decimal
	Status            models.CommissionStatus
}

// PhysiotherapistRef carries the identity fields the dashboard breakdown
// needs.
type PhysiotherapistRef struct {
	ID   string
	Name string
}

// Snapshot is a consistent read of the ledger. Every reconciliation call
// operates on a snapshot plus an explicit reference instant; nothing reaches
// for the database or the wall clock.
type Snapshot struct {
	Students         []RosterEntry
	Payments         []PaymentRecord
	Payouts          []PayoutRecord
	Physiotherapists []PhysiotherapistRef
}

// PaymentsByStudent indexes the snapshot's payments by student id.
func (s *Snapshot) PaymentsByStudent() map[string][]PaymentRecord {
	byStudent := make(map[string][]PaymentRecord, len(s.Students))
	for _, p := range s.Payments {
		byStudent[p.StudentID] = append(byStudent[p.StudentID], p)
	}
	return byStudent
}
