package services

import (
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// CommissionDetail is one payment's contribution to a physiotherapist's
// commission.
type CommissionDetail struct {
	PaymentID     string          `json:"payment_id"`
	StudentID     string          `json:"student_id"`
	StudentName   string          `json:"student_name"`
	ModalityName  string          `json:"modality_name"`
	PaymentDate   time.Time       `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	CommissionPct decimal.Decimal `json:"commission_percentage"`
	Commission    decimal.Decimal `json:"commission"`
}

// CommissionDue is the commission reconciliation for one physiotherapist
// and month. RemainingDue never goes negative: payouts can satisfy
// commission in full or in part but no credit is carried forward.
type CommissionDue struct {
	PhysiotherapistID string             `json:"physiotherapist_id"`
	Year              int                `json:"year"`
	MonthNum          int                `json:"month"`
	TotalCommission   decimal.Decimal    `json:"total_commission"`
	TotalPaid         decimal.Decimal    `json:"total_paid"`
	RemainingDue      decimal.Decimal    `json:"remaining_due"`
	Details           []CommissionDetail `json:"details"`
}

// CommissionForMonth enumerates the physiotherapist's students' payments
// dated inside the month, excluding payments already covered by a payout,
// and nets the result against approved payouts transferred in the month.
// Per-payment commission is amount * pct / 100 in exact decimal arithmetic.
func CommissionForMonth(snap *Snapshot, physioID string, m Month) CommissionDue {
	due := CommissionDue{
		PhysiotherapistID: physioID,
		Year:              m.Year,
		MonthNum:          m.Month,
		TotalCommission:   decimal.Zero,
		TotalPaid:         decimal.Zero,
		RemainingDue:      decimal.Zero,
	}

	roster := FilterStudents(snap.Students, StudentOfPhysiotherapist(physioID))
	byStudent := snap.PaymentsByStudent()

	for i := range roster {
		student := &roster[i]
		matched := FilterPayments(byStudent[student.ID],
			PaymentDatedIn(m).And(PaymentOutsidePayouts()))
		for _, p := range matched {
			commission := p.Amount.Mul(student.Commission).Div(oneHundred)
			due.TotalCommission = due.TotalCommission.Add(commission)
			due.Details = append(due.Details, CommissionDetail{
				PaymentID:     p.ID,
				StudentID:     student.ID,
				StudentName:   student.Name,
				ModalityName:  student.ModalityName,
				PaymentDate:   p.PaymentDate,
				Amount:        p.Amount,
				CommissionPct: student.Commission,
				Commission:    commission,
			})
		}
	}

	for _, payout := range snap.Payouts {
		if payout.PhysiotherapistID != physioID {
			continue
		}
		if payout.Status != models.CommissionApproved {
			continue
		}
		if !m.Contains(payout.TransferDate) {
			continue
		}
		due.TotalPaid = due.TotalPaid.Add(payout.AmountPaid)
	}

	due.RemainingDue = due.TotalCommission.Sub(due.TotalPaid)
	if due.RemainingDue.IsNegative() {
		due.RemainingDue = decimal.Zero
	}
	return due
}

// ExpectedCommission sums the commission that would be owed if every
// eligible monthly student paid their modality price for the month.
func ExpectedCommission(snap *Snapshot, scope Scope, target Month) decimal.Decimal {
	eligible := FilterStudents(snap.Students,
		StudentActive().
			And(StudentBilledMonthly()).
			And(StudentRegisteredBy(target)).
			And(scope.predicate()))

	total := decimal.Zero
	for i := range eligible {
		total = total.Add(eligible[i].ModalityPrice.Mul(eligible[i].Commission).Div(oneHundred))
	}
	return total
}
