package services

import (
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/shopspring/decimal"
)

// Scope restricts which students a computation may see. Staff see everything
// and may narrow to one physiotherapist; a physiotherapist is always pinned
// to their own roster.
type Scope struct {
	PhysiotherapistID *string
}

// StaffScope optionally narrows to one physiotherapist.
func StaffScope(physioID string) Scope {
	if physioID == "" {
		return Scope{}
	}
	return Scope{PhysiotherapistID: &physioID}
}

// PhysiotherapistScope pins the computation to one physiotherapist's roster.
func PhysiotherapistScope(physioID string) Scope {
	return Scope{PhysiotherapistID: &physioID}
}

func (s Scope) predicate() StudentPredicate {
	if s.PhysiotherapistID == nil {
		return AnyStudent()
	}
	return StudentOfPhysiotherapist(*s.PhysiotherapistID)
}

// PaidStudent is a summary line for a student whose month is settled.
type PaidStudent struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ModalityName string          `json:"modality_name"`
	PaymentDate  time.Time       `json:"payment_date"`
	Amount       decimal.Decimal `json:"amount"`
}

// PendingStudent is a summary line for a student who still owes the month.
type PendingStudent struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ModalityName   string          `json:"modality_name"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	PaymentDay     *int            `json:"payment_day,omitempty"`
	Overdue        bool            `json:"overdue"`
}

// MonthlySummary is the reconciliation report for one calendar month.
// TotalExpected always equals TotalReceived plus TotalPending exactly.
type MonthlySummary struct {
	Year      int  `json:"year"`
	MonthNum  int  `json:"month"`
	IsCurrent bool `json:"is_current"`
	IsFuture  bool `json:"is_future"`

	TotalStudents   int `json:"total_students"`
	PaidStudents    int `json:"paid_students"`
	PendingStudents int `json:"pending_students"`
	OverdueStudents int `json:"overdue_students"`

	TotalExpected decimal.Decimal `json:"total_expected"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	TotalOverdue  decimal.Decimal `json:"total_overdue"`

	PaidList    []PaidStudent    `json:"paid_list"`
	PendingList []PendingStudent `json:"pending_list"`
}

// Summarize reconciles the monthly-billed roster against the payment ledger
// for the target month. The reference instant decides whether the target is
// current, past, or future; overdue is a current-month-only signal and
// future months skip payment matching entirely.
func Summarize(snap *Snapshot, scope Scope, target Month, now time.Time) MonthlySummary {
	current := MonthOf(now)

	summary := MonthlySummary{
		Year:          target.Year,
		MonthNum:      target.Month,
		IsCurrent:     target.Equal(current),
		IsFuture:      target.After(current),
		TotalExpected: decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalPending:  decimal.Zero,
		TotalOverdue:  decimal.Zero,
	}

	eligible := FilterStudents(snap.Students,
		StudentActive().
			And(StudentBilledMonthly()).
			And(StudentRegisteredBy(target)).
			And(scope.predicate()))

	summary.TotalStudents = len(eligible)
	byStudent := snap.PaymentsByStudent()

	for i := range eligible {
		student := &eligible[i]
		summary.TotalExpected = summary.TotalExpected.Add(student.ModalityPrice)

		var matched []PaymentRecord
		if !summary.IsFuture {
			matched = FilterPayments(byStudent[student.ID], MatchForCycle(student.PaymentType, target))
		}

		if len(matched) > 0 {
			received := decimal.Zero
			first := matched[0]
			for _, p := range matched {
				received = received.Add(p.Amount)
				if p.PaymentDate.Before(first.PaymentDate) {
					first = p
				}
			}
			summary.TotalReceived = summary.TotalReceived.Add(received)
			summary.PaidList = append(summary.PaidList, PaidStudent{
				ID:           student.ID,
				Name:         student.Name,
				ModalityName: student.ModalityName,
				PaymentDate:  first.PaymentDate,
				Amount:       received,
			})
			continue
		}

		pending := PendingStudent{
			ID:             student.ID,
			Name:           student.Name,
			ModalityName:   student.ModalityName,
			ExpectedAmount: student.ModalityPrice,
			PaymentDay:     student.PaymentDay,
		}
		if summary.IsCurrent && student.PaymentDay != nil && now.Day() > *student.PaymentDay {
			pending.Overdue = true
			summary.OverdueStudents++
			summary.TotalOverdue = summary.TotalOverdue.Add(student.ModalityPrice)
		}
		summary.PendingList = append(summary.PendingList, pending)
	}

	summary.PaidStudents = len(summary.PaidList)
	summary.PendingStudents = len(summary.PendingList)
	summary.TotalPending = summary.TotalExpected.Sub(summary.TotalReceived)

	return summary
}

// MonthlyPaymentStatus is the roster-listing status for a monthly-billed
// student.
type MonthlyPaymentStatus struct {
	PaymentType      string          `json:"payment_type"`
	PaidCurrentMonth bool            `json:"paid_current_month"`
	ModalityPrice    decimal.Decimal `json:"modality_price"`
	IsOverdue        bool            `json:"is_overdue"`
	PaymentDay       *int            `json:"payment_day,omitempty"`
}

// SessionPaymentStatus is the roster-listing status for a session-billed
// student. RemainingValue goes negative on overpayment and is reported
// as-is.
type SessionPaymentStatus struct {
	PaymentType     string          `json:"payment_type"`
	SessionPrice    decimal.Decimal `json:"session_price"`
	SessionQuantity int             `json:"session_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	RemainingValue  decimal.Decimal `json:"remaining_value"`
}

// PaymentStatusFor computes the per-student status shown on the roster.
// Monthly students use the same paid/overdue definition as Summarize so the
// roster and the summary endpoints always agree; session students are
// reconciled absolutely, not per month.
func PaymentStatusFor(student *RosterEntry, payments []PaymentRecord, now time.Time) interface{} {
	if !student.HasModality {
		return nil
	}

	if student.ModalityBilling == models.ModalityMonthly {
		current := MonthOf(now)
		matched := FilterPayments(payments,
			PaymentForStudent(student.ID).And(MatchForCycle(student.PaymentType, current)))

		status := MonthlyPaymentStatus{
			PaymentType:      string(models.ModalityMonthly),
			PaidCurrentMonth: len(matched) > 0,
			ModalityPrice:    student.ModalityPrice,
			PaymentDay:       student.PaymentDay,
		}
		if !status.PaidCurrentMonth && student.PaymentDay != nil {
			status.IsOverdue = now.Day() > *student.PaymentDay
		}
		return status
	}

	return SessionStatusFor(student, payments)
}

// SessionStatusFor reconciles a session-billed student: owed is the session
// bundle value, paid is everything ever received.
func SessionStatusFor(student *RosterEntry, payments []PaymentRecord) SessionPaymentStatus {
	quantity := 0
	if student.SessionQuantity != nil {
		quantity = *student.SessionQuantity
	}
	totalValue := student.ModalityPrice.Mul(decimal.NewFromInt(int64(quantity)))

	totalPaid := decimal.Zero
	for _, p := range FilterPayments(payments, PaymentForStudent(student.ID)) {
		totalPaid = totalPaid.Add(p.Amount)
	}

	return SessionPaymentStatus{
		PaymentType:     string(models.ModalitySession),
		SessionPrice:    student.ModalityPrice,
		SessionQuantity: quantity,
		TotalValue:      totalValue,
		TotalPaid:       totalPaid,
		RemainingValue:  totalValue.Sub(totalPaid),
	}
}
