package services

import (
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
)

// StudentPredicate is a boolean condition over a roster entry. Predicates
// are combined with And/Or instead of building ad-hoc query strings, so the
// summary and dashboard endpoints share one definition of every condition.
type StudentPredicate func(s *RosterEntry) bool

func (p StudentPredicate) And(q StudentPredicate) StudentPredicate {
	return func(s *RosterEntry) bool { return p(s) && q(s) }
}

func (p StudentPredicate) Or(q StudentPredicate) StudentPredicate {
	return func(s *RosterEntry) bool { return p(s) || q(s) }
}

// StudentActive matches active students.
func StudentActive() StudentPredicate {
	return func(s *RosterEntry) bool { return s.Active }
}

// StudentHasModality matches students bound to a modality.
func StudentHasModality() StudentPredicate {
	return func(s *RosterEntry) bool { return s.HasModality }
}

// StudentBilledMonthly matches students whose modality charges monthly.
func StudentBilledMonthly() StudentPredicate {
	return func(s *RosterEntry) bool {
		return s.HasModality && s.ModalityBilling == models.ModalityMonthly
	}
}

// StudentOfPhysiotherapist matches students assigned to the given
// physiotherapist.
func StudentOfPhysiotherapist(physioID string) StudentPredicate {
	return func(s *RosterEntry) bool {
		return s.PhysiotherapistID != nil && *s.PhysiotherapistID == physioID
	}
}

// StudentRegisteredBy matches students registered before the first day of
// the month after m, so a student registered mid-month is eligible that same
// month.
func StudentRegisteredBy(m Month) StudentPredicate {
	cutoff := m.AddMonths(1).First()
	return func(s *RosterEntry) bool { return s.RegistrationDate.Before(cutoff) }
}

// AnyStudent matches everything; the identity for And chains built up
// conditionally.
func AnyStudent() StudentPredicate {
	return func(*RosterEntry) bool { return true }
}

// FilterStudents returns the entries matching p, preserving order.
func FilterStudents(students []RosterEntry, p StudentPredicate) []RosterEntry {
	var out []RosterEntry
	for i := range students {
		if p(&students[i]) {
			out = append(out, students[i])
		}
	}
	return out
}

// PaymentPredicate is a boolean condition over a payment record.
type PaymentPredicate func(p *PaymentRecord) bool

func (p PaymentPredicate) And(q PaymentPredicate) PaymentPredicate {
	return func(r *PaymentRecord) bool { return p(r) && q(r) }
}

func (p PaymentPredicate) Or(q PaymentPredicate) PaymentPredicate {
	return func(r *PaymentRecord) bool { return p(r) || q(r) }
}

// PaymentForStudent matches payments made by the given student.
func PaymentForStudent(studentID string) PaymentPredicate {
	return func(p *PaymentRecord) bool { return p.StudentID == studentID }
}

// PaymentReferencing matches payments whose declared reference month is m.
// This is how pre-paid students are reconciled.
func PaymentReferencing(m Month) PaymentPredicate {
	return func(p *PaymentRecord) bool {
		return p.ReferenceMonth != nil && m.Contains(*p.ReferenceMonth)
	}
}

// PaymentDatedIn matches payments physically received during m. This is how
// post-paid students are reconciled.
func PaymentDatedIn(m Month) PaymentPredicate {
	return func(p *PaymentRecord) bool { return m.Contains(p.PaymentDate) }
}

// PaymentOutsidePayouts matches payments not yet attached to any commission
// payout.
func PaymentOutsidePayouts() PaymentPredicate {
	return func(p *PaymentRecord) bool { return !p.InPayout }
}

// FilterPayments returns the records matching p, preserving order.
func FilterPayments(payments []PaymentRecord, p PaymentPredicate) []PaymentRecord {
	var out []PaymentRecord
	for i := range payments {
		if p(&payments[i]) {
			out = append(out, payments[i])
		}
	}
	return out
}

// MatchForCycle returns the payment predicate that decides whether a student
// of the given billing cycle has paid for month m: pre-paid students match
// by reference month, post-paid students by payment date.
func MatchForCycle(cycle models.BillingCycle, m Month) PaymentPredicate {
	if cycle == models.BillingPostPaid {
		return PaymentDatedIn(m)
	}
	return PaymentReferencing(m)
}
