package services

import (
	"testing"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicateCombinators(t *testing.T) {
	active := monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00")
	inactive := monthlyStudent("s2", "Bruno", models.BillingPrePaid, "100.00")
	inactive.Active = false
	inactive.PhysiotherapistID = strPtr("physio-1")

	students := []RosterEntry{active, inactive}

	both := StudentActive().Or(StudentOfPhysiotherapist("physio-1"))
	assert.Len(t, FilterStudents(students, both), 2)

	neither := StudentActive().And(StudentOfPhysiotherapist("physio-1"))
	assert.Empty(t, FilterStudents(students, neither))

	assert.Len(t, FilterStudents(students, AnyStudent()), 2)
}

func TestStudentRegisteredBy(t *testing.T) {
	cutoffMonth := Month{Year: 2025, Month: 5}

	s := monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00")
	s.RegistrationDate = date(2025, 5, 31)
	assert.True(t, StudentRegisteredBy(cutoffMonth)(&s), "registered on the last day of the target month")

	s.RegistrationDate = date(2025, 6, 1)
	assert.False(t, StudentRegisteredBy(cutoffMonth)(&s), "registered on the cutoff itself")
}

func TestMatchForCycle(t *testing.T) {
	m := Month{Year: 2025, Month: 5}
	ref := date(2025, 5, 1)

	prepaidHit := PaymentRecord{PaymentDate: date(2025, 4, 28), ReferenceMonth: &ref}
	prepaidMiss := PaymentRecord{PaymentDate: date(2025, 5, 10)} // no reference month

	assert.True(t, MatchForCycle(models.BillingPrePaid, m)(&prepaidHit))
	assert.False(t, MatchForCycle(models.BillingPrePaid, m)(&prepaidMiss))

	// Post-paid flips the rule: date counts, reference month does not.
	assert.False(t, MatchForCycle(models.BillingPostPaid, m)(&prepaidHit))
	assert.True(t, MatchForCycle(models.BillingPostPaid, m)(&prepaidMiss))
}

func TestPaymentPredicates(t *testing.T) {
	m := Month{Year: 2025, Month: 5}
	payments := []PaymentRecord{
		{ID: "p1", StudentID: "s1", PaymentDate: date(2025, 5, 5)},
		{ID: "p2", StudentID: "s1", PaymentDate: date(2025, 5, 6), InPayout: true},
		{ID: "p3", StudentID: "s2", PaymentDate: date(2025, 4, 5)},
	}

	free := FilterPayments(payments, PaymentDatedIn(m).And(PaymentOutsidePayouts()))
	require.Len(t, free, 1)
	assert.Equal(t, "p1", free[0].ID)

	either := FilterPayments(payments, PaymentForStudent("s2").Or(PaymentOutsidePayouts()))
	assert.Len(t, either, 2)
}
