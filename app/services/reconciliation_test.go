package services

import (
	"testing"
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func monthlyStudent(id, name string, cycle models.BillingCycle, price string) RosterEntry {
	return RosterEntry{
		ID:               id,
		Name:             name,
		Active:           true,
		RegistrationDate: date(2024, 1, 10),
		PaymentType:      cycle,
		Commission:       money("50"),
		HasModality:      true,
		ModalityID:       "mod-monthly",
		ModalityName:     "Pilates",
		ModalityPrice:    money(price),
		ModalityBilling:  models.ModalityMonthly,
	}
}

func TestSummarizePrePaidMatchesByReferenceMonth(t *testing.T) {
	ref := date(2025, 5, 1)
	snap := &Snapshot{
		Students: []RosterEntry{
			monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00"),
		},
		Payments: []PaymentRecord{
			{ID: "p1", StudentID: "s1", Amount: money("100.00"), PaymentDate: date(2025, 4, 28), ReferenceMonth: &ref},
		},
	}
	now := date(2025, 5, 15)

	summary := Summarize(snap, Scope{}, Month{2025, 5}, now)
	require.Equal(t, 1, summary.PaidStudents)
	require.Equal(t, 0, summary.PendingStudents)
	assert.True(t, summary.TotalReceived.Equal(money("100.00")))

	// An otherwise identical post-paid student is not matched by the
	// reference month; only the payment date counts.
	snap.Students[0].PaymentType = models.BillingPostPaid
	summary = Summarize(snap, Scope{}, Month{2025, 5}, now)
	require.Equal(t, 0, summary.PaidStudents)
	require.Equal(t, 1, summary.PendingStudents)

	// Moving the payment date into the target month settles it.
	snap.Payments[0].PaymentDate = date(2025, 5, 2)
	summary = Summarize(snap, Scope{}, Month{2025, 5}, now)
	require.Equal(t, 1, summary.PaidStudents)
}

func TestSummarizeTotalsReconcileExactly(t *testing.T) {
	ref := date(2025, 5, 1)
	snap := &Snapshot{
		Students: []RosterEntry{
			monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.10"),
			monthlyStudent("s2", "Bruno", models.BillingPrePaid, "99.95"),
			monthlyStudent("s3", "Carla", models.BillingPostPaid, "149.33"),
			monthlyStudent("s4", "Davi", models.BillingPrePaid, "0.01"),
		},
		Payments: []PaymentRecord{
			{ID: "p1", StudentID: "s1", Amount: money("100.10"), PaymentDate: date(2025, 5, 3), ReferenceMonth: &ref},
			{ID: "p2", StudentID: "s3", Amount: money("149.33"), PaymentDate: date(2025, 5, 7)},
		},
	}

	summary := Summarize(snap, Scope{}, Month{2025, 5}, date(2025, 5, 20))

	assert.True(t, summary.TotalExpected.Equal(summary.TotalReceived.Add(summary.TotalPending)),
		"expected %s = received %s + pending %s",
		summary.TotalExpected, summary.TotalReceived, summary.TotalPending)
	assert.True(t, summary.TotalExpected.Equal(money("349.39")))
	assert.True(t, summary.TotalReceived.Equal(money("249.43")))
	assert.True(t, summary.TotalPending.Equal(money("99.96")))
	assert.Equal(t, summary.TotalStudents, summary.PaidStudents+summary.PendingStudents)
}

func TestSummarizeOverdueOnlyInCurrentMonth(t *testing.T) {
	student := monthlyStudent("s1", "Bia", models.BillingPostPaid, "150.00")
	student.PaymentDay = intPtr(10)
	snap := &Snapshot{Students: []RosterEntry{student}}
	now := date(2025, 5, 15)

	// Target month is the current month and the payment day has passed.
	summary := Summarize(snap, Scope{}, Month{2025, 5}, now)
	require.Equal(t, 1, summary.PendingStudents)
	require.Equal(t, 1, summary.OverdueStudents)
	assert.True(t, summary.TotalOverdue.Equal(money("150.00")))
	require.Len(t, summary.PendingList, 1)
	assert.True(t, summary.PendingList[0].Overdue)

	// A past month is pending but never retroactively overdue.
	summary = Summarize(snap, Scope{}, Month{2025, 4}, now)
	require.Equal(t, 1, summary.PendingStudents)
	assert.Equal(t, 0, summary.OverdueStudents)
	assert.True(t, summary.TotalOverdue.IsZero())

	// Before the payment day there is nothing overdue yet.
	summary = Summarize(snap, Scope{}, Month{2025, 5}, date(2025, 5, 10))
	assert.Equal(t, 0, summary.OverdueStudents)
}

func TestSummarizeFutureMonthSkipsMatching(t *testing.T) {
	ref := date(2025, 6, 1)
	student := monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00")
	student.PaymentDay = intPtr(5)
	snap := &Snapshot{
		Students: []RosterEntry{student},
		Payments: []PaymentRecord{
			// Already paid ahead for June; the future branch still reports
			// pending with zero received.
			{ID: "p1", StudentID: "s1", Amount: money("100.00"), PaymentDate: date(2025, 5, 20), ReferenceMonth: &ref},
		},
	}

	summary := Summarize(snap, Scope{}, Month{2025, 6}, date(2025, 5, 25))
	assert.True(t, summary.IsFuture)
	require.Equal(t, 1, summary.PendingStudents)
	assert.Equal(t, 0, summary.PaidStudents)
	assert.True(t, summary.TotalReceived.IsZero())
	assert.Equal(t, 0, summary.OverdueStudents)
}

func TestSummarizeEligibilityCutoff(t *testing.T) {
	early := monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00")
	early.RegistrationDate = date(2025, 5, 20) // mid target month
	late := monthlyStudent("s2", "Bruno", models.BillingPrePaid, "100.00")
	late.RegistrationDate = date(2025, 6, 1) // first day after the cutoff
	inactive := monthlyStudent("s3", "Carla", models.BillingPrePaid, "100.00")
	inactive.Active = false
	noModality := monthlyStudent("s4", "Davi", models.BillingPrePaid, "100.00")
	noModality.HasModality = false

	snap := &Snapshot{Students: []RosterEntry{early, late, inactive, noModality}}
	summary := Summarize(snap, Scope{}, Month{2025, 5}, date(2025, 7, 1))

	// Registered mid-month counts that same month; everyone else is out.
	require.Equal(t, 1, summary.TotalStudents)
	require.Len(t, summary.PendingList, 1)
	assert.Equal(t, "s1", summary.PendingList[0].ID)
}

func TestSummarizeScopesByPhysiotherapist(t *testing.T) {
	mine := monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00")
	mine.PhysiotherapistID = strPtr("physio-1")
	other := monthlyStudent("s2", "Bruno", models.BillingPrePaid, "100.00")
	other.PhysiotherapistID = strPtr("physio-2")
	unassigned := monthlyStudent("s3", "Carla", models.BillingPrePaid, "100.00")

	snap := &Snapshot{Students: []RosterEntry{mine, other, unassigned}}

	summary := Summarize(snap, PhysiotherapistScope("physio-1"), Month{2025, 5}, date(2025, 5, 15))
	require.Equal(t, 1, summary.TotalStudents)

	summary = Summarize(snap, StaffScope(""), Month{2025, 5}, date(2025, 5, 15))
	require.Equal(t, 3, summary.TotalStudents)

	summary = Summarize(snap, StaffScope("physio-2"), Month{2025, 5}, date(2025, 5, 15))
	require.Equal(t, 1, summary.TotalStudents)
}

func TestSummarizeSumsMultiplePaymentsForOneMonth(t *testing.T) {
	ref := date(2025, 5, 1)
	snap := &Snapshot{
		Students: []RosterEntry{monthlyStudent("s1", "Ana", models.BillingPrePaid, "200.00")},
		Payments: []PaymentRecord{
			{ID: "p1", StudentID: "s1", Amount: money("120.00"), PaymentDate: date(2025, 5, 10), ReferenceMonth: &ref},
			{ID: "p2", StudentID: "s1", Amount: money("80.00"), PaymentDate: date(2025, 5, 3), ReferenceMonth: &ref},
		},
	}

	summary := Summarize(snap, Scope{}, Month{2025, 5}, date(2025, 5, 20))
	require.Len(t, summary.PaidList, 1)
	assert.True(t, summary.PaidList[0].Amount.Equal(money("200.00")))
	// Earliest matching payment dates the entry.
	assert.Equal(t, date(2025, 5, 3), summary.PaidList[0].PaymentDate)
	assert.True(t, summary.TotalExpected.Equal(summary.TotalReceived.Add(summary.TotalPending)))
}

func TestSessionStatusSurfacesOverpayment(t *testing.T) {
	student := RosterEntry{
		ID:              "s1",
		Name:            "Ana",
		Active:          true,
		SessionQuantity: intPtr(10),
		HasModality:     true,
		ModalityName:    "Avulsa",
		ModalityPrice:   money("80.00"),
		ModalityBilling: models.ModalitySession,
	}
	payments := []PaymentRecord{
		{ID: "p1", StudentID: "s1", Amount: money("500.00"), PaymentDate: date(2025, 3, 1)},
		{ID: "p2", StudentID: "s1", Amount: money("400.00"), PaymentDate: date(2025, 4, 1)},
	}

	status := SessionStatusFor(&student, payments)
	assert.True(t, status.TotalValue.Equal(money("800.00")))
	assert.True(t, status.TotalPaid.Equal(money("900.00")))
	// Overpayment stays negative; it is a signal, not an error.
	assert.True(t, status.RemainingValue.Equal(money("-100.00")))
}

func TestPaymentStatusForMonthlyAgreesWithSummarize(t *testing.T) {
	student := monthlyStudent("s1", "Bia", models.BillingPostPaid, "150.00")
	student.PaymentDay = intPtr(10)
	snap := &Snapshot{Students: []RosterEntry{student}}
	now := date(2025, 5, 15)

	status, ok := PaymentStatusFor(&snap.Students[0], snap.Payments, now).(MonthlyPaymentStatus)
	require.True(t, ok)
	assert.False(t, status.PaidCurrentMonth)
	assert.True(t, status.IsOverdue)

	summary := Summarize(snap, Scope{}, MonthOf(now), now)
	require.Len(t, summary.PendingList, 1)
	// The roster status and the summary must agree on the overdue flag.
	assert.Equal(t, status.IsOverdue, summary.PendingList[0].Overdue)

	// Settle the month by payment date (post-paid) and both flip together.
	snap.Payments = append(snap.Payments, PaymentRecord{
		ID: "p1", StudentID: "s1", Amount: money("150.00"), PaymentDate: date(2025, 5, 12),
	})
	status, ok = PaymentStatusFor(&snap.Students[0], snap.Payments, now).(MonthlyPaymentStatus)
	require.True(t, ok)
	assert.True(t, status.PaidCurrentMonth)
	assert.False(t, status.IsOverdue)
	summary = Summarize(snap, Scope{}, MonthOf(now), now)
	assert.Equal(t, 1, summary.PaidStudents)
}

func TestPaymentStatusForWithoutModality(t *testing.T) {
	student := RosterEntry{ID: "s1", Name: "Ana", Active: true}
	assert.Nil(t, PaymentStatusFor(&student, nil, date(2025, 5, 1)))
}

func TestScenarioPrePaidStudentWithCommission(t *testing.T) {
	// Student A: PRE, commission 50%, modality 100.00, payment referencing
	// 2025-05 -> paid, received 100.00, commission contribution 50.00.
	ref := date(2025, 5, 1)
	studentA := monthlyStudent("s1", "Aluno A", models.BillingPrePaid, "100.00")
	studentA.PhysiotherapistID = strPtr("physio-1")
	snap := &Snapshot{
		Students: []RosterEntry{studentA},
		Payments: []PaymentRecord{
			{ID: "p1", StudentID: "s1", Amount: money("100.00"), PaymentDate: date(2025, 5, 4), ReferenceMonth: &ref},
		},
		Physiotherapists: []PhysiotherapistRef{{ID: "physio-1", Name: "Dra. Paula"}},
	}

	summary := Summarize(snap, Scope{}, Month{2025, 5}, date(2025, 5, 20))
	require.Equal(t, 1, summary.PaidStudents)
	assert.True(t, summary.TotalReceived.Equal(money("100.00")))

	due := CommissionForMonth(snap, "physio-1", Month{2025, 5})
	assert.True(t, due.TotalCommission.Equal(money("50.00")))
}

func TestSummarizeEmptyRoster(t *testing.T) {
	summary := Summarize(&Snapshot{}, Scope{}, Month{2025, 5}, date(2025, 5, 15))
	assert.Equal(t, 0, summary.TotalStudents)
	assert.True(t, summary.TotalExpected.IsZero())
	assert.True(t, summary.TotalPending.IsZero())
	assert.Empty(t, summary.PaidList)
	assert.Empty(t, summary.PendingList)
}
