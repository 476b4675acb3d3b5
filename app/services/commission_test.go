package services

import (
	"testing"
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commissionFixture() *Snapshot {
	ana := monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00")
	ana.PhysiotherapistID = strPtr("physio-1")
	ana.Commission = money("50")

	bruno := monthlyStudent("s2", "Bruno", models.BillingPostPaid, "200.00")
	bruno.PhysiotherapistID = strPtr("physio-1")
	bruno.Commission = money("30")

	carla := monthlyStudent("s3", "Carla", models.BillingPrePaid, "100.00")
	carla.PhysiotherapistID = strPtr("physio-2")

	return &Snapshot{
		Students: []RosterEntry{ana, bruno, carla},
		Payments: []PaymentRecord{
			{ID: "p1", StudentID: "s1", Amount: money("100.00"), PaymentDate: date(2025, 5, 5)},
			{ID: "p2", StudentID: "s2", Amount: money("200.00"), PaymentDate: date(2025, 5, 12)},
			{ID: "p3", StudentID: "s3", Amount: money("100.00"), PaymentDate: date(2025, 5, 8)},
			// Outside the month, never counted.
			{ID: "p4", StudentID: "s1", Amount: money("100.00"), PaymentDate: date(2025, 4, 5)},
		},
		Physiotherapists: []PhysiotherapistRef{
			{ID: "physio-1", Name: "Dra. Paula"},
			{ID: "physio-2", Name: "Dr. Marcos"},
		},
	}
}

func TestCommissionForMonth(t *testing.T) {
	snap := commissionFixture()

	due := CommissionForMonth(snap, "physio-1", Month{2025, 5})
	// 100 * 50% + 200 * 30% = 50 + 60
	assert.True(t, due.TotalCommission.Equal(money("110.00")), "got %s", due.TotalCommission)
	assert.True(t, due.TotalPaid.IsZero())
	assert.True(t, due.RemainingDue.Equal(money("110.00")))
	require.Len(t, due.Details, 2)
	assert.Equal(t, "Ana", due.Details[0].StudentName)
	assert.True(t, due.Details[0].Commission.Equal(money("50.00")))
	assert.True(t, due.Details[1].Commission.Equal(money("60.00")))
}

func TestCommissionExcludesPaymentsAlreadyInPayout(t *testing.T) {
	snap := commissionFixture()
	snap.Payments[0].InPayout = true

	due := CommissionForMonth(snap, "physio-1", Month{2025, 5})
	assert.True(t, due.TotalCommission.Equal(money("60.00")))
	require.Len(t, due.Details, 1)
	assert.Equal(t, "p2", due.Details[0].PaymentID)
}

func TestCommissionNetsApprovedPayouts(t *testing.T) {
	snap := commissionFixture()
	snap.Payouts = []PayoutRecord{
		{ID: "cp1", PhysiotherapistID: "physio-1", TransferDate: date(2025, 5, 20), AmountPaid: money("40.00"), Status: models.CommissionApproved},
		// Awaiting approval does not count as paid.
		{ID: "cp2", PhysiotherapistID: "physio-1", TransferDate: date(2025, 5, 21), AmountPaid: money("500.00"), Status: models.CommissionAwaitingApproval},
		// Another physiotherapist's payout is ignored.
		{ID: "cp3", PhysiotherapistID: "physio-2", TransferDate: date(2025, 5, 22), AmountPaid: money("25.00"), Status: models.CommissionApproved},
		// Different month is ignored.
		{ID: "cp4", PhysiotherapistID: "physio-1", TransferDate: date(2025, 4, 20), AmountPaid: money("10.00"), Status: models.CommissionApproved},
	}

	due := CommissionForMonth(snap, "physio-1", Month{2025, 5})
	assert.True(t, due.TotalPaid.Equal(money("40.00")))
	assert.True(t, due.RemainingDue.Equal(money("70.00")))
}

func TestCommissionRemainingDueNeverNegative(t *testing.T) {
	snap := commissionFixture()
	snap.Payouts = []PayoutRecord{
		{ID: "cp1", PhysiotherapistID: "physio-1", TransferDate: date(2025, 5, 20), AmountPaid: money("999.00"), Status: models.CommissionApproved},
	}

	due := CommissionForMonth(snap, "physio-1", Month{2025, 5})
	assert.True(t, due.TotalPaid.Equal(money("999.00")))
	assert.True(t, due.RemainingDue.IsZero(), "overpaid payouts never carry a negative balance")
}

func TestCommissionExactDecimalDivision(t *testing.T) {
	student := monthlyStudent("s1", "Ana", models.BillingPrePaid, "100.00")
	student.PhysiotherapistID = strPtr("physio-1")
	student.Commission = money("33.33")
	snap := &Snapshot{
		Students: []RosterEntry{student},
		Payments: []PaymentRecord{
			{ID: "p1", StudentID: "s1", Amount: money("149.99"), PaymentDate: date(2025, 5, 5)},
		},
	}

	due := CommissionForMonth(snap, "physio-1", Month{2025, 5})
	// 149.99 * 33.33 / 100 with no intermediate rounding.
	assert.True(t, due.TotalCommission.Equal(money("49.991667")), "got %s", due.TotalCommission)
}

func TestExpectedCommission(t *testing.T) {
	snap := commissionFixture()
	// 100*50% + 200*30% + 100*50% = 50 + 60 + 50
	total := ExpectedCommission(snap, Scope{}, Month{2025, 5})
	assert.True(t, total.Equal(money("160.00")), "got %s", total)

	scoped := ExpectedCommission(snap, PhysiotherapistScope("physio-2"), Month{2025, 5})
	assert.True(t, scoped.Equal(money("50.00")))
}

func TestBuildDashboardStaff(t *testing.T) {
	snap := commissionFixture()
	ref := date(2025, 5, 1)
	snap.Payments = append(snap.Payments, PaymentRecord{
		ID: "p5", StudentID: "s1", Amount: money("100.00"), PaymentDate: date(2025, 5, 6), ReferenceMonth: &ref,
	})
	now := date(2025, 5, 15)

	dashboard := BuildDashboard(snap, Scope{}, now)

	require.Len(t, dashboard.MonthlySummary, 5)
	assert.Equal(t, 2, dashboard.MonthlySummary[0].MonthNum) // three months back
	assert.True(t, dashboard.MonthlySummary[3].IsCurrent)
	assert.True(t, dashboard.MonthlySummary[4].IsFuture)
	assert.Equal(t, 3, dashboard.TotalStudents)

	current := dashboard.MonthlySummary[3]
	require.Len(t, current.PhysiotherapistBreakdown, 2)
	assert.Equal(t, "Dra. Paula", current.PhysiotherapistBreakdown[0].Name)

	// The headline totals come from the same Summarize pass as the trend.
	assert.True(t, dashboard.CurrentMonth.TotalReceived.Equal(current.TotalReceived))
	assert.True(t, dashboard.CurrentMonth.TotalExpected.Equal(
		dashboard.CurrentMonth.TotalReceived.Add(dashboard.CurrentMonth.TotalPending)))
	assert.NotEmpty(t, dashboard.PhysiotherapistSummary)
}

func TestBuildDashboardPhysiotherapistScope(t *testing.T) {
	snap := commissionFixture()
	now := date(2025, 5, 15)

	dashboard := BuildDashboard(snap, PhysiotherapistScope("physio-2"), now)

	assert.Equal(t, 1, dashboard.TotalStudents)
	for _, m := range dashboard.MonthlySummary {
		assert.Empty(t, m.PhysiotherapistBreakdown, "non-staff scope carries no breakdown")
	}
	assert.Empty(t, dashboard.PhysiotherapistSummary)
}

func TestDashboardFutureMonthHasNoReceipts(t *testing.T) {
	snap := commissionFixture()
	dashboard := BuildDashboard(snap, Scope{}, date(2025, 5, 15))
	future := dashboard.MonthlySummary[4]
	assert.True(t, future.TotalReceived.IsZero())
	assert.Equal(t, 0, future.PaidStudents)
}

func TestDashboardIsDeterministicForFixedClock(t *testing.T) {
	snap := commissionFixture()
	now := time.Date(2025, 5, 15, 13, 45, 0, 0, time.UTC)
	first := BuildDashboard(snap, Scope{}, now)
	second := BuildDashboard(snap, Scope{}, now)
	assert.Equal(t, first, second)
}
