package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhysiotherapistSummary is the per-physiotherapist slice of a month.
type PhysiotherapistSummary struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	TotalStudents     int             `json:"total_students"`
	PaidStudents      int             `json:"paid_students"`
	PendingStudents   int             `json:"pending_students"`
	TotalReceived     decimal.Decimal `json:"total_received"`
	TotalMonthRevenue decimal.Decimal `json:"total_month_revenue"`
	CommissionToPay   decimal.Decimal `json:"commission_to_pay"`
}

// TrendMonth is a MonthlySummary stripped of its per-student lists, plus the
// staff-only physiotherapist breakdown.
type TrendMonth struct {
	Year      int  `json:"year"`
	MonthNum  int  `json:"month"`
	IsCurrent bool `json:"is_current"`
	IsFuture  bool `json:"is_future"`

	TotalStudents   int `json:"total_students"`
	PaidStudents    int `json:"paid_students"`
	PendingStudents int `json:"pending_students"`

	TotalExpected decimal.Decimal `json:"total_expected"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalPending  decimal.Decimal `json:"total_pending"`

	PhysiotherapistBreakdown []PhysiotherapistSummary `json:"physiotherapist_breakdown,omitempty"`
}

// CurrentMonthTotals collects the headline numbers for the current month.
type CurrentMonthTotals struct {
	TotalReceived            decimal.Decimal `json:"total_received"`
	TotalExpected            decimal.Decimal `json:"total_expected"`
	TotalPending             decimal.Decimal `json:"total_pending"`
	TotalOverdue             decimal.Decimal `json:"total_overdue"`
	TotalCommissions         decimal.Decimal `json:"total_commissions"`
	TotalExpectedCommissions decimal.Decimal `json:"total_expected_commissions"`
}

// DashboardSummary is the aggregate view: a five month trend (prior three,
// current, next), current-month totals, and for staff a physiotherapist
// breakdown.
type DashboardSummary struct {
	TotalStudents          int                      `json:"total_students"`
	MonthlySummary         []TrendMonth             `json:"monthly_summary"`
	CurrentMonth           CurrentMonthTotals       `json:"current_month_summary"`
	PhysiotherapistSummary []PhysiotherapistSummary `json:"physiotherapist_summary,omitempty"`
}

// BuildDashboard assembles the dashboard for the given scope. Staff scope
// (nil physiotherapist) gets the per-physiotherapist breakdown; a
// physiotherapist scope sees only their own numbers. Every month in the
// trend is produced by Summarize, so the dashboard and the summary endpoint
// cannot disagree on who is paid or overdue.
func BuildDashboard(snap *Snapshot, scope Scope, now time.Time) DashboardSummary {
	current := MonthOf(now)
	staff := scope.PhysiotherapistID == nil

	dashboard := DashboardSummary{}

	active := FilterStudents(snap.Students, StudentActive().And(scope.predicate()))
	dashboard.TotalStudents = len(active)

	for offset := -3; offset <= 1; offset++ {
		target := current.AddMonths(offset)
		summary := Summarize(snap, scope, target, now)

		trend := TrendMonth{
			Year:            summary.Year,
			MonthNum:        summary.MonthNum,
			IsCurrent:       summary.IsCurrent,
			IsFuture:        summary.IsFuture,
			TotalStudents:   summary.TotalStudents,
			PaidStudents:    summary.PaidStudents,
			PendingStudents: summary.PendingStudents,
			TotalExpected:   summary.TotalExpected,
			TotalReceived:   summary.TotalReceived,
			TotalPending:    summary.TotalPending,
		}
		if staff {
			trend.PhysiotherapistBreakdown = physiotherapistBreakdown(snap, target, now)
		}
		dashboard.MonthlySummary = append(dashboard.MonthlySummary, trend)

		if summary.IsCurrent {
			dashboard.CurrentMonth = CurrentMonthTotals{
				TotalReceived:            summary.TotalReceived,
				TotalExpected:            summary.TotalExpected,
				TotalPending:             summary.TotalPending,
				TotalOverdue:             summary.TotalOverdue,
				TotalCommissions:         totalCommissions(snap, scope, current),
				TotalExpectedCommissions: ExpectedCommission(snap, scope, current),
			}
			if staff {
				dashboard.PhysiotherapistSummary = trend.PhysiotherapistBreakdown
			}
		}
	}

	return dashboard
}

// physiotherapistBreakdown summarizes one month per physiotherapist.
func physiotherapistBreakdown(snap *Snapshot, target Month, now time.Time) []PhysiotherapistSummary {
	var breakdown []PhysiotherapistSummary
	for _, physio := range snap.Physiotherapists {
		summary := Summarize(snap, PhysiotherapistScope(physio.ID), target, now)
		due := CommissionForMonth(snap, physio.ID, target)
		breakdown = append(breakdown, PhysiotherapistSummary{
			ID:                physio.ID,
			Name:              physio.Name,
			TotalStudents:     summary.TotalStudents,
			PaidStudents:      summary.PaidStudents,
			PendingStudents:   summary.PendingStudents,
			TotalReceived:     summary.TotalReceived,
			TotalMonthRevenue: summary.TotalReceived,
			CommissionToPay:   due.RemainingDue,
		})
	}
	return breakdown
}

// totalCommissions sums the commission owed on the month's payments across
// the scope's physiotherapists.
func totalCommissions(snap *Snapshot, scope Scope, m Month) decimal.Decimal {
	total := decimal.Zero
	if scope.PhysiotherapistID != nil {
		return CommissionForMonth(snap, *scope.PhysiotherapistID, m).TotalCommission
	}
	for _, physio := range snap.Physiotherapists {
		total = total.Add(CommissionForMonth(snap, physio.ID, m).TotalCommission)
	}
	return total
}
