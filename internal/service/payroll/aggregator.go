package payroll

import (
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// InRange reports whether a day's metrics fall inside the inclusive date
// range. The comparison uses the branch-local calendar date, so a late-night
// check-in near a UTC day boundary lands on the day the employee saw.
func InRange(m payroll.DailyMetrics, from, to time.Time) bool {
	date := m.Date.Format(dateLayout)
	return date >= from.Format(dateLayout) && date <= to.Format(dateLayout)
}

// Aggregate rolls one employee's daily metrics over a date range into a
// period summary. Days outside the range are skipped; sums keep full
// precision.
func Aggregate(employeeID string, days []payroll.DailyMetrics, from, to time.Time) payroll.PeriodSummary {
	summary := payroll.PeriodSummary{
		EmployeeID:           employeeID,
		From:                 from,
		To:                   to,
		TotalPayment:         decimal.Zero,
		TotalOvertimePayment: decimal.Zero,
		TotalLateDeduction:   decimal.Zero,
	}

	for _, day := range days {
		if day.EmployeeID != employeeID || !InRange(day, from, to) {
			continue
		}

		summary.DaysWorked++
		if day.IsLate {
			summary.LateDays++
		}
		summary.TotalHours += day.HoursWorked
		summary.TotalLateMinutes += day.LateMinutes
		summary.TotalOvertimeHours += day.OvertimeHours
		summary.TotalPayment = summary.TotalPayment.Add(day.TotalPayment)
		summary.TotalOvertimePayment = summary.TotalOvertimePayment.Add(day.OvertimePayment)
		summary.TotalLateDeduction = summary.TotalLateDeduction.Add(day.LateDeduction)
	}

	return summary
}
