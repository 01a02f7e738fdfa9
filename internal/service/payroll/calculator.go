package payroll

import (
	"math"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

const regularDayHours = 8

var (
	eight      = decimal.NewFromInt(regularDayHours)
	sixtyMins  = decimal.NewFromInt(60)
	timeLayout = "15:04:05"
)

// ComputeDailyMetrics derives one day's breakdown from a completed session
// and its effective schedule. Pure: no clock, no I/O. Monetary values carry
// full precision here; rounding happens in the response mapping.
func ComputeDailyMetrics(
	session attendance.Session,
	sched schedule.EffectiveSchedule,
	hourlyRate decimal.Decimal,
) (payroll.DailyMetrics, error) {
	if session.Status != attendance.StatusCompleted || !session.HasCheckIn() || !session.HasCheckOut() {
		return payroll.DailyMetrics{}, payroll.ErrSessionNotCompleted
	}

	loc := session.Location()
	checkInLocal := session.CheckInLocal()
	checkOutLocal := session.CheckOutLocal()

	hoursWorked := session.CheckOutAt.Sub(*session.CheckInAt).Hours()

	allowedStart := sched.AllowedStartOn(checkInLocal, loc)

	lateMinutes := 0
	if d := checkInLocal.Sub(allowedStart); d > 0 {
		lateMinutes = int(math.Round(d.Minutes()))
	}
	unpaidMinutes := lateMinutes

	overtimeHours := math.Max(0, hoursWorked-regularDayHours)
	regularHours := math.Min(hoursWorked, regularDayHours)

	unpaidHours := decimal.NewFromInt(int64(unpaidMinutes)).Div(sixtyMins)

	isLate := checkInLocal.After(allowedStart)
	if session.IsLate != nil {
		// The flag stamped at check-in time wins over recomputation.
		isLate = *session.IsLate
	}

	return payroll.DailyMetrics{
		EmployeeID: session.EmployeeID,
		SessionID:  session.ID,
		BranchID:   session.BranchID,

		Date:          time.Date(checkInLocal.Year(), checkInLocal.Month(), checkInLocal.Day(), 0, 0, 0, 0, loc),
		CheckInLocal:  checkInLocal,
		CheckOutLocal: checkOutLocal,

		ScheduleStart:    sched.StartsAt.Format(timeLayout),
		ScheduleEnd:      sched.EndsAt.Format(timeLayout),
		ToleranceMinutes: sched.ToleranceMinutes,

		HoursWorked:   hoursWorked,
		RegularHours:  regularHours,
		OvertimeHours: overtimeHours,
		LateMinutes:   lateMinutes,
		UnpaidMinutes: unpaidMinutes,

		BasePayment:     hourlyRate.Mul(eight),
		LateDeduction:   hourlyRate.Mul(unpaidHours),
		PaymentWithLate: hourlyRate.Mul(decimal.NewFromFloat(hoursWorked).Sub(unpaidHours)),
		OvertimePayment: hourlyRate.Mul(decimal.NewFromFloat(overtimeHours)),
		TotalPayment:    hourlyRate.Mul(decimal.NewFromFloat(regularHours)),

		IsLate:     isLate,
		AutoClosed: session.AutoClosed,
	}, nil
}
