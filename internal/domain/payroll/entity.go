package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyMetrics is the derived breakdown of one completed attendance session.
// It is recomputed on demand from the session and the effective schedule;
// nothing here is a source of truth except IsLate, which echoes the flag
// stored at check-in time.
type DailyMetrics struct {
	EmployeeID string
	SessionID  string
	BranchID   string
	BranchName string

	// Date is the branch-local calendar date of the check-in.
	Date time.Time

	CheckInLocal  time.Time
	CheckOutLocal time.Time

	// Schedule snapshot applied to this day.
	ScheduleStart    string
	ScheduleEnd      string
	ToleranceMinutes int

	HoursWorked   float64
	RegularHours  float64
	OvertimeHours float64
	LateMinutes   int
	UnpaidMinutes int

	// BasePayment is the informational full-day baseline (rate x 8).
	BasePayment decimal.Decimal
	// LateDeduction is rate x unpaid time, informational.
	LateDeduction decimal.Decimal
	// PaymentWithLate is rate x (hours worked - unpaid time), informational.
	PaymentWithLate decimal.Decimal
	// OvertimePayment is reported separately and not folded into
	// TotalPayment unless the caller chooses to.
	OvertimePayment decimal.Decimal
	// TotalPayment is the authoritative payable amount for the regular
	// portion: rate x regular hours.
	TotalPayment decimal.Decimal

	IsLate     bool
	AutoClosed bool
}

// PeriodSummary rolls an employee's daily metrics over a date range.
type PeriodSummary struct {
	EmployeeID string
	From       time.Time
	To         time.Time

	DaysWorked         int
	LateDays           int
	TotalHours         float64
	TotalLateMinutes   int
	TotalOvertimeHours float64

	TotalPayment         decimal.Decimal
	TotalOvertimePayment decimal.Decimal
	TotalLateDeduction   decimal.Decimal
}
