package payroll

import (
	"math"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ReportRequest struct {
	BusinessID string  `json:"-"` // From JWT
	EmployeeID *string `json:"employee_id,omitempty"`
	DateFrom   string  `json:"date_from"` // YYYY-MM-DD
	DateTo     string  `json:"date_to"`   // YYYY-MM-DD
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo && from.After(to) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must not be after date_to",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the parsed inclusive date bounds. Validate must have passed.
func (r *ReportRequest) Range() (time.Time, time.Time) {
	from, _ := validator.IsValidDate(r.DateFrom)
	to, _ := validator.IsValidDate(r.DateTo)
	return from, to
}

type DailyMetricsResponse struct {
	EmployeeID      string          `json:"employee_id"`
	SessionID       string          `json:"session_id"`
	BranchName      string          `json:"branch_name"`
	Date            string          `json:"date"`
	CheckInLocal    string          `json:"check_in_local"`
	CheckOutLocal   string          `json:"check_out_local"`
	ScheduleStart   string          `json:"schedule_start"`
	ScheduleEnd     string          `json:"schedule_end"`
	HoursWorked     float64         `json:"hours_worked"`
	RegularHours    float64         `json:"regular_hours"`
	OvertimeHours   float64         `json:"overtime_hours"`
	LateMinutes     int             `json:"late_minutes"`
	UnpaidMinutes   int             `json:"unpaid_minutes"`
	BasePayment     decimal.Decimal `json:"base_payment"`
	LateDeduction   decimal.Decimal `json:"late_deduction"`
	PaymentWithLate decimal.Decimal `json:"payment_with_late"`
	OvertimePayment decimal.Decimal `json:"overtime_payment"`
	TotalPayment    decimal.Decimal `json:"total_payment"`
	IsLate          bool            `json:"is_late"`
	AutoClosed      bool            `json:"auto_closed"`
}

// round2 rounds hour values for presentation. Internal computation keeps
// full precision; this is the output boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ToDailyResponse(m DailyMetrics) DailyMetricsResponse {
	return DailyMetricsResponse{
		EmployeeID:      m.EmployeeID,
		SessionID:       m.SessionID,
		BranchName:      m.BranchName,
		Date:            m.Date.Format("2006-01-02"),
		CheckInLocal:    m.CheckInLocal.Format("15:04:05"),
		CheckOutLocal:   m.CheckOutLocal.Format("15:04:05"),
		ScheduleStart:   m.ScheduleStart,
		ScheduleEnd:     m.ScheduleEnd,
		HoursWorked:     round2(m.HoursWorked),
		RegularHours:    round2(m.RegularHours),
		OvertimeHours:   round2(m.OvertimeHours),
		LateMinutes:     m.LateMinutes,
		UnpaidMinutes:   m.UnpaidMinutes,
		BasePayment:     m.BasePayment.Round(2),
		LateDeduction:   m.LateDeduction.Round(2),
		PaymentWithLate: m.PaymentWithLate.Round(2),
		OvertimePayment: m.OvertimePayment.Round(2),
		TotalPayment:    m.TotalPayment.Round(2),
		IsLate:          m.IsLate,
		AutoClosed:      m.AutoClosed,
	}
}

type PeriodSummaryResponse struct {
	EmployeeID           string          `json:"employee_id"`
	From                 string          `json:"from"`
	To                   string          `json:"to"`
	DaysWorked           int             `json:"days_worked"`
	LateDays             int             `json:"late_days"`
	TotalHours           float64         `json:"total_hours"`
	TotalLateMinutes     int             `json:"total_late_minutes"`
	TotalOvertimeHours   float64         `json:"total_overtime_hours"`
	TotalPayment         decimal.Decimal `json:"total_payment"`
	TotalOvertimePayment decimal.Decimal `json:"total_overtime_payment"`
	TotalLateDeduction   decimal.Decimal `json:"total_late_deduction"`
}

func ToPeriodResponse(s PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		EmployeeID:           s.EmployeeID,
		From:                 s.From.Format("2006-01-02"),
		To:                   s.To.Format("2006-01-02"),
		DaysWorked:           s.DaysWorked,
		LateDays:             s.LateDays,
		TotalHours:           round2(s.TotalHours),
		TotalLateMinutes:     s.TotalLateMinutes,
		TotalOvertimeHours:   round2(s.TotalOvertimeHours),
		TotalPayment:         s.TotalPayment.Round(2),
		TotalOvertimePayment: s.TotalOvertimePayment.Round(2),
		TotalLateDeduction:   s.TotalLateDeduction.Round(2),
	}
}
