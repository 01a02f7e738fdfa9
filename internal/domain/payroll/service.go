package payroll

import "context"

// PayrollService exposes derived daily metrics and period summaries.
type PayrollService interface {
	// DailyReport computes the daily breakdown for one employee over a range.
	DailyReport(ctx context.Context, req ReportRequest) ([]DailyMetricsResponse, error)

	// PeriodReport aggregates daily metrics per employee over a range.
	PeriodReport(ctx context.Context, req ReportRequest) ([]PeriodSummaryResponse, error)
}
