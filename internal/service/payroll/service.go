package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/schedule"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	sessionRepo    attendance.SessionRepository
	employeeRepo   employee.EmployeeRepository
	assignmentRepo employee.AssignmentRepository
	branchRepo     branch.BranchRepository
}

func NewPayrollService(
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	assignmentRepo employee.AssignmentRepository,
	branchRepo branch.BranchRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		sessionRepo:    sessionRepo,
		employeeRepo:   employeeRepo,
		assignmentRepo: assignmentRepo,
		branchRepo:     branchRepo,
	}
}

// DailyReport computes the per-day breakdown for one employee over an
// inclusive date range.
func (s *PayrollServiceImpl) DailyReport(ctx context.Context, req payroll.ReportRequest) ([]payroll.DailyMetricsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.EmployeeID == nil {
		return nil, validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required for a daily report",
		}}
	}

	from, to := req.Range()

	days, err := s.employeeDays(ctx, req.BusinessID, *req.EmployeeID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.DailyMetricsResponse, 0, len(days))
	for _, day := range days {
		responses = append(responses, payroll.ToDailyResponse(day))
	}
	return responses, nil
}

// PeriodReport aggregates per-employee summaries over an inclusive date
// range. Without an employee filter it covers every employee of the business
// that worked at least one day in the range.
func (s *PayrollServiceImpl) PeriodReport(ctx context.Context, req payroll.ReportRequest) ([]payroll.PeriodSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, to := req.Range()

	var employeeIDs []string
	if req.EmployeeID != nil {
		employeeIDs = []string{*req.EmployeeID}
	} else {
		employees, err := s.employeeRepo.GetByBusinessID(ctx, req.BusinessID)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		for _, e := range employees {
			employeeIDs = append(employeeIDs, e.ID)
		}
		sort.Strings(employeeIDs)
	}

	summaries := make([]payroll.PeriodSummaryResponse, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		days, err := s.employeeDays(ctx, req.BusinessID, employeeID, from, to)
		if err != nil {
			return nil, err
		}

		summary := Aggregate(employeeID, days, from, to)
		if summary.DaysWorked == 0 && req.EmployeeID == nil {
			continue
		}
		summaries = append(summaries, payroll.ToPeriodResponse(summary))
	}
	return summaries, nil
}

// employeeDays computes per-day metrics for one employee's completed
// sessions over the range, ordered by check-in time. The UTC query window is
// widened by a day on each side so branch-local dates near UTC midnight are
// not missed; the precise inclusion test is branch-local.
func (s *PayrollServiceImpl) employeeDays(ctx context.Context, businessID, employeeID string, from, to time.Time) ([]payroll.DailyMetrics, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, businessID)
	if err != nil {
		return nil, err
	}

	fromUTC := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	toUTC := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 2)

	sessions, err := s.sessionRepo.ListCompletedByEmployee(ctx, employeeID, businessID, fromUTC, toUTC)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	branchCache := make(map[string]branch.Branch)
	days := make([]payroll.DailyMetrics, 0, len(sessions))

	for _, session := range sessions {
		br, ok := branchCache[session.BranchID]
		if !ok {
			br, err = s.branchRepo.GetByID(ctx, session.BranchID, businessID)
			if err != nil {
				slog.Error("payroll: failed to load branch for session",
					"session_id", session.ID,
					"branch_id", session.BranchID,
					"error", err)
				continue
			}
			branchCache[session.BranchID] = br
		}

		sched, err := s.resolveSchedule(ctx, br, employeeID)
		if err != nil {
			return nil, err
		}

		metrics, err := ComputeDailyMetrics(session, sched, emp.HourlyRate)
		if err != nil {
			if errors.Is(err, payroll.ErrSessionNotCompleted) {
				continue
			}
			return nil, err
		}
		metrics.BranchName = br.Name

		if !InRange(metrics, from, to) {
			continue
		}
		days = append(days, metrics)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].CheckInLocal.Before(days[j].CheckInLocal)
	})
	return days, nil
}

// resolveSchedule mirrors the resolution the check-in path applies, so
// derived lateness agrees with the stored flag whenever the schedule has not
// changed since.
func (s *PayrollServiceImpl) resolveSchedule(ctx context.Context, br branch.Branch, employeeID string) (schedule.EffectiveSchedule, error) {
	var override *employee.BranchAssignment
	assignment, err := s.assignmentRepo.GetByEmployeeAndBranch(ctx, employeeID, br.ID)
	switch {
	case err == nil:
		override = &assignment
	case errors.Is(err, employee.ErrAssignmentNotFound):
		// Session may predate an unassignment; fall back to branch hours.
	default:
		return schedule.EffectiveSchedule{}, err
	}

	return schedule.Resolve(br, override)
}
