package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/schedule"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/clock"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	sessionRepo    attendance.SessionRepository
	employeeRepo   employee.EmployeeRepository
	assignmentRepo employee.AssignmentRepository
	branchRepo     branch.BranchRepository
	clock          clock.Clock
}

func NewAttendanceService(
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	assignmentRepo employee.AssignmentRepository,
	branchRepo branch.BranchRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		sessionRepo:    sessionRepo,
		employeeRepo:   employeeRepo,
		assignmentRepo: assignmentRepo,
		branchRepo:     branchRepo,
		clock:          clk,
	}
}

// Check implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Check(ctx context.Context, req attendance.CheckRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, req.BusinessID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	if emp.Status != employee.StatusActive {
		return attendance.SessionResponse{}, employee.ErrEmployeeNotActive
	}

	candidates, err := s.branchRepo.GetActiveByEmployeeID(ctx, req.EmployeeID, req.BusinessID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to get assigned branches: %w", err)
	}
	if len(candidates) == 0 {
		return attendance.SessionResponse{}, attendance.ErrNotAssigned
	}

	fences := make([]geo.Fence, 0, len(candidates))
	byID := make(map[string]branch.Branch, len(candidates))
	for _, b := range candidates {
		fences = append(fences, b.Fence())
		byID[b.ID] = b
	}

	match, nearest := geo.Resolve(req.Coordinate(), fences)
	if match == nil {
		return attendance.SessionResponse{}, &attendance.GeofenceError{NearestDistanceMeters: nearest}
	}
	matched := byID[match.Fence.ID]

	action := req.ExplicitAction()
	if action == "" {
		nowLocal := s.clock.Now().In(matched.Location())
		today, err := s.sessionRepo.GetByEmployeeAndLocalDate(ctx, req.EmployeeID, nowLocal.Format("2006-01-02"))
		if err != nil {
			return attendance.SessionResponse{}, fmt.Errorf("failed to look up today's session: %w", err)
		}
		action = DetermineAction(today)
	}

	switch action {
	case attendance.ActionCheckIn:
		session, err := s.checkIn(ctx, emp, matched, req)
		if err != nil {
			return attendance.SessionResponse{}, err
		}
		return attendance.ToResponse(session, action, &match.DistanceMeters), nil

	case attendance.ActionCheckOut:
		session, err := s.checkOut(ctx, emp, matched, req)
		if err != nil {
			return attendance.SessionResponse{}, err
		}
		return attendance.ToResponse(session, action, &match.DistanceMeters), nil

	default:
		return attendance.SessionResponse{}, fmt.Errorf("unknown action %q", action)
	}
}

// checkIn opens a new session at the matched branch. The single-active-
// session invariant is checked here and enforced again by the store's unique
// constraint, so concurrent attempts cannot both succeed.
func (s *AttendanceServiceImpl) checkIn(ctx context.Context, emp employee.Employee, matched branch.Branch, req attendance.CheckRequest) (attendance.Session, error) {
	open, err := s.sessionRepo.GetActiveByEmployee(ctx, emp.ID)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to check open session: %w", err)
	}
	if open != nil {
		return attendance.Session{}, attendance.ErrDuplicateSession
	}

	assignment, err := s.assignmentRepo.GetByEmployeeAndBranch(ctx, emp.ID, matched.ID)
	var override *employee.BranchAssignment
	switch {
	case err == nil:
		override = &assignment
	case errors.Is(err, employee.ErrAssignmentNotFound):
		override = nil
	default:
		return attendance.Session{}, fmt.Errorf("failed to get branch assignment: %w", err)
	}

	sched, err := schedule.Resolve(matched, override)
	if err != nil {
		return attendance.Session{}, err
	}

	loc := matched.Location()
	nowUTC := s.clock.Now()
	nowLocal := nowUTC.In(loc)

	// Exactly on the allowed start is on time; only strictly after is late.
	allowedStart := sched.AllowedStartOn(nowLocal, loc)
	isLate := nowLocal.After(allowedStart)

	session := attendance.Session{
		EmployeeID:       emp.ID,
		BranchID:         matched.ID,
		BusinessID:       emp.BusinessID,
		CheckInAt:        &nowUTC,
		Timezone:         matched.Timezone,
		CheckInLatitude:  &req.Latitude,
		CheckInLongitude: &req.Longitude,
		IsLate:           &isLate,
		Status:           attendance.StatusActive,
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateSession) {
			return attendance.Session{}, attendance.ErrDuplicateSession
		}
		return attendance.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	name := matched.Name
	created.BranchName = &name
	return created, nil
}

// checkOut closes the employee's open session. The matched branch must be
// the session's branch: check-out happens where check-in did.
func (s *AttendanceServiceImpl) checkOut(ctx context.Context, emp employee.Employee, matched branch.Branch, req attendance.CheckRequest) (attendance.Session, error) {
	open, err := s.sessionRepo.GetActiveByEmployee(ctx, emp.ID)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if open == nil {
		return attendance.Session{}, attendance.ErrNoActiveSession
	}

	if open.BranchID != matched.ID {
		mismatch := &attendance.BranchMismatchError{SessionBranchID: open.BranchID}
		if original, err := s.branchRepo.GetByID(ctx, open.BranchID, emp.BusinessID); err == nil {
			mismatch.SessionBranchName = original.Name
		}
		return attendance.Session{}, mismatch
	}

	nowUTC := s.clock.Now()

	open.CheckOutAt = &nowUTC
	open.CheckOutLatitude = &req.Latitude
	open.CheckOutLongitude = &req.Longitude
	open.Status = attendance.StatusCompleted

	if err := s.sessionRepo.Update(ctx, *open); err != nil {
		return attendance.Session{}, fmt.Errorf("failed to close session: %w", err)
	}

	name := matched.Name
	open.BranchName = &name
	return *open, nil
}

// GetSession implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSession(ctx context.Context, id string, businessID string) (attendance.SessionResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, id, businessID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	action := attendance.ActionCheckIn
	if session.HasCheckOut() {
		action = attendance.ActionCheckOut
	}
	return attendance.ToResponse(session, action, nil), nil
}

// ListSessions implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListSessions(ctx context.Context, businessID string, filter attendance.SessionFilter) (attendance.ListSessionsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	sessions, total, err := s.sessionRepo.ListByBusiness(ctx, businessID, filter)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		action := attendance.ActionCheckIn
		if session.HasCheckOut() {
			action = attendance.ActionCheckOut
		}
		responses = append(responses, attendance.ToResponse(session, action, nil))
	}

	return attendance.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Sessions:   responses,
	}, nil
}

// localDate truncates an instant to its calendar date in loc.
func localDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
