package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
)

// SweepAutoClose implements attendance.AttendanceService.
//
// It force-closes sessions whose branch-local check-in date is strictly
// before yesterday, so genuinely long same-day shifts are never touched. The
// synthetic check-out is the branch's closing time on the check-in's calendar
// date. Re-running is a no-op for already-closed sessions because their
// status is no longer active, and each session closes independently.
func (s *AttendanceServiceImpl) SweepAutoClose(ctx context.Context) ([]attendance.Session, error) {
	now := s.clock.Now()

	// Coarse cutoff; the precise branch-local date rule is applied per
	// session below.
	candidates, err := s.sessionRepo.ListStaleActive(ctx, now.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("failed to list stale sessions: %w", err)
	}

	closed := make([]attendance.Session, 0, len(candidates))

	for _, session := range candidates {
		if session.Status != attendance.StatusActive || session.CheckInAt == nil {
			continue
		}

		loc := session.Location()
		checkInDate := localDate(*session.CheckInAt, loc)
		yesterday := localDate(now, loc).AddDate(0, 0, -1)
		if !checkInDate.Before(yesterday) {
			continue
		}

		br, err := s.branchRepo.GetByID(ctx, session.BranchID, session.BusinessID)
		if err != nil {
			slog.Error("sweep: failed to load branch for stale session",
				"session_id", session.ID,
				"branch_id", session.BranchID,
				"error", err)
			continue
		}

		updated := closeAtBranchClosing(session, br)
		if err := s.sessionRepo.Update(ctx, updated); err != nil {
			slog.Error("sweep: failed to auto-close session",
				"session_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}

		closed = append(closed, updated)
	}

	if len(closed) > 0 {
		slog.Info("sweep: auto-closed stale sessions", "count", len(closed))
	}
	return closed, nil
}

// closeAtBranchClosing stamps a synthetic check-out at the branch's closing
// time on the session's check-in calendar date.
func closeAtBranchClosing(session attendance.Session, br branch.Branch) attendance.Session {
	loc := session.Location()
	checkInLocal := session.CheckInLocal()

	closingLocal := time.Date(
		checkInLocal.Year(), checkInLocal.Month(), checkInLocal.Day(),
		br.ClosesAt.Hour(), br.ClosesAt.Minute(), br.ClosesAt.Second(), 0,
		loc,
	)
	closingUTC := closingLocal.UTC()

	session.CheckOutAt = &closingUTC
	session.Status = attendance.StatusCompleted
	session.AutoClosed = true
	return session
}
