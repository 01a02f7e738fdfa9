package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrNotAssigned      = errors.New("employee has no active branch assignment")
	ErrDuplicateSession = errors.New("an active session is already open for this employee")
	ErrNoActiveSession  = errors.New("no active session open for this employee")
	ErrSessionNotFound  = errors.New("attendance session not found")
)

// GeofenceError reports a check attempt outside every candidate branch's
// tolerance radius. NearestDistanceMeters carries the closest branch distance
// for diagnostics.
type GeofenceError struct {
	NearestDistanceMeters float64
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("no branch within tolerance radius (nearest branch is %.0f meters away)", e.NearestDistanceMeters)
}

// BranchMismatchError reports a check-out attempted at a branch other than
// the one the open session was checked in at.
type BranchMismatchError struct {
	SessionBranchID   string
	SessionBranchName string
}

func (e *BranchMismatchError) Error() string {
	if e.SessionBranchName != "" {
		return fmt.Sprintf("check-out must happen at the check-in branch %q", e.SessionBranchName)
	}
	return fmt.Sprintf("check-out must happen at the check-in branch %s", e.SessionBranchID)
}
