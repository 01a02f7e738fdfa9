package attendance

import (
	"time"
)

type SessionStatus string

const (
	// StatusActive marks an open session (checked in, not yet out).
	StatusActive SessionStatus = "active"
	// StatusCompleted marks a closed session, by check-out or by the sweep.
	StatusCompleted SessionStatus = "completed"
)

type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
)

var ActionValues = []string{
	string(ActionCheckIn),
	string(ActionCheckOut),
}

// Session is one check-in/check-out cycle for an employee at a branch.
//
// Timestamps are stored as UTC instants; Timezone keeps the branch's IANA
// name at capture so local wall-clock rendering stays unambiguous across DST
// transitions. At most one session per employee may be active at any time,
// irrespective of branch — the store enforces this atomically.
type Session struct {
	ID         string
	EmployeeID string
	BranchID   string
	BusinessID string

	CheckInAt        *time.Time
	Timezone         string
	CheckInLatitude  *float64
	CheckInLongitude *float64

	// IsLate is computed once at check-in against the effective schedule and
	// stored; it is never recomputed afterwards.
	IsLate *bool

	CheckOutAt        *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	Status     SessionStatus
	AutoClosed bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	BranchName   *string
}

// Location loads the session's captured timezone, falling back to UTC.
func (s Session) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CheckInLocal returns the check-in instant in the captured branch timezone.
func (s Session) CheckInLocal() time.Time {
	if s.CheckInAt == nil {
		return time.Time{}
	}
	return s.CheckInAt.In(s.Location())
}

// CheckOutLocal returns the check-out instant in the captured branch timezone.
func (s Session) CheckOutLocal() time.Time {
	if s.CheckOutAt == nil {
		return time.Time{}
	}
	return s.CheckOutAt.In(s.Location())
}

// HasCheckIn reports whether the session carries a complete check-in
// (timestamp and both coordinates).
func (s Session) HasCheckIn() bool {
	return s.CheckInAt != nil && s.CheckInLatitude != nil && s.CheckInLongitude != nil
}

// HasCheckOut reports whether the session has been closed.
func (s Session) HasCheckOut() bool {
	return s.CheckOutAt != nil
}
