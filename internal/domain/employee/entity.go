package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeStatus string

const (
	StatusPending  EmployeeStatus = "pending"
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
)

var EmployeeStatusValues = []string{
	string(StatusPending),
	string(StatusActive),
	string(StatusInactive),
}

type Employee struct {
	ID          string
	BusinessID  string
	FullName    string
	PhoneNumber string
	HourlyRate  decimal.Decimal
	Status      EmployeeStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentInactive AssignmentStatus = "inactive"
)

// BranchAssignment links an employee to a branch. Its status is independent
// of the employee's global status: deactivating one assignment leaves the
// others untouched, and reactivating the employee does not reactivate any
// assignment unless explicitly requested.
//
// ScheduleStartsAt/ScheduleEndsAt are optional wall-clock overrides of the
// branch default hours; the override only takes effect when both are set.
type BranchAssignment struct {
	ID                   string
	EmployeeID           string
	BranchID             string
	Status               AssignmentStatus
	ScheduleStartsAt     *time.Time
	ScheduleEndsAt       *time.Time
	LateToleranceMinutes *int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasScheduleOverride reports whether the assignment carries a complete
// schedule override (both start and end present).
func (a BranchAssignment) HasScheduleOverride() bool {
	return a.ScheduleStartsAt != nil && a.ScheduleEndsAt != nil
}
