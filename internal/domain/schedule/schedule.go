package schedule

import (
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
)

type Source string

const (
	SourceBranchDefault      Source = "branch_default"
	SourceAssignmentOverride Source = "assignment_override"
)

// EffectiveSchedule is the schedule that actually applies to one employee at
// one branch: the assignment override when complete, else the branch default.
// StartsAt/EndsAt carry wall-clock times only and must be combined with a
// calendar date in the branch timezone before comparison.
type EffectiveSchedule struct {
	StartsAt         time.Time
	EndsAt           time.Time
	ToleranceMinutes int
	Timezone         string
	Source           Source
}

// Resolve returns the effective schedule for an employee at a branch.
//
// The same resolution runs at check-in time (to stamp the lateness flag) and
// at metrics time, so the two can only diverge where the stored flag is
// deliberately authoritative.
func Resolve(br branch.Branch, assignment *employee.BranchAssignment) (EffectiveSchedule, error) {
	if assignment != nil && assignment.HasScheduleOverride() {
		tolerance := br.LateToleranceMinutes
		if assignment.LateToleranceMinutes != nil {
			tolerance = *assignment.LateToleranceMinutes
		}
		return EffectiveSchedule{
			StartsAt:         *assignment.ScheduleStartsAt,
			EndsAt:           *assignment.ScheduleEndsAt,
			ToleranceMinutes: tolerance,
			Timezone:         br.Timezone,
			Source:           SourceAssignmentOverride,
		}, nil
	}

	if br.OpensAt.IsZero() && br.ClosesAt.IsZero() {
		return EffectiveSchedule{}, ErrScheduleConfig
	}

	return EffectiveSchedule{
		StartsAt:         br.OpensAt,
		EndsAt:           br.ClosesAt,
		ToleranceMinutes: br.LateToleranceMinutes,
		Timezone:         br.Timezone,
		Source:           SourceBranchDefault,
	}, nil
}

// StartOn anchors the scheduled start on the given local calendar date.
func (s EffectiveSchedule) StartOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		s.StartsAt.Hour(), s.StartsAt.Minute(), s.StartsAt.Second(), 0,
		loc,
	)
}

// EndOn anchors the scheduled end on the given local calendar date.
func (s EffectiveSchedule) EndOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		s.EndsAt.Hour(), s.EndsAt.Minute(), s.EndsAt.Second(), 0,
		loc,
	)
}

// AllowedStartOn is the scheduled start plus the grace period. Arrivals at or
// before this instant are on time.
func (s EffectiveSchedule) AllowedStartOn(date time.Time, loc *time.Location) time.Time {
	return s.StartOn(date, loc).Add(time.Duration(s.ToleranceMinutes) * time.Minute)
}
