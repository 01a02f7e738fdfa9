package schedule

import (
	"testing"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallClock(t *testing.T, hhmmss string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04:05", hhmmss)
	require.NoError(t, err)
	return parsed
}

func testBranch(t *testing.T) branch.Branch {
	t.Helper()
	return branch.Branch{
		ID:                   "branch-1",
		Timezone:             "America/Mexico_City",
		OpensAt:              wallClock(t, "08:00:00"),
		ClosesAt:             wallClock(t, "18:00:00"),
		LateToleranceMinutes: 10,
	}
}

func TestResolve_BranchDefault(t *testing.T) {
	t.Parallel()
	sched, err := Resolve(testBranch(t), nil)
	require.NoError(t, err)

	assert.Equal(t, SourceBranchDefault, sched.Source)
	assert.Equal(t, "08:00:00", sched.StartsAt.Format("15:04:05"))
	assert.Equal(t, "18:00:00", sched.EndsAt.Format("15:04:05"))
	assert.Equal(t, 10, sched.ToleranceMinutes)
}

func TestResolve_CompleteOverrideWins(t *testing.T) {
	t.Parallel()
	start := wallClock(t, "09:30:00")
	end := wallClock(t, "17:30:00")
	tolerance := 5
	assignment := &employee.BranchAssignment{
		ScheduleStartsAt:     &start,
		ScheduleEndsAt:       &end,
		LateToleranceMinutes: &tolerance,
	}

	sched, err := Resolve(testBranch(t), assignment)
	require.NoError(t, err)

	assert.Equal(t, SourceAssignmentOverride, sched.Source)
	assert.Equal(t, "09:30:00", sched.StartsAt.Format("15:04:05"))
	assert.Equal(t, "17:30:00", sched.EndsAt.Format("15:04:05"))
	assert.Equal(t, 5, sched.ToleranceMinutes)
}

func TestResolve_IncompleteOverrideFallsBack(t *testing.T) {
	t.Parallel()
	start := wallClock(t, "09:30:00")
	assignment := &employee.BranchAssignment{
		ScheduleStartsAt: &start, // end missing
	}

	sched, err := Resolve(testBranch(t), assignment)
	require.NoError(t, err)

	assert.Equal(t, SourceBranchDefault, sched.Source)
	assert.Equal(t, "08:00:00", sched.StartsAt.Format("15:04:05"))
}

func TestResolve_OverrideInheritsBranchTolerance(t *testing.T) {
	t.Parallel()
	start := wallClock(t, "09:00:00")
	end := wallClock(t, "17:00:00")
	assignment := &employee.BranchAssignment{
		ScheduleStartsAt: &start,
		ScheduleEndsAt:   &end,
	}

	sched, err := Resolve(testBranch(t), assignment)
	require.NoError(t, err)

	assert.Equal(t, SourceAssignmentOverride, sched.Source)
	assert.Equal(t, 10, sched.ToleranceMinutes)
}

func TestResolve_NoScheduleAnywhere(t *testing.T) {
	t.Parallel()
	bare := branch.Branch{ID: "branch-2", Timezone: "UTC"}

	_, err := Resolve(bare, nil)
	assert.ErrorIs(t, err, ErrScheduleConfig)
}

func TestStartOn_AnchorsWallClockToDate(t *testing.T) {
	t.Parallel()
	sched, err := Resolve(testBranch(t), nil)
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	date := time.Date(2025, 3, 17, 0, 0, 0, 0, loc)
	start := sched.StartOn(date, loc)

	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 17, start.Day())
	assert.Equal(t, 8, start.Hour())
	assert.Equal(t, loc, start.Location())
}

func TestAllowedStartOn_AddsTolerance(t *testing.T) {
	t.Parallel()
	sched, err := Resolve(testBranch(t), nil)
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	date := time.Date(2025, 3, 17, 0, 0, 0, 0, loc)
	allowed := sched.AllowedStartOn(date, loc)

	assert.Equal(t, 8, allowed.Hour())
	assert.Equal(t, 10, allowed.Minute())
}
