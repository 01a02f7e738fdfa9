package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSessionAt(t *testing.T, f *fixture, employeeID string, checkIn time.Time) attendance.Session {
	t.Helper()
	s, err := f.sessions.Create(context.Background(), attendance.Session{
		EmployeeID:      employeeID,
		BranchID:        testBranchID,
		BusinessID:      testBusinessID,
		CheckInAt:       &checkIn,
		Timezone:        "America/Mexico_City",
		CheckInLatitude: ptrFloat(branchLat), CheckInLongitude: ptrFloat(branchLon),
		Status: attendance.StatusActive,
	})
	require.NoError(t, err)
	return s
}

func ptrFloat(v float64) *float64 { return &v }

func TestSweepAutoClose_ClosesForgottenSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	loc := mexicoCity(t)

	// Checked in March 14 at 08:00 local, never checked out.
	checkIn := time.Date(2025, 3, 14, 8, 0, 0, 0, loc).UTC()
	stale := openSessionAt(t, f, testEmployeeID, checkIn)

	// Sweep runs March 17.
	now := time.Date(2025, 3, 17, 0, 5, 0, 0, loc).UTC()
	svc := f.service(clock.At(now))

	closed, err := svc.SweepAutoClose(context.Background())
	require.NoError(t, err)
	require.Len(t, closed, 1)

	got := f.sessions.sessions[stale.ID]
	assert.Equal(t, attendance.StatusCompleted, got.Status)
	assert.True(t, got.AutoClosed)
	require.NotNil(t, got.CheckOutAt)

	// Synthetic check-out is branch closing time on the check-in date.
	wantClose := time.Date(2025, 3, 14, 18, 0, 0, 0, loc)
	assert.True(t, got.CheckOutAt.Equal(wantClose),
		"want %s, got %s", wantClose, got.CheckOutAt)
}

func TestSweepAutoClose_LeavesYesterdayOpen(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	loc := mexicoCity(t)

	// Checked in yesterday: an overnight shift may still be running.
	checkIn := time.Date(2025, 3, 16, 22, 0, 0, 0, loc).UTC()
	session := openSessionAt(t, f, testEmployeeID, checkIn)

	now := time.Date(2025, 3, 17, 0, 5, 0, 0, loc).UTC()
	svc := f.service(clock.At(now))

	closed, err := svc.SweepAutoClose(context.Background())
	require.NoError(t, err)
	assert.Empty(t, closed)

	got := f.sessions.sessions[session.ID]
	assert.Equal(t, attendance.StatusActive, got.Status)
	assert.Nil(t, got.CheckOutAt)
}

func TestSweepAutoClose_Idempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	loc := mexicoCity(t)

	checkIn := time.Date(2025, 3, 10, 8, 0, 0, 0, loc).UTC()
	openSessionAt(t, f, testEmployeeID, checkIn)

	now := time.Date(2025, 3, 17, 0, 5, 0, 0, loc).UTC()
	svc := f.service(clock.At(now))

	first, err := svc.SweepAutoClose(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := svc.SweepAutoClose(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestSweepAutoClose_FailureIsolation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	loc := mexicoCity(t)

	// Second stale employee alongside the first.
	emp := f.employees.employees[testEmployeeID]
	emp.ID = "employee-2"
	f.employees.employees[emp.ID] = emp

	checkIn := time.Date(2025, 3, 10, 8, 0, 0, 0, loc).UTC()
	broken := openSessionAt(t, f, testEmployeeID, checkIn)
	healthy := openSessionAt(t, f, "employee-2", checkIn)

	f.sessions.failOn[broken.ID] = fmt.Errorf("write conflict")

	now := time.Date(2025, 3, 17, 0, 5, 0, 0, loc).UTC()
	svc := f.service(clock.At(now))

	closed, err := svc.SweepAutoClose(context.Background())
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, healthy.ID, closed[0].ID)

	assert.Equal(t, attendance.StatusActive, f.sessions.sessions[broken.ID].Status)
	assert.Equal(t, attendance.StatusCompleted, f.sessions.sessions[healthy.ID].Status)
}
