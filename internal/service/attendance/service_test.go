package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== in-memory fakes =====

type fakeSessionRepo struct {
	sessions map[string]*attendance.Session
	nextID   int
	failOn   map[string]error // session ID -> error on Update
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]*attendance.Session),
		failOn:   make(map[string]error),
	}
}

func (r *fakeSessionRepo) Create(_ context.Context, s attendance.Session) (attendance.Session, error) {
	// Mirrors the partial unique index: one active session per employee.
	for _, existing := range r.sessions {
		if existing.EmployeeID == s.EmployeeID && existing.Status == attendance.StatusActive {
			return attendance.Session{}, attendance.ErrDuplicateSession
		}
	}
	r.nextID++
	s.ID = fmt.Sprintf("session-%d", r.nextID)
	r.sessions[s.ID] = &s
	return s, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s attendance.Session) error {
	if err, ok := r.failOn[s.ID]; ok {
		return err
	}
	if _, ok := r.sessions[s.ID]; !ok {
		return attendance.ErrSessionNotFound
	}
	r.sessions[s.ID] = &s
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string, businessID string) (attendance.Session, error) {
	s, ok := r.sessions[id]
	if !ok || s.BusinessID != businessID {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return *s, nil
}

func (r *fakeSessionRepo) GetActiveByEmployee(_ context.Context, employeeID string) (*attendance.Session, error) {
	for _, s := range r.sessions {
		if s.EmployeeID == employeeID && s.Status == attendance.StatusActive {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) GetByEmployeeAndLocalDate(_ context.Context, employeeID string, dateLocal string) (*attendance.Session, error) {
	var latest *attendance.Session
	for _, s := range r.sessions {
		if s.EmployeeID != employeeID || s.CheckInAt == nil {
			continue
		}
		if s.CheckInLocal().Format("2006-01-02") != dateLocal {
			continue
		}
		if latest == nil || s.CheckInAt.After(*latest.CheckInAt) {
			copied := *s
			latest = &copied
		}
	}
	return latest, nil
}

func (r *fakeSessionRepo) ListStaleActive(_ context.Context, cutoff time.Time) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range r.sessions {
		if s.Status == attendance.StatusActive && s.CheckInAt != nil && s.CheckInAt.Before(cutoff) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListCompletedByEmployee(_ context.Context, employeeID string, businessID string, from, to time.Time) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range r.sessions {
		if s.EmployeeID != employeeID || s.BusinessID != businessID {
			continue
		}
		if s.Status != attendance.StatusCompleted || s.CheckInAt == nil {
			continue
		}
		if s.CheckInAt.Before(from) || s.CheckInAt.After(to) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSessionRepo) ListByBusiness(_ context.Context, businessID string, _ attendance.SessionFilter) ([]attendance.Session, int64, error) {
	var out []attendance.Session
	for _, s := range r.sessions {
		if s.BusinessID == businessID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string, businessID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.BusinessID != businessID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByBusinessID(_ context.Context, businessID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.BusinessID == businessID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(r.employees, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments []employee.BranchAssignment
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a employee.BranchAssignment) (employee.BranchAssignment, error) {
	r.assignments = append(r.assignments, a)
	return a, nil
}

func (r *fakeAssignmentRepo) GetByEmployeeAndBranch(_ context.Context, employeeID string, branchID string) (employee.BranchAssignment, error) {
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID && a.BranchID == branchID {
			return a, nil
		}
	}
	return employee.BranchAssignment{}, employee.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) GetActiveByEmployee(_ context.Context, employeeID string) ([]employee.BranchAssignment, error) {
	var out []employee.BranchAssignment
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID && a.Status == employee.AssignmentActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, a employee.BranchAssignment) error {
	for i := range r.assignments {
		if r.assignments[i].ID == a.ID {
			r.assignments[i] = a
			return nil
		}
	}
	return employee.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) SetStatus(_ context.Context, id string, status employee.AssignmentStatus) error {
	for i := range r.assignments {
		if r.assignments[i].ID == id {
			r.assignments[i].Status = status
			return nil
		}
	}
	return employee.ErrAssignmentNotFound
}

type fakeBranchRepo struct {
	branches    map[string]branch.Branch
	assignments *fakeAssignmentRepo
	failGetByID bool
}

func (r *fakeBranchRepo) Create(_ context.Context, b branch.Branch) (branch.Branch, error) {
	r.branches[b.ID] = b
	return b, nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id string, _ string) (branch.Branch, error) {
	if r.failGetByID {
		return branch.Branch{}, fmt.Errorf("repository unavailable")
	}
	b, ok := r.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (r *fakeBranchRepo) GetByBusinessID(_ context.Context, businessID string) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, b := range r.branches {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBranchRepo) Update(_ context.Context, _ branch.UpdateBranchRequest) error { return nil }

func (r *fakeBranchRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

func (r *fakeBranchRepo) GetActiveByEmployeeID(_ context.Context, employeeID string, _ string) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, a := range r.assignments.assignments {
		if a.EmployeeID != employeeID || a.Status != employee.AssignmentActive {
			continue
		}
		if b, ok := r.branches[a.BranchID]; ok && b.Status == branch.StatusActive {
			out = append(out, b)
		}
	}
	return out, nil
}

// ===== fixtures =====

const (
	testBusinessID = "business-1"
	testEmployeeID = "employee-1"
	testBranchID   = "branch-mx"

	// Branch geofence center (Mexico City Zocalo).
	branchLat = 19.4326
	branchLon = -99.1332
)

func mexicoCity(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	return loc
}

func wallClock(t *testing.T, hhmmss string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04:05", hhmmss)
	require.NoError(t, err)
	return parsed
}

type fixture struct {
	sessions    *fakeSessionRepo
	employees   *fakeEmployeeRepo
	assignments *fakeAssignmentRepo
	branches    *fakeBranchRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sessions:    newFakeSessionRepo(),
		employees:   &fakeEmployeeRepo{employees: make(map[string]employee.Employee)},
		assignments: &fakeAssignmentRepo{},
	}
	f.branches = &fakeBranchRepo{
		branches:    make(map[string]branch.Branch),
		assignments: f.assignments,
	}

	f.branches.branches[testBranchID] = branch.Branch{
		ID:                   testBranchID,
		BusinessID:           testBusinessID,
		Name:                 "Centro",
		Latitude:             branchLat,
		Longitude:            branchLon,
		RadiusMeters:         100,
		Timezone:             "America/Mexico_City",
		OpensAt:              wallClock(t, "08:00:00"),
		ClosesAt:             wallClock(t, "18:00:00"),
		LateToleranceMinutes: 10,
		Status:               branch.StatusActive,
	}

	f.employees.employees[testEmployeeID] = employee.Employee{
		ID:          testEmployeeID,
		BusinessID:  testBusinessID,
		FullName:    "Maria Lopez",
		PhoneNumber: "+5215512345678",
		HourlyRate:  decimal.NewFromInt(100),
		Status:      employee.StatusActive,
	}

	f.assignments.assignments = append(f.assignments.assignments, employee.BranchAssignment{
		ID:         "assignment-1",
		EmployeeID: testEmployeeID,
		BranchID:   testBranchID,
		Status:     employee.AssignmentActive,
	})

	return f
}

func (f *fixture) service(clk clock.Clock) attendance.AttendanceService {
	return NewAttendanceService(f.sessions, f.employees, f.assignments, f.branches, clk)
}

func atBranchRequest() attendance.CheckRequest {
	return attendance.CheckRequest{
		EmployeeID: testEmployeeID,
		BusinessID: testBusinessID,
		Latitude:   branchLat,
		Longitude:  branchLon,
	}
}

func localInstant(t *testing.T, hhmmss string) time.Time {
	t.Helper()
	clockTime := wallClock(t, hhmmss)
	return time.Date(2025, 3, 17,
		clockTime.Hour(), clockTime.Minute(), clockTime.Second(), 0, mexicoCity(t)).UTC()
}

// ===== action determiner =====

func TestDetermineAction(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	lat, lon := branchLat, branchLon

	cases := []struct {
		name    string
		session *attendance.Session
		want    attendance.Action
	}{
		{"no session today", nil, attendance.ActionCheckIn},
		{
			"session without check-in time",
			&attendance.Session{CheckInLatitude: &lat, CheckInLongitude: &lon},
			attendance.ActionCheckIn,
		},
		{
			"session without check-in coordinates",
			&attendance.Session{CheckInAt: &now},
			attendance.ActionCheckIn,
		},
		{
			"open session",
			&attendance.Session{CheckInAt: &now, CheckInLatitude: &lat, CheckInLongitude: &lon},
			attendance.ActionCheckOut,
		},
		{
			"completed session starts a new cycle",
			&attendance.Session{CheckInAt: &now, CheckInLatitude: &lat, CheckInLongitude: &lon, CheckOutAt: &now},
			attendance.ActionCheckIn,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetermineAction(tc.session))
		})
	}
}

// ===== check-in =====

func TestCheck_AutoDeterminesCheckIn(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "08:05:00")))

	resp, err := svc.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	assert.Equal(t, string(attendance.ActionCheckIn), resp.Action)
	assert.Equal(t, string(attendance.StatusActive), resp.Status)
	assert.Equal(t, "America/Mexico_City", resp.Timezone)
	require.NotNil(t, resp.IsLate)
	assert.False(t, *resp.IsLate)
	require.NotNil(t, resp.DistanceM)
	assert.LessOrEqual(t, *resp.DistanceM, 100.0)
}

func TestCheck_LateTwoMinutesPastTolerance(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	// Schedule 08:00, tolerance 10min; 08:12 is two minutes late.
	svc := f.service(clock.At(localInstant(t, "08:12:00")))

	resp, err := svc.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.IsLate)
	assert.True(t, *resp.IsLate)
}

func TestCheck_OnTimeAtExactAllowedStart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	// Exactly scheduled start + tolerance is on time.
	svc := f.service(clock.At(localInstant(t, "08:10:00")))

	resp, err := svc.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.IsLate)
	assert.False(t, *resp.IsLate)
}

func TestCheck_LateOneMinuteAfterAllowedStart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "08:11:00")))

	resp, err := svc.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.IsLate)
	assert.True(t, *resp.IsLate)
}

func TestCheck_OnTimeAtExactScheduledStart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "08:00:00")))

	resp, err := svc.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.IsLate)
	assert.False(t, *resp.IsLate)
}

func TestCheck_ScheduleOverrideDrivesLateness(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	start := wallClock(t, "09:00:00")
	end := wallClock(t, "17:00:00")
	tolerance := 0
	f.assignments.assignments[0].ScheduleStartsAt = &start
	f.assignments.assignments[0].ScheduleEndsAt = &end
	f.assignments.assignments[0].LateToleranceMinutes = &tolerance

	// 08:12 would be late on branch hours, but the override starts at 09:00.
	svc := f.service(clock.At(localInstant(t, "08:12:00")))

	resp, err := svc.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.IsLate)
	assert.False(t, *resp.IsLate)
}

func TestCheck_InactiveEmployeeRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	emp := f.employees.employees[testEmployeeID]
	emp.Status = employee.StatusInactive
	f.employees.employees[testEmployeeID] = emp

	svc := f.service(clock.At(localInstant(t, "08:00:00")))

	_, err := svc.Check(context.Background(), atBranchRequest())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotActive)
}

func TestCheck_NoActiveAssignment(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.assignments.assignments[0].Status = employee.AssignmentInactive

	svc := f.service(clock.At(localInstant(t, "08:00:00")))

	_, err := svc.Check(context.Background(), atBranchRequest())
	assert.ErrorIs(t, err, attendance.ErrNotAssigned)
}

func TestCheck_OutsideGeofence(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "08:00:00")))

	req := atBranchRequest()
	req.Latitude = 19.4270 // ~4km away
	req.Longitude = -99.1677

	_, err := svc.Check(context.Background(), req)

	var geofenceErr *attendance.GeofenceError
	require.ErrorAs(t, err, &geofenceErr)
	assert.Greater(t, geofenceErr.NearestDistanceMeters, 100.0)
}

func TestCheck_InvalidCoordinateRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "08:00:00")))

	req := atBranchRequest()
	req.Latitude = 91

	_, err := svc.Check(context.Background(), req)
	assert.Error(t, err)
}

func TestCheck_ExplicitCheckInWithOpenSessionRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "08:00:00")))

	_, err := svc.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	// Explicit check_in overrides auto-determination but the invariant holds.
	later := f.service(clock.At(localInstant(t, "12:00:00")))
	action := string(attendance.ActionCheckIn)
	req := atBranchRequest()
	req.Action = &action

	_, err = later.Check(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateSession)
}

func TestCheck_ConcurrentCheckInLosesOnConstraint(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "08:00:00")))

	// Pre-insert an active session directly, simulating a concurrent winner
	// that committed between the precondition read and our insert.
	now := localInstant(t, "07:59:59")
	_, err := f.sessions.Create(context.Background(), attendance.Session{
		EmployeeID: testEmployeeID,
		BranchID:   testBranchID,
		BusinessID: testBusinessID,
		CheckInAt:  &now,
		Timezone:   "America/Mexico_City",
		Status:     attendance.StatusActive,
	})
	require.NoError(t, err)

	action := string(attendance.ActionCheckIn)
	req := atBranchRequest()
	req.Action = &action

	_, err = svc.Check(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateSession)
}

// ===== check-out =====

func TestCheck_AutoDeterminesCheckOut(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	morning := f.service(clock.At(localInstant(t, "08:12:00")))
	_, err := morning.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	afternoon := f.service(clock.At(localInstant(t, "16:12:00")))
	resp, err := afternoon.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	assert.Equal(t, string(attendance.ActionCheckOut), resp.Action)
	assert.Equal(t, string(attendance.StatusCompleted), resp.Status)
	require.NotNil(t, resp.CheckOutAt)
	// The lateness flag stamped at check-in survives the close.
	require.NotNil(t, resp.IsLate)
	assert.True(t, *resp.IsLate)
}

func TestCheck_CheckOutWithoutOpenSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := f.service(clock.At(localInstant(t, "16:00:00")))

	action := string(attendance.ActionCheckOut)
	req := atBranchRequest()
	req.Action = &action

	_, err := svc.Check(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestCheck_CheckOutAtDifferentBranchRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// Second branch ~4km away, also assigned.
	otherID := "branch-other"
	f.branches.branches[otherID] = branch.Branch{
		ID:                   otherID,
		BusinessID:           testBusinessID,
		Name:                 "Reforma",
		Latitude:             19.4270,
		Longitude:            -99.1677,
		RadiusMeters:         100,
		Timezone:             "America/Mexico_City",
		OpensAt:              wallClock(t, "08:00:00"),
		ClosesAt:             wallClock(t, "18:00:00"),
		LateToleranceMinutes: 10,
		Status:               branch.StatusActive,
	}
	f.assignments.assignments = append(f.assignments.assignments, employee.BranchAssignment{
		ID:         "assignment-2",
		EmployeeID: testEmployeeID,
		BranchID:   otherID,
		Status:     employee.AssignmentActive,
	})

	morning := f.service(clock.At(localInstant(t, "08:00:00")))
	_, err := morning.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	// Check-out attempt from the other branch's location.
	afternoon := f.service(clock.At(localInstant(t, "16:00:00")))
	req := atBranchRequest()
	req.Latitude = 19.4270
	req.Longitude = -99.1677

	_, err = afternoon.Check(context.Background(), req)

	var mismatch *attendance.BranchMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, testBranchID, mismatch.SessionBranchID)
	assert.Equal(t, "Centro", mismatch.SessionBranchName)
}

func TestCheck_FullDayScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	morning := f.service(clock.At(localInstant(t, "08:12:00")))
	in, err := morning.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)
	require.NotNil(t, in.IsLate)
	assert.True(t, *in.IsLate)

	afternoon := f.service(clock.At(localInstant(t, "16:12:00")))
	out, err := afternoon.Check(context.Background(), atBranchRequest())
	require.NoError(t, err)

	stored := f.sessions.sessions[out.ID]
	require.NotNil(t, stored.CheckOutAt)
	assert.Equal(t, 8.0, stored.CheckOutAt.Sub(*stored.CheckInAt).Hours())
	assert.Equal(t, attendance.StatusCompleted, stored.Status)
	assert.False(t, stored.AutoClosed)
}
