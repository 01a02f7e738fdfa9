package attendance

import (
	"context"
)

// AttendanceService is the geofenced attendance engine.
type AttendanceService interface {
	// Check processes a geolocated check attempt: determines check-in vs
	// check-out from session state (unless the request carries an explicit
	// action) and applies the transition.
	Check(ctx context.Context, req CheckRequest) (SessionResponse, error)

	// SweepAutoClose force-closes sessions left open for at least one full
	// calendar day, stamping a synthetic check-out at the branch's closing
	// time on the check-in date. Idempotent; per-session failures are
	// isolated. Returns the sessions it closed.
	SweepAutoClose(ctx context.Context) ([]Session, error)

	// GetSession retrieves a single session by ID.
	GetSession(ctx context.Context, id string, businessID string) (SessionResponse, error)

	// ListSessions retrieves sessions with filters (admin view).
	ListSessions(ctx context.Context, businessID string, filter SessionFilter) (ListSessionsResponse, error)
}
