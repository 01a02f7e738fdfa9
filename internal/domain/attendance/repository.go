package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access for attendance sessions. All reads
// are scoped to a business where cross-tenant leakage is possible.
type SessionRepository interface {
	// Create inserts a new session. The store must reject a second active
	// session for the same employee atomically (unique partial index) and
	// surface that as ErrDuplicateSession.
	Create(ctx context.Context, session Session) (Session, error)

	// Update persists a session transition (check-out or auto-close).
	Update(ctx context.Context, session Session) error

	GetByID(ctx context.Context, id string, businessID string) (Session, error)

	// GetActiveByEmployee returns the employee's open session regardless of
	// branch or date, or nil when none is open.
	GetActiveByEmployee(ctx context.Context, employeeID string) (*Session, error)

	// GetByEmployeeAndLocalDate returns the employee's most recent session
	// whose check-in falls on the given local calendar date ("2006-01-02"),
	// or nil when there is none.
	GetByEmployeeAndLocalDate(ctx context.Context, employeeID string, dateLocal string) (*Session, error)

	// ListStaleActive returns active sessions whose check-in instant is
	// before the cutoff. Used by the auto-closeout sweep.
	ListStaleActive(ctx context.Context, cutoff time.Time) ([]Session, error)

	// ListCompletedByEmployee returns completed sessions with check-in
	// between from and to (UTC bounds widened by the caller to cover
	// branch-local dates).
	ListCompletedByEmployee(ctx context.Context, employeeID string, businessID string, from, to time.Time) ([]Session, error)

	ListByBusiness(ctx context.Context, businessID string, filter SessionFilter) ([]Session, int64, error)
}
