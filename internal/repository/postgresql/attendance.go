package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	s.id, s.employee_id, s.branch_id, s.business_id,
	s.check_in_at, s.timezone, s.check_in_latitude, s.check_in_longitude, s.is_late,
	s.check_out_at, s.check_out_latitude, s.check_out_longitude,
	s.status, s.auto_closed, s.created_at, s.updated_at
`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.BranchID, &s.BusinessID,
		&s.CheckInAt, &s.Timezone, &s.CheckInLatitude, &s.CheckInLongitude, &s.IsLate,
		&s.CheckOutAt, &s.CheckOutLatitude, &s.CheckOutLongitude,
		&s.Status, &s.AutoClosed, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements attendance.SessionRepository.
//
// The attendance_sessions table carries a partial unique index on
// (employee_id) WHERE status = 'active', so two concurrent check-ins cannot
// both commit; the loser surfaces as ErrDuplicateSession.
func (r *sessionRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, branch_id, business_id,
			check_in_at, timezone, check_in_latitude, check_in_longitude, is_late,
			status, auto_closed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.ID,
		session.EmployeeID,
		session.BranchID,
		session.BusinessID,
		session.CheckInAt,
		session.Timezone,
		session.CheckInLatitude,
		session.CheckInLongitude,
		session.IsLate,
		session.Status,
		session.AutoClosed,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Session{}, attendance.ErrDuplicateSession
		}
		return attendance.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Update implements attendance.SessionRepository.
func (r *sessionRepository) Update(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET check_out_at = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			status = $4,
			auto_closed = $5,
			updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		session.CheckOutAt,
		session.CheckOutLatitude,
		session.CheckOutLongitude,
		session.Status,
		session.AutoClosed,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string, businessID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `,
			   e.full_name, b.name
		FROM attendance_sessions s
		JOIN employees e ON e.id = s.employee_id
		JOIN branches b ON b.id = s.branch_id
		WHERE s.id = $1
		  AND s.business_id = $2
	`

	var s attendance.Session
	err := q.QueryRow(ctx, query, id, businessID).Scan(
		&s.ID, &s.EmployeeID, &s.BranchID, &s.BusinessID,
		&s.CheckInAt, &s.Timezone, &s.CheckInLatitude, &s.CheckInLongitude, &s.IsLate,
		&s.CheckOutAt, &s.CheckOutLatitude, &s.CheckOutLongitude,
		&s.Status, &s.AutoClosed, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.BranchName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return s, nil
}

// GetActiveByEmployee implements attendance.SessionRepository.
func (r *sessionRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (*attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1
		  AND s.status = 'active'
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	return &s, nil
}

// GetByEmployeeAndLocalDate implements attendance.SessionRepository. The
// date comparison happens in the session's stored timezone, not UTC.
func (r *sessionRepository) GetByEmployeeAndLocalDate(ctx context.Context, employeeID string, dateLocal string) (*attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1
		  AND (s.check_in_at AT TIME ZONE s.timezone)::date = $2::date
		ORDER BY s.check_in_at DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, dateLocal))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by local date: %w", err)
	}

	return &s, nil
}

// ListStaleActive implements attendance.SessionRepository.
func (r *sessionRepository) ListStaleActive(ctx context.Context, cutoff time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.status = 'active'
		  AND s.check_in_at < $1
		ORDER BY s.check_in_at
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListCompletedByEmployee implements attendance.SessionRepository.
func (r *sessionRepository) ListCompletedByEmployee(ctx context.Context, employeeID string, businessID string, from, to time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		WHERE s.employee_id = $1
		  AND s.business_id = $2
		  AND s.status = 'completed'
		  AND s.check_in_at >= $3
		  AND s.check_in_at < $4
		ORDER BY s.check_in_at
	`

	rows, err := q.Query(ctx, query, employeeID, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListByBusiness implements attendance.SessionRepository.
func (r *sessionRepository) ListByBusiness(ctx context.Context, businessID string, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	conditions = append(conditions, fmt.Sprintf("s.business_id = $%d", len(args)+1))
	args = append(args, businessID)

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", len(args)+1))
		args = append(args, *filter.EmployeeID)
	}
	if filter.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("s.branch_id = $%d", len(args)+1))
		args = append(args, *filter.BranchID)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("s.check_in_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("s.check_in_at < $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_sessions s " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT ` + sessionColumns + `,
			   e.full_name, b.name
		FROM attendance_sessions s
		JOIN employees e ON e.id = s.employee_id
		JOIN branches b ON b.id = s.branch_id
		` + where + `
		ORDER BY s.check_in_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		var s attendance.Session
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.BranchID, &s.BusinessID,
			&s.CheckInAt, &s.Timezone, &s.CheckInLatitude, &s.CheckInLongitude, &s.IsLate,
			&s.CheckOutAt, &s.CheckOutLatitude, &s.CheckOutLongitude,
			&s.Status, &s.AutoClosed, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName, &s.BranchName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, total, nil
}

func collectSessions(rows pgx.Rows) ([]attendance.Session, error) {
	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
