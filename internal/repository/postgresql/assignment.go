package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) employee.AssignmentRepository {
	return &assignmentRepository{db: db}
}

const assignmentColumns = `
	a.id, a.employee_id, a.branch_id, a.status,
	a.schedule_starts_at, a.schedule_ends_at, a.late_tolerance_minutes,
	a.created_at, a.updated_at
`

func scanAssignment(row pgx.Row) (employee.BranchAssignment, error) {
	var a employee.BranchAssignment
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.BranchID, &a.Status,
		&a.ScheduleStartsAt, &a.ScheduleEndsAt, &a.LateToleranceMinutes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements employee.AssignmentRepository. The table carries a
// unique (employee_id, branch_id) constraint.
func (r *assignmentRepository) Create(ctx context.Context, assignment employee.BranchAssignment) (employee.BranchAssignment, error) {
	q := GetQuerier(ctx, r.db)

	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}

	query := `
		INSERT INTO branch_assignments (
			id, employee_id, branch_id, status,
			schedule_starts_at, schedule_ends_at, late_tolerance_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.ID,
		assignment.EmployeeID,
		assignment.BranchID,
		assignment.Status,
		assignment.ScheduleStartsAt,
		assignment.ScheduleEndsAt,
		assignment.LateToleranceMinutes,
	).Scan(&assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.BranchAssignment{}, employee.ErrAssignmentExists
		}
		return employee.BranchAssignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// GetByEmployeeAndBranch implements employee.AssignmentRepository.
func (r *assignmentRepository) GetByEmployeeAndBranch(ctx context.Context, employeeID string, branchID string) (employee.BranchAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM branch_assignments a
		WHERE a.employee_id = $1
		  AND a.branch_id = $2
	`

	a, err := scanAssignment(q.QueryRow(ctx, query, employeeID, branchID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.BranchAssignment{}, employee.ErrAssignmentNotFound
		}
		return employee.BranchAssignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	return a, nil
}

// GetActiveByEmployee implements employee.AssignmentRepository.
func (r *assignmentRepository) GetActiveByEmployee(ctx context.Context, employeeID string) ([]employee.BranchAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM branch_assignments a
		WHERE a.employee_id = $1
		  AND a.status = 'active'
		ORDER BY a.created_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []employee.BranchAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// Update implements employee.AssignmentRepository.
func (r *assignmentRepository) Update(ctx context.Context, assignment employee.BranchAssignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branch_assignments
		SET status = $1,
			schedule_starts_at = $2,
			schedule_ends_at = $3,
			late_tolerance_minutes = $4,
			updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		assignment.Status,
		assignment.ScheduleStartsAt,
		assignment.ScheduleEndsAt,
		assignment.LateToleranceMinutes,
		assignment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrAssignmentNotFound
	}

	return nil
}

// SetStatus implements employee.AssignmentRepository.
func (r *assignmentRepository) SetStatus(ctx context.Context, id string, status employee.AssignmentStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branch_assignments
		SET status = $1,
			updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to set assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrAssignmentNotFound
	}

	return nil
}
