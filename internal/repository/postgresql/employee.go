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

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.business_id, e.full_name, e.phone_number, e.hourly_rate,
	e.status, e.created_at, e.updated_at, e.deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.BusinessID, &e.FullName, &e.PhoneNumber, &e.HourlyRate,
		&e.Status, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}

	query := `
		INSERT INTO employees (
			id, business_id, full_name, phone_number, hourly_rate, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.BusinessID,
		emp.FullName,
		emp.PhoneNumber,
		emp.HourlyRate,
		emp.Status,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrPhoneNumberExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, businessID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.id = $1
		  AND e.business_id = $2
		  AND e.deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByBusinessID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByBusinessID(ctx context.Context, businessID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.business_id = $1
		  AND e.deleted_at IS NULL
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1,
			phone_number = $2,
			hourly_rate = $3,
			status = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND business_id = $6
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		emp.FullName,
		emp.PhoneNumber,
		emp.HourlyRate,
		emp.Status,
		emp.ID,
		emp.BusinessID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrPhoneNumberExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository: soft delete plus status
// flip so the employee can no longer check in.
func (r *employeeRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET status = 'inactive',
			deleted_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
		  AND business_id = $2
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
