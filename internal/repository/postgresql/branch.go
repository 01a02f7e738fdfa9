package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type branchRepository struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepository{db: db}
}

const branchColumns = `
	b.id, b.business_id, b.name, b.address,
	b.latitude, b.longitude, b.radius_meters, b.timezone,
	b.opens_at, b.closes_at, b.late_tolerance_minutes,
	b.status, b.created_at, b.updated_at, b.deleted_at
`

func scanBranch(row pgx.Row) (branch.Branch, error) {
	var b branch.Branch
	err := row.Scan(
		&b.ID, &b.BusinessID, &b.Name, &b.Address,
		&b.Latitude, &b.Longitude, &b.RadiusMeters, &b.Timezone,
		&b.OpensAt, &b.ClosesAt, &b.LateToleranceMinutes,
		&b.Status, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	return b, err
}

// Create implements branch.BranchRepository.
func (r *branchRepository) Create(ctx context.Context, newBranch branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	if newBranch.ID == "" {
		newBranch.ID = uuid.New().String()
	}

	query := `
		INSERT INTO branches (
			id, business_id, name, address, latitude, longitude, radius_meters,
			timezone, opens_at, closes_at, late_tolerance_minutes, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newBranch.ID,
		newBranch.BusinessID,
		newBranch.Name,
		newBranch.Address,
		newBranch.Latitude,
		newBranch.Longitude,
		newBranch.RadiusMeters,
		newBranch.Timezone,
		newBranch.OpensAt,
		newBranch.ClosesAt,
		newBranch.LateToleranceMinutes,
		newBranch.Status,
	).Scan(&newBranch.CreatedAt, &newBranch.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return branch.Branch{}, branch.ErrBranchNameExists
		}
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return newBranch, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepository) GetByID(ctx context.Context, id string, businessID string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + branchColumns + `
		FROM branches b
		WHERE b.id = $1
		  AND b.business_id = $2
		  AND b.deleted_at IS NULL
	`

	b, err := scanBranch(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return b, nil
}

// GetByBusinessID implements branch.BranchRepository.
func (r *branchRepository) GetByBusinessID(ctx context.Context, businessID string) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + branchColumns + `
		FROM branches b
		WHERE b.business_id = $1
		  AND b.deleted_at IS NULL
		ORDER BY b.name
	`

	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	return collectBranches(rows)
}

// Update implements branch.BranchRepository.
func (r *branchRepository) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.Latitude != nil {
		addSet("latitude", *req.Latitude)
	}
	if req.Longitude != nil {
		addSet("longitude", *req.Longitude)
	}
	if req.RadiusMeters != nil {
		addSet("radius_meters", *req.RadiusMeters)
	}
	if req.Timezone != nil {
		addSet("timezone", *req.Timezone)
	}
	if req.OpensAt != nil {
		addSet("opens_at", *req.OpensAt)
	}
	if req.ClosesAt != nil {
		addSet("closes_at", *req.ClosesAt)
	}
	if req.LateToleranceMinutes != nil {
		addSet("late_tolerance_minutes", *req.LateToleranceMinutes)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE branches
		SET %s
		WHERE id = $%d
		  AND business_id = $%d
		  AND deleted_at IS NULL
	`, strings.Join(sets, ", "), len(args)+1, len(args)+2)
	args = append(args, req.ID, req.BusinessID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return branch.ErrBranchNameExists
		}
		return fmt.Errorf("failed to update branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

// Delete implements branch.BranchRepository: a soft delete that also flips
// the status so the branch drops out of geofence candidate sets.
func (r *branchRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches
		SET status = 'inactive',
			deleted_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
		  AND business_id = $2
		  AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

// GetActiveByEmployeeID implements branch.BranchRepository.
func (r *branchRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string, businessID string) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + branchColumns + `
		FROM branches b
		JOIN branch_assignments a ON a.branch_id = b.id
		WHERE a.employee_id = $1
		  AND a.status = 'active'
		  AND b.business_id = $2
		  AND b.status = 'active'
		  AND b.deleted_at IS NULL
		ORDER BY b.name
	`

	rows, err := q.Query(ctx, query, employeeID, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned branches: %w", err)
	}
	defer rows.Close()

	return collectBranches(rows)
}

func collectBranches(rows pgx.Rows) ([]branch.Branch, error) {
	var branches []branch.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}
	return branches, nil
}
