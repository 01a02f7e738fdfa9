package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, businessID string) (Employee, error)
	GetByBusinessID(ctx context.Context, businessID string) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string, businessID string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment BranchAssignment) (BranchAssignment, error)

	// GetByEmployeeAndBranch returns the assignment of an employee to a
	// branch regardless of assignment status.
	GetByEmployeeAndBranch(ctx context.Context, employeeID string, branchID string) (BranchAssignment, error)

	// GetActiveByEmployee returns the employee's active assignments.
	GetActiveByEmployee(ctx context.Context, employeeID string) ([]BranchAssignment, error)

	Update(ctx context.Context, assignment BranchAssignment) error

	// SetStatus flips a single assignment without touching the employee's
	// global status or any sibling assignment.
	SetStatus(ctx context.Context, id string, status AssignmentStatus) error
}
