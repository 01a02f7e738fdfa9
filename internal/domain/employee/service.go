package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string, businessID string) (EmployeeResponse, error)
	List(ctx context.Context, businessID string) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete soft-deletes an employee. Fails with ErrCannotDeleteOpen while
	// the employee still has an active session.
	Delete(ctx context.Context, id string, businessID string) error

	// AssignBranch links an employee to a branch, optionally with a schedule
	// override.
	AssignBranch(ctx context.Context, businessID string, req AssignBranchRequest) (AssignmentResponse, error)

	// SetAssignmentStatus activates or deactivates a single assignment
	// without touching the employee or sibling assignments.
	SetAssignmentStatus(ctx context.Context, businessID, employeeID, branchID string, status AssignmentStatus) error

	// ListAssignments returns the employee's active assignments.
	ListAssignments(ctx context.Context, businessID, employeeID string) ([]AssignmentResponse, error)
}
