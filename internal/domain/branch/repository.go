package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, branch Branch) (Branch, error)
	GetByID(ctx context.Context, id string, businessID string) (Branch, error)
	GetByBusinessID(ctx context.Context, businessID string) ([]Branch, error)
	Update(ctx context.Context, req UpdateBranchRequest) error

	// Delete soft-deletes a branch by flipping its status to inactive.
	Delete(ctx context.Context, id string, businessID string) error

	// GetActiveByEmployeeID returns the active branches the employee has an
	// active assignment to. This is the candidate set for the geofence
	// resolver.
	GetActiveByEmployeeID(ctx context.Context, employeeID string, businessID string) ([]Branch, error)
}
