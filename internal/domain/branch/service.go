package branch

import "context"

type BranchService interface {
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetByID(ctx context.Context, id string, businessID string) (BranchResponse, error)
	List(ctx context.Context, businessID string) ([]BranchResponse, error)
	Update(ctx context.Context, req UpdateBranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, id string, businessID string) error
}
