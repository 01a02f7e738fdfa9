package branch

import (
	"context"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/business"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
)

type BranchServiceImpl struct {
	branchRepo   branch.BranchRepository
	businessRepo business.BusinessRepository
}

func NewBranchService(branchRepo branch.BranchRepository, businessRepo business.BusinessRepository) branch.BranchService {
	return &BranchServiceImpl{branchRepo: branchRepo, businessRepo: businessRepo}
}

// Create implements branch.BranchService.
func (s *BranchServiceImpl) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	if _, err := s.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		return branch.BranchResponse{}, err
	}

	opensAt, _ := validator.IsValidTimeOfDay(req.OpensAt)
	closesAt, _ := validator.IsValidTimeOfDay(req.ClosesAt)

	created, err := s.branchRepo.Create(ctx, branch.Branch{
		BusinessID:           req.BusinessID,
		Name:                 req.Name,
		Address:              req.Address,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		RadiusMeters:         req.RadiusMeters,
		Timezone:             req.Timezone,
		OpensAt:              opensAt,
		ClosesAt:             closesAt,
		LateToleranceMinutes: req.LateToleranceMinutes,
		Status:               branch.StatusActive,
	})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return branch.ToResponse(created), nil
}

// GetByID implements branch.BranchService.
func (s *BranchServiceImpl) GetByID(ctx context.Context, id string, businessID string) (branch.BranchResponse, error) {
	b, err := s.branchRepo.GetByID(ctx, id, businessID)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(b), nil
}

// List implements branch.BranchService.
func (s *BranchServiceImpl) List(ctx context.Context, businessID string) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, branch.ToResponse(b))
	}
	return responses, nil
}

// Update implements branch.BranchService.
func (s *BranchServiceImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	if err := s.branchRepo.Update(ctx, req); err != nil {
		return branch.BranchResponse{}, err
	}

	updated, err := s.branchRepo.GetByID(ctx, req.ID, req.BusinessID)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(updated), nil
}

// Delete implements branch.BranchService.
func (s *BranchServiceImpl) Delete(ctx context.Context, id string, businessID string) error {
	return s.branchRepo.Delete(ctx, id, businessID)
}
