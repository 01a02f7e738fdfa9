package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	assignmentRepo employee.AssignmentRepository
	branchRepo     branch.BranchRepository
	sessionRepo    attendance.SessionRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	assignmentRepo employee.AssignmentRepository,
	branchRepo branch.BranchRepository,
	sessionRepo attendance.SessionRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		assignmentRepo: assignmentRepo,
		branchRepo:     branchRepo,
		sessionRepo:    sessionRepo,
	}
}

// Create implements employee.EmployeeService. New employees start active so
// they can check in as soon as a branch is assigned.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		BusinessID:  req.BusinessID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		HourlyRate:  req.HourlyRate,
		Status:      employee.StatusActive,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string, businessID string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id, businessID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, businessID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID, req.BusinessID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		current.PhoneNumber = *req.PhoneNumber
	}
	if req.HourlyRate != nil {
		current.HourlyRate = *req.HourlyRate
	}
	if req.Status != nil {
		current.Status = employee.EmployeeStatus(*req.Status)
	}

	if err := s.employeeRepo.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(current), nil
}

// Delete implements employee.EmployeeService. An employee with an open
// session cannot be deleted: the session must be checked out or swept first.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string, businessID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id, businessID); err != nil {
		return err
	}

	open, err := s.sessionRepo.GetActiveByEmployee(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check open session: %w", err)
	}
	if open != nil {
		return employee.ErrCannotDeleteOpen
	}

	return s.employeeRepo.Delete(ctx, id, businessID)
}

// AssignBranch implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignBranch(ctx context.Context, businessID string, req employee.AssignBranchRequest) (employee.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.AssignmentResponse{}, err
	}

	// Both sides must exist in this tenant.
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, businessID); err != nil {
		return employee.AssignmentResponse{}, err
	}
	if _, err := s.branchRepo.GetByID(ctx, req.BranchID, businessID); err != nil {
		return employee.AssignmentResponse{}, err
	}

	assignment := employee.BranchAssignment{
		EmployeeID:           req.EmployeeID,
		BranchID:             req.BranchID,
		Status:               employee.AssignmentActive,
		LateToleranceMinutes: req.LateToleranceMinutes,
	}
	if req.ScheduleStartsAt != nil {
		t, _ := validator.IsValidTimeOfDay(*req.ScheduleStartsAt)
		assignment.ScheduleStartsAt = &t
	}
	if req.ScheduleEndsAt != nil {
		t, _ := validator.IsValidTimeOfDay(*req.ScheduleEndsAt)
		assignment.ScheduleEndsAt = &t
	}

	created, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		if errors.Is(err, employee.ErrAssignmentExists) {
			// Re-assignment reactivates and replaces the override.
			existing, getErr := s.assignmentRepo.GetByEmployeeAndBranch(ctx, req.EmployeeID, req.BranchID)
			if getErr != nil {
				return employee.AssignmentResponse{}, getErr
			}
			existing.Status = employee.AssignmentActive
			existing.ScheduleStartsAt = assignment.ScheduleStartsAt
			existing.ScheduleEndsAt = assignment.ScheduleEndsAt
			existing.LateToleranceMinutes = assignment.LateToleranceMinutes
			if updErr := s.assignmentRepo.Update(ctx, existing); updErr != nil {
				return employee.AssignmentResponse{}, updErr
			}
			return employee.ToAssignmentResponse(existing), nil
		}
		return employee.AssignmentResponse{}, err
	}

	return employee.ToAssignmentResponse(created), nil
}

// SetAssignmentStatus implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetAssignmentStatus(ctx context.Context, businessID, employeeID, branchID string, status employee.AssignmentStatus) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, businessID); err != nil {
		return err
	}

	assignment, err := s.assignmentRepo.GetByEmployeeAndBranch(ctx, employeeID, branchID)
	if err != nil {
		return err
	}

	return s.assignmentRepo.SetStatus(ctx, assignment.ID, status)
}

// ListAssignments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListAssignments(ctx context.Context, businessID, employeeID string) ([]employee.AssignmentResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, businessID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, employee.ToAssignmentResponse(a))
	}
	return responses, nil
}
