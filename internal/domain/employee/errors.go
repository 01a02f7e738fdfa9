package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNotActive  = errors.New("employee is not active")
	ErrPhoneNumberExists  = errors.New("phone number already registered in this business")
	ErrInvalidHourlyRate  = errors.New("hourly rate must be greater than zero")
	ErrAssignmentNotFound = errors.New("branch assignment not found")
	ErrAssignmentExists   = errors.New("employee is already assigned to this branch")
	ErrAssignmentInactive = errors.New("branch assignment is inactive")
	ErrCannotDeleteOpen   = errors.New("cannot delete an employee with an open session")
)
