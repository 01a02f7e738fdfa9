package payroll

import "errors"

var (
	ErrSessionNotCompleted = errors.New("session is not completed: metrics require a check-out")
	ErrInvalidDateRange    = errors.New("date range is invalid: from must not be after to")
)
