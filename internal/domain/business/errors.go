package business

import "errors"

var (
	ErrBusinessNotFound = errors.New("business not found")
)
