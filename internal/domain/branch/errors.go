package branch

import "errors"

var (
	ErrBranchNotFound   = errors.New("branch not found")
	ErrBranchNameExists = errors.New("branch with this name already exists")
	ErrBranchInactive   = errors.New("branch is inactive")
)
