package schedule

import "errors"

var (
	ErrScheduleConfig = errors.New("no schedule configured: branch has no business hours and the assignment carries no complete override")
)
