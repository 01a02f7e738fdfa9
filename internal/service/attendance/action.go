package attendance

import (
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
)

// DetermineAction decides check-in vs check-out from the employee's session
// for today. Rules, first match wins:
//
//	no session for today                  -> check_in
//	session missing check-in time/coords  -> check_in
//	checked in, not checked out           -> check_out
//	checked in and out                    -> check_in (new day cycle)
func DetermineAction(today *attendance.Session) attendance.Action {
	if today == nil {
		return attendance.ActionCheckIn
	}
	if !today.HasCheckIn() {
		return attendance.ActionCheckIn
	}
	if !today.HasCheckOut() {
		return attendance.ActionCheckOut
	}
	return attendance.ActionCheckIn
}
