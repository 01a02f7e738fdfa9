package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/clock"
)

// AttendanceJobs holds the background work of the attendance engine: the
// auto-closeout sweep for sessions nobody checked out of.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	clk           clock.Clock
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, clk clock.Clock) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		clk:           clk,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

// AutoCloseStaleSessions runs the sweep once per day. The job ticks hourly
// but only acts during 00:00-00:59 UTC; the sweep itself is idempotent, so
// an extra run after a restart is harmless.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	if j.clk.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-close stale sessions job")

	closed, err := j.attendanceSvc.SweepAutoClose(ctx)
	if err != nil {
		return err
	}

	if len(closed) == 0 {
		slog.Info("Cron: No stale sessions found")
		return nil
	}

	slog.Info("Cron: Auto-closed stale sessions", "count", len(closed))
	return nil
}
