package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
)

// Logs still open after this long are assumed to be forgotten clock-outs.
const staleOpenLogAge = 48 * time.Hour

// An auto-closed log on an unscheduled day is credited this much time from
// its clock-in.
const autoCloseWorkSpan = 12 * time.Hour

type AttendanceJobs struct {
	timeLogRepo attendance.TimeLogRepository
	shiftRepo   schedule.ShiftRepository
}

func NewAttendanceJobs(timeLogRepo attendance.TimeLogRepository, shiftRepo schedule.ShiftRepository) *AttendanceJobs {
	return &AttendanceJobs{timeLogRepo: timeLogRepo, shiftRepo: shiftRepo}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_time_logs", 1*time.Hour, j.AutoCloseStaleTimeLogs)
}

// AutoCloseStaleTimeLogs closes open logs whose clock-in is older than the
// stale cutoff, so forgotten clock-outs do not block the next clock-in
// forever. Scheduled days close at the shift end; unscheduled days are
// credited a bounded work span from clock-in.
func (j *AttendanceJobs) AutoCloseStaleTimeLogs(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-staleOpenLogAge)

	stale, err := j.timeLogRepo.ListStaleOpen(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale open time logs: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, log := range stale {
		dayStart := log.ClockIn.Truncate(24 * time.Hour)
		dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
		shifts, err := j.shiftRepo.ListForEmployeeInRange(ctx, log.EmployeeID, dayStart, dayEnd)
		if err != nil {
			slog.Error("Cron: failed to load shifts for stale time log", "time_log_id", log.ID, "error", err)
			continue
		}

		if _, err := j.timeLogRepo.Close(ctx, log.ID, autoCloseAt(log.ClockIn, shifts)); err != nil {
			slog.Error("Cron: failed to auto-close time log", "time_log_id", log.ID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: auto-closed stale time logs", "found", len(stale), "closed", closed)
	return nil
}

// autoCloseAt picks the clock-out a forgotten log is credited with: the
// latest shift end of the clock-in day when it falls after the clock-in,
// otherwise clock-in plus the default work span.
func autoCloseAt(clockIn time.Time, shifts []schedule.Shift) time.Time {
	var shiftEnd time.Time
	for _, sh := range shifts {
		if sh.End.After(shiftEnd) {
			shiftEnd = sh.End
		}
	}
	if shiftEnd.After(clockIn) {
		return shiftEnd
	}
	return clockIn.Add(autoCloseWorkSpan)
}
