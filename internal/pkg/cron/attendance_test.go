package cron

import (
	"context"
	"testing"
	"time"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTimeLogRepo struct {
	logs []attendance.TimeLog
}

func (s *stubTimeLogRepo) Create(_ context.Context, log attendance.TimeLog) (attendance.TimeLog, error) {
	return log, nil
}

func (s *stubTimeLogRepo) Close(_ context.Context, id string, clockOut time.Time) (attendance.TimeLog, error) {
	for i := range s.logs {
		if s.logs[i].ID == id && s.logs[i].ClockOut == nil {
			s.logs[i].ClockOut = &clockOut
			return s.logs[i], nil
		}
	}
	return attendance.TimeLog{}, attendance.ErrTimeLogNotFound
}

func (s *stubTimeLogRepo) GetOpenByEmployee(_ context.Context, _ string) (*attendance.TimeLog, error) {
	return nil, nil
}

func (s *stubTimeLogRepo) ListForEmployeeInRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.TimeLog, error) {
	return nil, nil
}

func (s *stubTimeLogRepo) ListForEmployeesOnDate(_ context.Context, _ []string, _ time.Time) ([]attendance.TimeLog, error) {
	return nil, nil
}

func (s *stubTimeLogRepo) EmployeeIDsWithLogInRange(_ context.Context, _, _ time.Time) ([]string, error) {
	return nil, nil
}

func (s *stubTimeLogRepo) ListStaleOpen(_ context.Context, cutoff time.Time) ([]attendance.TimeLog, error) {
	stale := []attendance.TimeLog{}
	for _, log := range s.logs {
		if log.ClockOut == nil && log.ClockIn.Before(cutoff) {
			stale = append(stale, log)
		}
	}
	return stale, nil
}

func (s *stubTimeLogRepo) LockEmployee(_ context.Context, _ string) error { return nil }

type stubShiftRepo struct {
	shifts []schedule.Shift
}

func (s *stubShiftRepo) Create(_ context.Context, shift schedule.Shift) (schedule.Shift, error) {
	return shift, nil
}

func (s *stubShiftRepo) Update(_ context.Context, shift schedule.Shift) (schedule.Shift, error) {
	return shift, nil
}

func (s *stubShiftRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubShiftRepo) GetByID(_ context.Context, _ string) (schedule.Shift, error) {
	return schedule.Shift{}, schedule.ErrShiftNotFound
}

func (s *stubShiftRepo) ListForEmployeeInRange(_ context.Context, employeeID string, start, end time.Time) ([]schedule.Shift, error) {
	matched := []schedule.Shift{}
	for _, shift := range s.shifts {
		if shift.EmployeeID == employeeID && !shift.Start.Before(start) && !shift.Start.After(end) {
			matched = append(matched, shift)
		}
	}
	return matched, nil
}

func (s *stubShiftRepo) ListForDate(_ context.Context, _ time.Time) ([]schedule.Shift, error) {
	return nil, nil
}

func (s *stubShiftRepo) EmployeeIDsWithShiftOnDate(_ context.Context, _ time.Time) ([]string, error) {
	return nil, nil
}

func (s *stubShiftRepo) EmployeeIDsWithShiftOverlapping(_ context.Context, _, _ time.Time) ([]string, error) {
	return nil, nil
}

func TestAutoCloseAt_ScheduledDayClosesAtShiftEnd(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	shiftEnd := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	shifts := []schedule.Shift{{
		EmployeeID: "emp-1",
		Start:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:        shiftEnd,
	}}

	assert.Equal(t, shiftEnd, autoCloseAt(clockIn, shifts))
}

func TestAutoCloseAt_UnscheduledDayCreditsDefaultSpan(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, clockIn.Add(autoCloseWorkSpan), autoCloseAt(clockIn, nil))
}

func TestAutoCloseAt_ShiftEndBeforeClockInFallsBackToDefaultSpan(t *testing.T) {
	// Clocked in after the shift already ended: the shift end would produce
	// a clock-out before the clock-in.
	clockIn := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	shifts := []schedule.Shift{{
		EmployeeID: "emp-1",
		Start:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
	}}

	assert.Equal(t, clockIn.Add(autoCloseWorkSpan), autoCloseAt(clockIn, shifts))
}

func TestAutoCloseStaleTimeLogs_ClosesOnlyStaleOpenLogs(t *testing.T) {
	now := time.Now().UTC()
	staleClockIn := now.Add(-72 * time.Hour)
	recentClockIn := now.Add(-2 * time.Hour)

	timeLogs := &stubTimeLogRepo{logs: []attendance.TimeLog{
		{ID: "log-stale", EmployeeID: "emp-1", ClockIn: staleClockIn},
		{ID: "log-recent", EmployeeID: "emp-1", ClockIn: recentClockIn},
	}}
	shiftEnd := staleClockIn.Add(8 * time.Hour)
	shifts := &stubShiftRepo{shifts: []schedule.Shift{{
		EmployeeID: "emp-1",
		Start:      staleClockIn.Truncate(24 * time.Hour).Add(9 * time.Hour),
		End:        shiftEnd,
	}}}

	jobs := NewAttendanceJobs(timeLogs, shifts)
	require.NoError(t, jobs.AutoCloseStaleTimeLogs(context.Background()))

	require.NotNil(t, timeLogs.logs[0].ClockOut)
	assert.Equal(t, shiftEnd, *timeLogs.logs[0].ClockOut)
	assert.Nil(t, timeLogs.logs[1].ClockOut)
}
