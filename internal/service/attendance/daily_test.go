package attendance

import (
	"testing"
	"time"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGrace = GraceConfig{
	LateGraceMinutes:         5,
	UndertimeGraceMinutes:    5,
	OvertimeThresholdMinutes: 5,
}

func day(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func closedLog(in, out time.Time) attendance.TimeLog {
	return attendance.TimeLog{EmployeeID: "emp-1", ClockIn: in, ClockOut: &out}
}

func shiftAt(start, end time.Time) schedule.Shift {
	return schedule.Shift{EmployeeID: "emp-1", Start: start, End: end}
}

func TestBuildDailyAttendance_AbsentWhenShiftButNoLogs(t *testing.T) {
	result := BuildDailyAttendance(day(0, 0), nil, []schedule.Shift{shiftAt(day(9, 0), day(17, 0))}, testGrace)

	assert.True(t, result.IsAbsent)
	assert.False(t, result.IsLate)
	assert.False(t, result.IsUndertime)
	assert.False(t, result.IsOvertime)
	assert.False(t, result.HasLogs)
	assert.Equal(t, 8.0, result.ScheduledHours)
}

func TestBuildDailyAttendance_NoShiftNeverAbsent(t *testing.T) {
	result := BuildDailyAttendance(day(0, 0), []attendance.TimeLog{closedLog(day(10, 0), day(14, 0))}, nil, testGrace)

	assert.False(t, result.IsAbsent)
	assert.False(t, result.IsLate)
	assert.False(t, result.IsUndertime)
	assert.False(t, result.IsOvertime)
	assert.True(t, result.HasLogs)
	assert.Equal(t, 4*time.Hour, result.TotalWorked)
	assert.Equal(t, 0.0, result.ScheduledHours)
}

func TestBuildDailyAttendance_GraceWindow(t *testing.T) {
	shifts := []schedule.Shift{shiftAt(day(9, 0), day(17, 0))}

	// 4 minutes late is inside the 5-minute grace.
	onTime := BuildDailyAttendance(day(0, 0), []attendance.TimeLog{closedLog(day(9, 4), day(17, 0))}, shifts, testGrace)
	assert.False(t, onTime.IsLate)
	assert.Equal(t, 0, onTime.LateMinutes)

	// 6 minutes late leaves 1 chargeable minute after grace.
	late := BuildDailyAttendance(day(0, 0), []attendance.TimeLog{closedLog(day(9, 6), day(17, 0))}, shifts, testGrace)
	assert.True(t, late.IsLate)
	assert.Equal(t, 1, late.LateMinutes)
}

func TestBuildDailyAttendance_UndertimeAndOvertime(t *testing.T) {
	shifts := []schedule.Shift{shiftAt(day(9, 0), day(17, 0))}

	undertime := BuildDailyAttendance(day(0, 0), []attendance.TimeLog{closedLog(day(9, 0), day(16, 30))}, shifts, testGrace)
	assert.True(t, undertime.IsUndertime)
	assert.Equal(t, 25, undertime.UndertimeMinutes)
	assert.False(t, undertime.IsOvertime)

	overtime := BuildDailyAttendance(day(0, 0), []attendance.TimeLog{closedLog(day(9, 0), day(18, 0))}, shifts, testGrace)
	assert.True(t, overtime.IsOvertime)
	assert.Equal(t, 55, overtime.OvertimeMinutes)
	assert.False(t, overtime.IsUndertime)
}

func TestBuildDailyAttendance_OpenLogContributesNoWorkedTime(t *testing.T) {
	open := attendance.TimeLog{EmployeeID: "emp-1", ClockIn: day(13, 0)}
	logs := []attendance.TimeLog{closedLog(day(9, 0), day(12, 0)), open}

	result := BuildDailyAttendance(day(0, 0), logs, []schedule.Shift{shiftAt(day(9, 0), day(17, 0))}, testGrace)

	assert.Equal(t, 3*time.Hour, result.TotalWorked)
	require.NotNil(t, result.LastOut)
	assert.Equal(t, day(12, 0), *result.LastOut)
	// Closed log ends five hours early, minus grace.
	assert.Equal(t, 295, result.UndertimeMinutes)
}

func TestBuildDailyAttendance_MultipleShiftsCollapseToWidestInterval(t *testing.T) {
	shifts := []schedule.Shift{
		shiftAt(day(13, 0), day(17, 0)),
		shiftAt(day(9, 0), day(12, 0)),
	}

	result := BuildDailyAttendance(day(0, 0), []attendance.TimeLog{closedLog(day(9, 0), day(17, 0))}, shifts, testGrace)

	require.NotNil(t, result.ScheduledStart)
	require.NotNil(t, result.ScheduledEnd)
	assert.Equal(t, day(9, 0), *result.ScheduledStart)
	assert.Equal(t, day(17, 0), *result.ScheduledEnd)
	assert.Equal(t, 8.0, result.ScheduledHours)
}

func TestBuildDailyRange_UnionOfLogAndShiftDatesNewestFirst(t *testing.T) {
	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	wednesday := monday.AddDate(0, 0, 2)

	logs := []attendance.TimeLog{closedLog(monday, monday.Add(8*time.Hour))}
	shifts := []schedule.Shift{
		shiftAt(tuesday, tuesday.Add(8*time.Hour)),
		shiftAt(wednesday, wednesday.Add(8*time.Hour)),
	}

	days := BuildDailyRange(logs, shifts, testGrace)

	require.Len(t, days, 3)
	assert.True(t, days[0].Date.After(days[1].Date))
	assert.True(t, days[1].Date.After(days[2].Date))
	// Shift days with no logs are absences; the log-only day is not.
	assert.True(t, days[0].IsAbsent)
	assert.True(t, days[1].IsAbsent)
	assert.False(t, days[2].IsAbsent)
}

func TestBuildPeriodSummary_FoldsTotals(t *testing.T) {
	days := []attendance.DailyAttendance{
		{TotalWorked: 8 * time.Hour, LateMinutes: 10, ScheduledHours: 8},
		{TotalWorked: 7 * time.Hour, UndertimeMinutes: 60, OvertimeMinutes: 15, ScheduledHours: 8},
		{IsAbsent: true, ScheduledHours: 8},
		{TotalWorked: 4 * time.Hour},
	}

	summary := BuildPeriodSummary("emp-1", days)

	assert.Equal(t, "emp-1", summary.EmployeeID)
	assert.Equal(t, 19*time.Hour, summary.TotalWorked)
	assert.Equal(t, 19.0, summary.TotalRenderedHours())
	assert.Equal(t, 10, summary.TotalLateMinutes)
	assert.Equal(t, 60, summary.TotalUndertimeMinutes)
	assert.Equal(t, 15, summary.TotalOvertimeMinutes)
	assert.Equal(t, 1, summary.FullDayAbsences)
	assert.Equal(t, 3, summary.DaysWithShift)
	assert.Equal(t, 8.0, summary.AbsentScheduledHours())
}
