package attendance

import (
	"math"
	"sort"
	"time"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
)

// GraceConfig holds the day-classification tolerances, in minutes.
type GraceConfig struct {
	LateGraceMinutes         int
	UndertimeGraceMinutes    int
	OvertimeThresholdMinutes int
}

// BuildDailyAttendance classifies one employee-day from that day's logs and
// shifts. It is a pure function: missing data degrades to zero values and
// never errors. Unscheduled days are never marked absent or penalized.
func BuildDailyAttendance(date time.Time, logs []attendance.TimeLog, shifts []schedule.Shift, grace GraceConfig) attendance.DailyAttendance {
	day := attendance.DailyAttendance{
		Date:    truncateToDay(date),
		HasLogs: len(logs) > 0,
	}

	var firstIn, lastOut *time.Time
	var total time.Duration
	for i := range logs {
		in := logs[i].ClockIn
		if firstIn == nil || in.Before(*firstIn) {
			firstIn = &in
		}
		// Open logs contribute nothing to worked time.
		if logs[i].ClockOut == nil {
			continue
		}
		out := *logs[i].ClockOut
		if lastOut == nil || out.After(*lastOut) {
			lastOut = &out
		}
		total += out.Sub(in)
	}
	day.FirstIn = firstIn
	day.LastOut = lastOut
	day.TotalWorked = total

	if len(shifts) == 0 {
		return day
	}

	// Multiple shifts on one day collapse to the widest interval.
	shiftStart := shifts[0].Start
	shiftEnd := shifts[0].End
	for _, sh := range shifts[1:] {
		if sh.Start.Before(shiftStart) {
			shiftStart = sh.Start
		}
		if sh.End.After(shiftEnd) {
			shiftEnd = sh.End
		}
	}
	day.ScheduledStart = &shiftStart
	day.ScheduledEnd = &shiftEnd
	day.ScheduledHours = shiftEnd.Sub(shiftStart).Hours()

	if !day.HasLogs {
		day.IsAbsent = true
		return day
	}

	day.LateMinutes = gracedMinutes(firstIn.Sub(shiftStart), grace.LateGraceMinutes)
	day.IsLate = day.LateMinutes > 0

	if lastOut != nil {
		day.UndertimeMinutes = gracedMinutes(shiftEnd.Sub(*lastOut), grace.UndertimeGraceMinutes)
		day.IsUndertime = day.UndertimeMinutes > 0

		day.OvertimeMinutes = gracedMinutes(lastOut.Sub(shiftEnd), grace.OvertimeThresholdMinutes)
		day.IsOvertime = day.OvertimeMinutes > 0
	}

	return day
}

// BuildDailyRange classifies every date in [start, end] that has at least one
// log or shift, ordered by date descending.
func BuildDailyRange(logs []attendance.TimeLog, shifts []schedule.Shift, grace GraceConfig) []attendance.DailyAttendance {
	logsByDay := map[time.Time][]attendance.TimeLog{}
	for _, log := range logs {
		day := truncateToDay(log.ClockIn)
		logsByDay[day] = append(logsByDay[day], log)
	}
	shiftsByDay := map[time.Time][]schedule.Shift{}
	for _, sh := range shifts {
		day := truncateToDay(sh.Start)
		shiftsByDay[day] = append(shiftsByDay[day], sh)
	}

	dates := map[time.Time]struct{}{}
	for day := range logsByDay {
		dates[day] = struct{}{}
	}
	for day := range shiftsByDay {
		dates[day] = struct{}{}
	}

	ordered := make([]time.Time, 0, len(dates))
	for day := range dates {
		ordered = append(ordered, day)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].After(ordered[j]) })

	days := make([]attendance.DailyAttendance, 0, len(ordered))
	for _, day := range ordered {
		days = append(days, BuildDailyAttendance(day, logsByDay[day], shiftsByDay[day], grace))
	}

	return days
}

// BuildPeriodSummary folds daily attendances into cumulative totals.
func BuildPeriodSummary(employeeID string, days []attendance.DailyAttendance) attendance.PeriodSummary {
	summary := attendance.PeriodSummary{
		EmployeeID: employeeID,
		Days:       days,
	}
	for _, day := range days {
		summary.TotalWorked += day.TotalWorked
		summary.TotalLateMinutes += day.LateMinutes
		summary.TotalUndertimeMinutes += day.UndertimeMinutes
		summary.TotalOvertimeMinutes += day.OvertimeMinutes
		if day.IsAbsent {
			summary.FullDayAbsences++
		}
		if day.ScheduledHours > 0 {
			summary.DaysWithShift++
		}
	}
	return summary
}

// gracedMinutes rounds a duration to whole minutes and subtracts the grace
// allowance, clamping at zero.
func gracedMinutes(d time.Duration, graceMinutes int) int {
	minutes := int(math.Round(d.Minutes()))
	if minutes <= graceMinutes {
		return 0
	}
	return minutes - graceMinutes
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
