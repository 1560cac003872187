package attendance

import (
	"time"
)

// TimeLog is one recorded work interval. A nil ClockOut means the employee is
// currently clocked in; at most one open log may exist per employee.
type TimeLog struct {
	ID         string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   *time.Time
	Source     string
	CreatedAt  time.Time
}

// IsOpen reports whether the log has not been clocked out yet.
func (l TimeLog) IsOpen() bool {
	return l.ClockOut == nil
}

// DailyAttendance is the derived classification of one employee-day. It is
// recomputed from shifts and logs on every query and never persisted.
type DailyAttendance struct {
	Date             time.Time
	FirstIn          *time.Time
	LastOut          *time.Time
	TotalWorked      time.Duration
	ScheduledStart   *time.Time
	ScheduledEnd     *time.Time
	ScheduledHours   float64
	HasLogs          bool
	IsLate           bool
	IsUndertime      bool
	IsOvertime       bool
	IsAbsent         bool
	LateMinutes      int
	UndertimeMinutes int
	OvertimeMinutes  int
}

// PeriodSummary folds a range of daily attendances into cumulative totals
// for one employee.
type PeriodSummary struct {
	EmployeeID            string
	Days                  []DailyAttendance
	TotalWorked           time.Duration
	TotalLateMinutes      int
	TotalUndertimeMinutes int
	TotalOvertimeMinutes  int
	FullDayAbsences       int
	DaysWithShift         int
}

// TotalRenderedHours returns the cumulative worked duration in hours.
func (s PeriodSummary) TotalRenderedHours() float64 {
	return s.TotalWorked.Hours()
}

// AbsentScheduledHours sums the scheduled hours of every full-day absence.
// The payroll engine prices absences against this figure.
func (s PeriodSummary) AbsentScheduledHours() float64 {
	var hours float64
	for _, day := range s.Days {
		if day.IsAbsent {
			hours += day.ScheduledHours
		}
	}
	return hours
}
