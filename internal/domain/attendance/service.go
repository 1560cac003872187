package attendance

import (
	"context"
)

// AttendanceService defines business logic for clock actions and derived
// attendance views.
type AttendanceService interface {
	// ClockIn opens a new time log for the employee. Fails with
	// ErrAlreadyClockedIn when an open log exists.
	ClockIn(ctx context.Context, employeeID string) (TimeLogResponse, error)

	// ClockOut closes the employee's open time log. Fails with ErrNoOpenLog
	// when the employee is not clocked in.
	ClockOut(ctx context.Context, employeeID string) (TimeLogResponse, error)

	// GetAttendanceForEmployee builds one DailyAttendance per day that has a
	// log or a shift in the range, newest first.
	GetAttendanceForEmployee(ctx context.Context, req DateRangeRequest) ([]DailyAttendanceResponse, error)

	// GetSummaryForEmployee folds the range into a PeriodSummary.
	GetSummaryForEmployee(ctx context.Context, req DateRangeRequest) (PeriodSummaryResponse, error)

	// GetAttendanceOverview lists scheduled employees for one day with their
	// classification, paginated by employee name.
	GetAttendanceOverview(ctx context.Context, req OverviewRequest) (OverviewResponse, error)
}
