package attendance

import (
	"context"
	"time"
)

// TimeLogRepository defines data access methods for clock logs.
type TimeLogRepository interface {
	// Create inserts a new time log
	Create(ctx context.Context, log TimeLog) (TimeLog, error)

	// Close sets the clock-out timestamp on an open log
	Close(ctx context.Context, id string, clockOut time.Time) (TimeLog, error)

	// GetOpenByEmployee retrieves the employee's open log, if any.
	// Returns nil when the employee is not clocked in.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*TimeLog, error)

	// ListForEmployeeInRange retrieves logs whose clock-in falls within
	// [start, end], ordered by clock-in.
	ListForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]TimeLog, error)

	// ListForEmployeesOnDate retrieves logs for the named employees whose
	// clock-in falls on the given calendar day.
	ListForEmployeesOnDate(ctx context.Context, employeeIDs []string, date time.Time) ([]TimeLog, error)

	// EmployeeIDsWithLogInRange returns the distinct employees with at least
	// one clock-in within [start, end].
	EmployeeIDsWithLogInRange(ctx context.Context, start, end time.Time) ([]string, error)

	// ListStaleOpen retrieves open logs whose clock-in is older than the cutoff.
	ListStaleOpen(ctx context.Context, cutoff time.Time) ([]TimeLog, error)

	// LockEmployee serializes clock actions for one employee for the duration
	// of the surrounding transaction.
	LockEmployee(ctx context.Context, employeeID string) error
}
