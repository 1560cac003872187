package schedule

import (
	"context"
	"time"
)

// ShiftRepository defines data access for scheduled shifts.
type ShiftRepository interface {
	// Create inserts a shift after checking it does not overlap another
	// shift of the same employee.
	Create(ctx context.Context, shift Shift) (Shift, error)

	// Update rewrites a shift's interval and group, with the same overlap check.
	Update(ctx context.Context, shift Shift) (Shift, error)

	// Delete removes a shift.
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a single shift.
	GetByID(ctx context.Context, id string) (Shift, error)

	// ListForEmployeeInRange retrieves shifts starting within [start, end],
	// ordered by start time.
	ListForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Shift, error)

	// ListForDate retrieves every shift starting on the given calendar day.
	ListForDate(ctx context.Context, date time.Time) ([]Shift, error)

	// EmployeeIDsWithShiftOnDate returns the distinct employees scheduled on
	// the given calendar day.
	EmployeeIDsWithShiftOnDate(ctx context.Context, date time.Time) ([]string, error)

	// EmployeeIDsWithShiftOverlapping returns the distinct employees with at
	// least one shift overlapping [start, end].
	EmployeeIDsWithShiftOverlapping(ctx context.Context, start, end time.Time) ([]string, error)
}
