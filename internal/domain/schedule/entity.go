package schedule

import "time"

// Shift is a scheduled work interval for an employee. Attendance
// classification only ever reads shifts; editing them is the scheduler's job.
type Shift struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Start        time.Time
	End          time.Time
	GroupName    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
