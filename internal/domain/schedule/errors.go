package schedule

import "errors"

var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftOverlap  = errors.New("shift overlaps an existing shift for this employee")
)
