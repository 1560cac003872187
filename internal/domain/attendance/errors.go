package attendance

import "errors"

// Attendance domain errors
var (
	// Clock action errors
	ErrAlreadyClockedIn = errors.New("you are already clocked in, please clock out first")
	ErrNoOpenLog        = errors.New("you do not have an active time log to clock out from")

	// General errors
	ErrTimeLogNotFound = errors.New("time log not found")
)
