package response

import (
	"errors"
	"net/http"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/employee"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, schedule.ErrShiftOverlap):
		Conflict(w, "Shift overlaps an existing shift for this employee")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Employee is already clocked in")
	case errors.Is(err, attendance.ErrNoOpenLog):
		Conflict(w, "Employee has no open time log")
	case errors.Is(err, attendance.ErrTimeLogNotFound):
		NotFound(w, "Time log not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrLineNotFound):
		NotFound(w, "Payroll line not found")
	case errors.Is(err, payroll.ErrCannotRemoveAutoLine):
		Conflict(w, "Auto-generated lines cannot be removed")
	case errors.Is(err, payroll.ErrCompensationNotFound):
		NotFound(w, "Compensation not found for employee")
	case errors.Is(err, payroll.ErrPayComponentNotFound):
		NotFound(w, "Pay component not found")
	case errors.Is(err, payroll.ErrPayComponentCodeExists):
		Conflict(w, "Pay component code already exists")
	case errors.Is(err, payroll.ErrEmployeeComponentNotFound):
		NotFound(w, "Employee component assignment not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
