package schedule

import (
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	GroupName  *string `json:"group_name,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	start, okStart := validator.IsValidDateTime(r.Start)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be a valid RFC3339 timestamp"})
	}
	end, okEnd := validator.IsValidDateTime(r.End)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be a valid RFC3339 timestamp"})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be after start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ShiftID   string  `json:"-"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	GroupName *string `json:"group_name,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDateTime(r.Start)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be a valid RFC3339 timestamp"})
	}
	end, okEnd := validator.IsValidDateTime(r.End)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be a valid RFC3339 timestamp"})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be after start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListShiftsRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *ListShiftsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "cannot be later than end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	GroupName    *string `json:"group_name,omitempty"`
}
