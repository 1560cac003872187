package attendance

import (
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/validator"
)

type TimeLogResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	ClockIn    string  `json:"clock_in"`
	ClockOut   *string `json:"clock_out,omitempty"`
	Source     string  `json:"source"`
}

type DailyAttendanceResponse struct {
	Date             string  `json:"date"`
	FirstIn          *string `json:"first_in,omitempty"`
	LastOut          *string `json:"last_out,omitempty"`
	WorkedHours      float64 `json:"worked_hours"`
	ScheduledStart   *string `json:"scheduled_start,omitempty"`
	ScheduledEnd     *string `json:"scheduled_end,omitempty"`
	ScheduledHours   float64 `json:"scheduled_hours"`
	HasLogs          bool    `json:"has_logs"`
	IsLate           bool    `json:"is_late"`
	IsUndertime      bool    `json:"is_undertime"`
	IsOvertime       bool    `json:"is_overtime"`
	IsAbsent         bool    `json:"is_absent"`
	LateMinutes      int     `json:"late_minutes"`
	UndertimeMinutes int     `json:"undertime_minutes"`
	OvertimeMinutes  int     `json:"overtime_minutes"`
}

type PeriodSummaryResponse struct {
	EmployeeID            string                    `json:"employee_id"`
	TotalRenderedHours    float64                   `json:"total_rendered_hours"`
	TotalLateMinutes      int                       `json:"total_late_minutes"`
	TotalUndertimeMinutes int                       `json:"total_undertime_minutes"`
	TotalOvertimeMinutes  int                       `json:"total_overtime_minutes"`
	FullDayAbsences       int                       `json:"full_day_absences"`
	DaysWithShift         int                       `json:"days_with_shift"`
	Days                  []DailyAttendanceResponse `json:"days"`
}

// DateRangeRequest addresses an employee's attendance over [StartDate, EndDate].
type DateRangeRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *DateRangeRequest) Validate() error {
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

// OverviewRequest is the admin-facing per-day attendance view. Only employees
// with at least one shift on Date are listed.
type OverviewRequest struct {
	Date       string  `json:"date"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

func (r *OverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Page < 1 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be at least 1"})
	}
	if r.PageSize < 1 || r.PageSize > 100 {
		errs = append(errs, validator.ValidationError{Field: "page_size", Message: "must be between 1 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverviewRow struct {
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	Attendance   DailyAttendanceResponse `json:"attendance"`
}

type OverviewResponse struct {
	Date       string        `json:"date"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
	Rows       []OverviewRow `json:"rows"`
}
