package payroll

import (
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
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

type PeriodResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	CreatedAt string `json:"created_at"`
}

// ========== ENTRY DTOs ==========

type LineResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	Kind            string          `json:"kind"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	Amount          decimal.Decimal `json:"amount"`
	IsAutoGenerated bool            `json:"is_auto_generated"`
	PayComponentID  *string         `json:"pay_component_id,omitempty"`
}

type EntryResponse struct {
	ID               string          `json:"id"`
	PayrollPeriodID  string          `json:"payroll_period_id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	TotalHoursWorked decimal.Decimal `json:"total_hours_worked"`
	BasePay          decimal.Decimal `json:"base_pay"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalBonuses     decimal.Decimal `json:"total_bonuses"`
	NetPay           decimal.Decimal `json:"net_pay"`
	CalculatedAt     string          `json:"calculated_at"`
	Lines            []LineResponse  `json:"lines"`
}

type ApplyFixedPayRequest struct {
	PeriodID      string `json:"-"`
	ApplyToFixed  bool   `json:"apply_to_fixed"`
	ApplyToHybrid bool   `json:"apply_to_hybrid"`
}

// ========== ADJUSTMENT DTOs ==========

type AddAdjustmentRequest struct {
	EntryID string          `json:"-"`
	Type    string          `json:"type"`
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
}

func (r *AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SETTINGS DTOs ==========

type PenaltySettingsResponse struct {
	ID                        string          `json:"id"`
	LatePenaltyPerMinute      decimal.Decimal `json:"late_penalty_per_minute"`
	UndertimePenaltyPerMinute decimal.Decimal `json:"undertime_penalty_per_minute"`
	AbsenceFullDayMultiplier  decimal.Decimal `json:"absence_full_day_multiplier"`
	OvertimeBonusPerMinute    decimal.Decimal `json:"overtime_bonus_per_minute"`
	UpdatedAt                 string          `json:"updated_at"`
}

type UpdatePenaltySettingsRequest struct {
	LatePenaltyPerMinute      *decimal.Decimal `json:"late_penalty_per_minute,omitempty"`
	UndertimePenaltyPerMinute *decimal.Decimal `json:"undertime_penalty_per_minute,omitempty"`
	AbsenceFullDayMultiplier  *decimal.Decimal `json:"absence_full_day_multiplier,omitempty"`
	OvertimeBonusPerMinute    *decimal.Decimal `json:"overtime_bonus_per_minute,omitempty"`
}

func (r *UpdatePenaltySettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LatePenaltyPerMinute != nil && r.LatePenaltyPerMinute.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "late_penalty_per_minute", Message: "must be non-negative"})
	}
	if r.UndertimePenaltyPerMinute != nil && r.UndertimePenaltyPerMinute.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "undertime_penalty_per_minute", Message: "must be non-negative"})
	}
	if r.AbsenceFullDayMultiplier != nil && r.AbsenceFullDayMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absence_full_day_multiplier", Message: "must be non-negative"})
	}
	if r.OvertimeBonusPerMinute != nil && r.OvertimeBonusPerMinute.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_bonus_per_minute", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== COMPENSATION DTOs ==========

type CompensationResponse struct {
	EmployeeID         string           `json:"employee_id"`
	IsHourly           bool             `json:"is_hourly"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	FixedMonthlySalary *decimal.Decimal `json:"fixed_monthly_salary,omitempty"`
	PayStructure       string           `json:"pay_structure"`
}

type UpsertCompensationRequest struct {
	EmployeeID         string           `json:"-"`
	IsHourly           bool             `json:"is_hourly"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	FixedMonthlySalary *decimal.Decimal `json:"fixed_monthly_salary,omitempty"`
}

func (r *UpsertCompensationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.FixedMonthlySalary != nil && r.FixedMonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_monthly_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== COMPONENT DTOs ==========

type CreatePayComponentRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	CalcType    string          `json:"calc_type"`
	DefaultRate decimal.Decimal `json:"default_rate"`
}

func (r *CreatePayComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Kind, []string{string(LineKindEarning), string(LineKindDeduction)}) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'earning' or 'deduction'"})
	}
	if !validator.IsInSlice(r.CalcType, []string{string(CalcTypeFixedAmount), string(CalcTypePercentageOfBase), string(CalcTypePerHour)}) {
		errs = append(errs, validator.ValidationError{Field: "calc_type", Message: "must be 'fixed_amount', 'percentage_of_base' or 'per_hour'"})
	}
	if r.DefaultRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayComponentRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name,omitempty"`
	DefaultRate *decimal.Decimal `json:"default_rate,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (r *UpdatePayComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.DefaultRate != nil && r.DefaultRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayComponentResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	CalcType    string          `json:"calc_type"`
	DefaultRate decimal.Decimal `json:"default_rate"`
	IsActive    bool            `json:"is_active"`
}

// ========== EMPLOYEE COMPONENT DTOs ==========

type BulkAssignComponent struct {
	PayComponentID string           `json:"pay_component_id"`
	RateOverride   *decimal.Decimal `json:"rate_override,omitempty"`
}

type BulkAssignRequest struct {
	EmployeeIDs []string              `json:"employee_ids"`
	Components  []BulkAssignComponent `json:"components"`
}

func (r *BulkAssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "at least one employee is required"})
	}
	if len(r.Components) == 0 {
		errs = append(errs, validator.ValidationError{Field: "components", Message: "at least one component is required"})
	}
	for _, c := range r.Components {
		if validator.IsEmpty(c.PayComponentID) {
			errs = append(errs, validator.ValidationError{Field: "components", Message: "pay_component_id is required on every component"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAssignResponse struct {
	EmployeesConsidered        int `json:"employees_considered"`
	AssignmentsCreated         int `json:"assignments_created"`
	AssignmentsSkippedExisting int `json:"assignments_skipped_existing"`
}

type EmployeeComponentResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	PayComponentID string          `json:"pay_component_id"`
	ComponentCode  string          `json:"component_code"`
	ComponentName  string          `json:"component_name"`
	ComponentKind  string          `json:"component_kind"`
	CalcType       string          `json:"calc_type"`
	Rate           decimal.Decimal `json:"rate"`
	IsActive       bool            `json:"is_active"`
}
