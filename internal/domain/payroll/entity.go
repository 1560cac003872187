package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineKind classifies a payroll line or pay component as money in or money out.
type LineKind string

const (
	LineKindEarning   LineKind = "earning"
	LineKindDeduction LineKind = "deduction"
)

// CalcType is the rate rule of a pay component.
type CalcType string

const (
	CalcTypeFixedAmount      CalcType = "fixed_amount"
	CalcTypePercentageOfBase CalcType = "percentage_of_base"
	CalcTypePerHour          CalcType = "per_hour"
)

// AdjustmentType is the caller-facing type of a manual adjustment. Anything
// that is not a deduction normalizes to a bonus.
type AdjustmentType string

const (
	AdjustmentTypeBonus     AdjustmentType = "Bonus"
	AdjustmentTypeDeduction AdjustmentType = "Deduction"
)

// Reserved line codes for auto-generated and manual lines. Component lines
// carry their component's code instead.
const (
	LineCodeBase      = "BASE"
	LineCodeLate      = "LATE"
	LineCodeUndertime = "UNDERTIME"
	LineCodeAbsence   = "ABSENCE"
	LineCodeOvertime  = "OT"
	LineCodeManual    = "MANUAL"
)

// Compensation is an employee's pay structure, 1:1 with the employee.
type Compensation struct {
	EmployeeID         string
	IsHourly           bool
	HourlyRate         *decimal.Decimal
	FixedMonthlySalary *decimal.Decimal
	UpdatedAt          time.Time
}

// PayComponent is a reusable catalog rate rule.
type PayComponent struct {
	ID          string
	Code        string
	Name        string
	Kind        LineKind
	CalcType    CalcType
	DefaultRate decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmployeeComponent assigns a pay component to an employee, optionally with an
// employee-specific rate override.
type EmployeeComponent struct {
	ID             string
	EmployeeID     string
	PayComponentID string
	RateOverride   *decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time

	// Joined component fields
	ComponentCode        *string
	ComponentName        *string
	ComponentKind        *LineKind
	ComponentCalcType    *CalcType
	ComponentDefaultRate *decimal.Decimal
}

// Rate resolves the effective rate: the override when present, otherwise the
// component's default.
func (ec EmployeeComponent) Rate() decimal.Decimal {
	if ec.RateOverride != nil {
		return *ec.RateOverride
	}
	if ec.ComponentDefaultRate != nil {
		return *ec.ComponentDefaultRate
	}
	return decimal.Zero
}

// PenaltySettings is the single row of configurable per-minute penalty and
// bonus rates. A zero-valued row is created on first access.
type PenaltySettings struct {
	ID                        string
	LatePenaltyPerMinute      decimal.Decimal
	UndertimePenaltyPerMinute decimal.Decimal
	AbsenceFullDayMultiplier  decimal.Decimal
	OvertimeBonusPerMinute    decimal.Decimal
	UpdatedAt                 time.Time
}

// PayrollPeriod is the immutable date range payroll is generated for.
type PayrollPeriod struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// PayrollEntry is the per-employee, per-period aggregate root. Totals are
// always derived from its lines, never edited directly.
type PayrollEntry struct {
	ID               string
	PayrollPeriodID  string
	EmployeeID       string
	TotalHoursWorked decimal.Decimal
	BasePay          decimal.Decimal
	TotalDeductions  decimal.Decimal
	TotalBonuses     decimal.Decimal
	NetPay           decimal.Decimal
	CalculatedAt     time.Time

	Lines []PayrollLine

	// Joined fields
	EmployeeName *string
}

// PayrollLine is one itemized earning or deduction on an entry. Auto-generated
// lines are replaced wholesale on every regeneration; manual lines are never
// touched by it.
type PayrollLine struct {
	ID              string
	PayrollEntryID  string
	Code            string
	Description     string
	Kind            LineKind
	Quantity        decimal.Decimal
	Rate            decimal.Decimal
	Amount          decimal.Decimal
	IsAutoGenerated bool
	PayComponentID  *string
	CreatedAt       time.Time
}
