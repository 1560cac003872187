package payroll

import "context"

// PayrollService defines business logic for payroll generation, adjustments
// and the supporting catalog operations.
type PayrollService interface {
	// Periods
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)

	// GeneratePayrollForPeriod deterministically regenerates every entry for
	// the period: auto lines are rebuilt from attendance, compensation,
	// components and penalty settings; manual lines survive untouched.
	// Running it twice with unchanged inputs produces identical results.
	GeneratePayrollForPeriod(ctx context.Context, periodID string) ([]EntryResponse, error)

	// ApplyFixedPay folds the fixed-salary component into the base pay of
	// entries whose employees have a fixed or hybrid pay structure.
	ApplyFixedPay(ctx context.Context, req ApplyFixedPayRequest) ([]EntryResponse, error)

	// Entries
	GetEntry(ctx context.Context, entryID string) (EntryResponse, error)
	GetEntriesForPeriod(ctx context.Context, periodID string) ([]EntryResponse, error)

	// Manual adjustments
	AddAdjustment(ctx context.Context, req AddAdjustmentRequest) (EntryResponse, error)
	RemoveAdjustment(ctx context.Context, lineID string) error

	// Penalty settings
	GetPenaltySettings(ctx context.Context) (PenaltySettingsResponse, error)
	UpdatePenaltySettings(ctx context.Context, req UpdatePenaltySettingsRequest) (PenaltySettingsResponse, error)

	// Compensation
	GetCompensation(ctx context.Context, employeeID string) (CompensationResponse, error)
	UpsertCompensation(ctx context.Context, req UpsertCompensationRequest) (CompensationResponse, error)

	// Pay component catalog
	CreateComponent(ctx context.Context, req CreatePayComponentRequest) (PayComponentResponse, error)
	ListComponents(ctx context.Context, activeOnly bool) ([]PayComponentResponse, error)
	UpdateComponent(ctx context.Context, req UpdatePayComponentRequest) (PayComponentResponse, error)

	// Component assignments
	GetEmployeeComponents(ctx context.Context, employeeID string) ([]EmployeeComponentResponse, error)
	BulkAssignComponents(ctx context.Context, req BulkAssignRequest) (BulkAssignResponse, error)
	RemoveEmployeeComponent(ctx context.Context, id string) error
}
