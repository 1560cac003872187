package payroll

import "context"

// CompensationRepository defines data access for employee pay structures.
type CompensationRepository interface {
	GetByEmployee(ctx context.Context, employeeID string) (Compensation, error)
	ListByEmployees(ctx context.Context, employeeIDs []string) ([]Compensation, error)
	Upsert(ctx context.Context, comp Compensation) (Compensation, error)
}

// PayComponentRepository defines data access for the pay component catalog.
type PayComponentRepository interface {
	Create(ctx context.Context, component PayComponent) (PayComponent, error)
	GetByID(ctx context.Context, id string) (PayComponent, error)
	List(ctx context.Context, activeOnly bool) ([]PayComponent, error)
	Update(ctx context.Context, req UpdatePayComponentRequest) (PayComponent, error)
}

// EmployeeComponentRepository defines data access for component assignments.
// List methods hydrate the joined component fields.
type EmployeeComponentRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeComponent, error)
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]EmployeeComponent, error)
	ListActiveByEmployees(ctx context.Context, employeeIDs []string) ([]EmployeeComponent, error)
	Assign(ctx context.Context, assignment EmployeeComponent) (EmployeeComponent, error)
	Deactivate(ctx context.Context, id string) error
}

// PenaltySettingsRepository defines data access for the penalty settings row.
type PenaltySettingsRepository interface {
	// GetOrCreate returns the settings row, inserting a zero-valued one when
	// none exists yet.
	GetOrCreate(ctx context.Context) (PenaltySettings, error)
	Update(ctx context.Context, settings PenaltySettings) (PenaltySettings, error)
}

// PayrollRepository defines data access for periods, entries and lines.
type PayrollRepository interface {
	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (PayrollPeriod, error)
	ListPeriods(ctx context.Context) ([]PayrollPeriod, error)

	// Entries. Read methods hydrate lines and the employee display name;
	// ListEntriesForPeriod orders by employee name.
	GetEntryByID(ctx context.Context, id string) (PayrollEntry, error)
	ListEntriesForPeriod(ctx context.Context, periodID string) ([]PayrollEntry, error)
	CreateEntry(ctx context.Context, entry PayrollEntry) (PayrollEntry, error)
	UpdateEntryTotals(ctx context.Context, entry PayrollEntry) error
	DeleteEntry(ctx context.Context, id string) error

	// Lines
	InsertLines(ctx context.Context, lines []PayrollLine) error
	UpdateLine(ctx context.Context, line PayrollLine) error
	DeleteAutoLines(ctx context.Context, entryID string) error
	GetLineByID(ctx context.Context, id string) (PayrollLine, error)
	DeleteLine(ctx context.Context, id string) error

	// LockPeriod serializes generation runs for one period for the duration
	// of the surrounding transaction.
	LockPeriod(ctx context.Context, periodID string) error
}
