package employee

import "context"

// EmployeeRepository is the read-side view of the employee directory the
// attendance and payroll engines consume. Employee management itself lives
// in a separate system.
type EmployeeRepository interface {
	// GetByID retrieves a single employee
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive retrieves all active employees ordered by full name
	ListActive(ctx context.Context) ([]Employee, error)

	// ListByIDs retrieves the named employees ordered by full name
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)

	// ListActiveByIDsPaged retrieves active employees among ids ordered by
	// full name, with offset pagination, plus the unpaged total.
	ListActiveByIDsPaged(ctx context.Context, ids []string, page, pageSize int) ([]Employee, int64, error)
}
