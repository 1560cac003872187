package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type employeeComponentRepository struct {
	db *database.DB
}

const employeeComponentSelect = `
	SELECT ec.id, ec.employee_id, ec.pay_component_id, ec.rate_override, ec.is_active, ec.created_at,
		   pc.code, pc.name, pc.kind, pc.calc_type, pc.default_rate
	FROM employee_components ec
	JOIN pay_components pc ON pc.id = ec.pay_component_id
`

// ListByEmployee implements payroll.EmployeeComponentRepository.
func (e *employeeComponentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.EmployeeComponent, error) {
	q := GetQuerier(ctx, e.db)

	query := employeeComponentSelect + `
		WHERE ec.employee_id = $1
		ORDER BY pc.code
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee components: %w", err)
	}
	defer rows.Close()

	return scanEmployeeComponents(rows)
}

// ListActiveByEmployee implements payroll.EmployeeComponentRepository.
func (e *employeeComponentRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]payroll.EmployeeComponent, error) {
	q := GetQuerier(ctx, e.db)

	query := employeeComponentSelect + `
		WHERE ec.employee_id = $1 AND ec.is_active = TRUE AND pc.is_active = TRUE
		ORDER BY pc.code
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employee components: %w", err)
	}
	defer rows.Close()

	return scanEmployeeComponents(rows)
}

// ListActiveByEmployees implements payroll.EmployeeComponentRepository.
func (e *employeeComponentRepository) ListActiveByEmployees(ctx context.Context, employeeIDs []string) ([]payroll.EmployeeComponent, error) {
	if len(employeeIDs) == 0 {
		return []payroll.EmployeeComponent{}, nil
	}

	q := GetQuerier(ctx, e.db)

	query := employeeComponentSelect + `
		WHERE ec.employee_id = ANY($1) AND ec.is_active = TRUE AND pc.is_active = TRUE
		ORDER BY ec.employee_id, pc.code
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employee components: %w", err)
	}
	defer rows.Close()

	return scanEmployeeComponents(rows)
}

// Assign implements payroll.EmployeeComponentRepository.
func (e *employeeComponentRepository) Assign(ctx context.Context, assignment payroll.EmployeeComponent) (payroll.EmployeeComponent, error) {
	q := GetQuerier(ctx, e.db)

	assignment.ID = uuid.NewString()

	query := `
		INSERT INTO employee_components (id, employee_id, pay_component_id, rate_override, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING is_active, created_at
	`

	err := q.QueryRow(ctx, query,
		assignment.ID, assignment.EmployeeID, assignment.PayComponentID, assignment.RateOverride,
	).Scan(&assignment.IsActive, &assignment.CreatedAt)
	if err != nil {
		return payroll.EmployeeComponent{}, fmt.Errorf("failed to assign component: %w", err)
	}

	return assignment, nil
}

// Deactivate implements payroll.EmployeeComponentRepository.
func (e *employeeComponentRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	commandTag, err := q.Exec(ctx, `UPDATE employee_components SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee component: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrEmployeeComponentNotFound
	}

	return nil
}

func scanEmployeeComponents(rows pgx.Rows) ([]payroll.EmployeeComponent, error) {
	assignments := []payroll.EmployeeComponent{}
	for rows.Next() {
		var ec payroll.EmployeeComponent
		if err := rows.Scan(
			&ec.ID, &ec.EmployeeID, &ec.PayComponentID, &ec.RateOverride, &ec.IsActive, &ec.CreatedAt,
			&ec.ComponentCode, &ec.ComponentName, &ec.ComponentKind, &ec.ComponentCalcType, &ec.ComponentDefaultRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee component: %w", err)
		}
		assignments = append(assignments, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee components: %w", err)
	}
	return assignments, nil
}

func NewEmployeeComponentRepository(db *database.DB) payroll.EmployeeComponentRepository {
	return &employeeComponentRepository{db: db}
}
