package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type compensationRepository struct {
	db *database.DB
}

// GetByEmployee implements payroll.CompensationRepository.
func (c *compensationRepository) GetByEmployee(ctx context.Context, employeeID string) (payroll.Compensation, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT employee_id, is_hourly, hourly_rate, fixed_monthly_salary, updated_at
		FROM employee_compensations
		WHERE employee_id = $1
	`

	var comp payroll.Compensation
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&comp.EmployeeID, &comp.IsHourly, &comp.HourlyRate, &comp.FixedMonthlySalary, &comp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Compensation{}, payroll.ErrCompensationNotFound
		}
		return payroll.Compensation{}, fmt.Errorf("failed to get compensation: %w", err)
	}

	return comp, nil
}

// ListByEmployees implements payroll.CompensationRepository.
func (c *compensationRepository) ListByEmployees(ctx context.Context, employeeIDs []string) ([]payroll.Compensation, error) {
	if len(employeeIDs) == 0 {
		return []payroll.Compensation{}, nil
	}

	q := GetQuerier(ctx, c.db)

	query := `
		SELECT employee_id, is_hourly, hourly_rate, fixed_monthly_salary, updated_at
		FROM employee_compensations
		WHERE employee_id = ANY($1)
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensations: %w", err)
	}
	defer rows.Close()

	comps := []payroll.Compensation{}
	for rows.Next() {
		var comp payroll.Compensation
		if err := rows.Scan(
			&comp.EmployeeID, &comp.IsHourly, &comp.HourlyRate, &comp.FixedMonthlySalary, &comp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan compensation: %w", err)
		}
		comps = append(comps, comp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate compensations: %w", err)
	}

	return comps, nil
}

// Upsert implements payroll.CompensationRepository.
func (c *compensationRepository) Upsert(ctx context.Context, comp payroll.Compensation) (payroll.Compensation, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO employee_compensations (employee_id, is_hourly, hourly_rate, fixed_monthly_salary, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (employee_id) DO UPDATE
		SET is_hourly = EXCLUDED.is_hourly,
			hourly_rate = EXCLUDED.hourly_rate,
			fixed_monthly_salary = EXCLUDED.fixed_monthly_salary,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		comp.EmployeeID, comp.IsHourly, comp.HourlyRate, comp.FixedMonthlySalary,
	).Scan(&comp.UpdatedAt)
	if err != nil {
		return payroll.Compensation{}, fmt.Errorf("failed to upsert compensation: %w", err)
	}

	return comp, nil
}

func NewCompensationRepository(db *database.DB) payroll.CompensationRepository {
	return &compensationRepository{db: db}
}
