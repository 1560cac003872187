package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/employee"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListByIDs implements employee.EmployeeRepository.
func (e *employeeRepository) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return []employee.Employee{}, nil
	}

	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, is_active, created_at, updated_at
		FROM employees
		WHERE id = ANY($1)
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by ids: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListActiveByIDsPaged implements employee.EmployeeRepository.
func (e *employeeRepository) ListActiveByIDsPaged(ctx context.Context, ids []string, page, pageSize int) ([]employee.Employee, int64, error) {
	if len(ids) == 0 {
		return []employee.Employee{}, 0, nil
	}

	q := GetQuerier(ctx, e.db)

	countQuery := `
		SELECT COUNT(*)
		FROM employees
		WHERE id = ANY($1) AND is_active = TRUE
	`

	var total int64
	if err := q.QueryRow(ctx, countQuery, ids).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `
		SELECT id, full_name, email, is_active, created_at, updated_at
		FROM employees
		WHERE id = ANY($1) AND is_active = TRUE
		ORDER BY full_name
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * pageSize
	rows, err := q.Query(ctx, query, ids, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees paged: %w", err)
	}
	defer rows.Close()

	employees, err := scanEmployees(rows)
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	employees := []employee.Employee{}
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.Email, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
