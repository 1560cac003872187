package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

// CreatePeriod implements payroll.PayrollRepository.
func (p *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, p.db)

	period.ID = uuid.NewString()

	query := `
		INSERT INTO payroll_periods (id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		period.ID, period.Name, period.StartDate, period.EndDate,
	).Scan(&period.CreatedAt)
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return period, nil
}

// GetPeriodByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, start_date, end_date, created_at
		FROM payroll_periods
		WHERE id = $1
	`

	var period payroll.PayrollPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&period.ID, &period.Name, &period.StartDate, &period.EndDate, &period.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return period, nil
}

// ListPeriods implements payroll.PayrollRepository.
func (p *payrollRepository) ListPeriods(ctx context.Context) ([]payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, start_date, end_date, created_at
		FROM payroll_periods
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	periods := []payroll.PayrollPeriod{}
	for rows.Next() {
		var period payroll.PayrollPeriod
		if err := rows.Scan(
			&period.ID, &period.Name, &period.StartDate, &period.EndDate, &period.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll periods: %w", err)
	}

	return periods, nil
}

// GetEntryByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetEntryByID(ctx context.Context, id string) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT pe.id, pe.payroll_period_id, pe.employee_id, pe.total_hours_worked,
			   pe.base_pay, pe.total_deductions, pe.total_bonuses, pe.net_pay,
			   pe.calculated_at, e.full_name
		FROM payroll_entries pe
		JOIN employees e ON e.id = pe.employee_id
		WHERE pe.id = $1
	`

	var entry payroll.PayrollEntry
	err := q.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.PayrollPeriodID, &entry.EmployeeID, &entry.TotalHoursWorked,
		&entry.BasePay, &entry.TotalDeductions, &entry.TotalBonuses, &entry.NetPay,
		&entry.CalculatedAt, &entry.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
		}
		return payroll.PayrollEntry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	lines, err := p.listLines(ctx, []string{entry.ID})
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	entry.Lines = lines[entry.ID]
	if entry.Lines == nil {
		entry.Lines = []payroll.PayrollLine{}
	}

	return entry, nil
}

// ListEntriesForPeriod implements payroll.PayrollRepository.
func (p *payrollRepository) ListEntriesForPeriod(ctx context.Context, periodID string) ([]payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT pe.id, pe.payroll_period_id, pe.employee_id, pe.total_hours_worked,
			   pe.base_pay, pe.total_deductions, pe.total_bonuses, pe.net_pay,
			   pe.calculated_at, e.full_name
		FROM payroll_entries pe
		JOIN employees e ON e.id = pe.employee_id
		WHERE pe.payroll_period_id = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	entries := []payroll.PayrollEntry{}
	entryIDs := []string{}
	for rows.Next() {
		var entry payroll.PayrollEntry
		if err := rows.Scan(
			&entry.ID, &entry.PayrollPeriodID, &entry.EmployeeID, &entry.TotalHoursWorked,
			&entry.BasePay, &entry.TotalDeductions, &entry.TotalBonuses, &entry.NetPay,
			&entry.CalculatedAt, &entry.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll entries: %w", err)
	}

	lines, err := p.listLines(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].ID]
		if entries[i].Lines == nil {
			entries[i].Lines = []payroll.PayrollLine{}
		}
	}

	return entries, nil
}

// CreateEntry implements payroll.PayrollRepository.
func (p *payrollRepository) CreateEntry(ctx context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, p.db)

	entry.ID = uuid.NewString()

	query := `
		INSERT INTO payroll_entries (id, payroll_period_id, employee_id, total_hours_worked,
			base_pay, total_deductions, total_bonuses, net_pay, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING calculated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.PayrollPeriodID, entry.EmployeeID, entry.TotalHoursWorked,
		entry.BasePay, entry.TotalDeductions, entry.TotalBonuses, entry.NetPay,
	).Scan(&entry.CalculatedAt)
	if err != nil {
		return payroll.PayrollEntry{}, fmt.Errorf("failed to create payroll entry: %w", err)
	}

	return entry, nil
}

// UpdateEntryTotals implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateEntryTotals(ctx context.Context, entry payroll.PayrollEntry) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_entries
		SET total_hours_worked = $2,
			base_pay = $3,
			total_deductions = $4,
			total_bonuses = $5,
			net_pay = $6,
			calculated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		entry.ID, entry.TotalHoursWorked, entry.BasePay,
		entry.TotalDeductions, entry.TotalBonuses, entry.NetPay,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll entry totals: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrEntryNotFound
	}

	return nil
}

// DeleteEntry implements payroll.PayrollRepository.
func (p *payrollRepository) DeleteEntry(ctx context.Context, id string) error {
	q := GetQuerier(ctx, p.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_lines WHERE payroll_entry_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete payroll lines: %w", err)
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM payroll_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrEntryNotFound
	}

	return nil
}

// InsertLines implements payroll.PayrollRepository.
func (p *payrollRepository) InsertLines(ctx context.Context, lines []payroll.PayrollLine) error {
	if len(lines) == 0 {
		return nil
	}

	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_lines (id, payroll_entry_id, code, description, kind,
			quantity, rate, amount, is_auto_generated, pay_component_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for i := range lines {
		if lines[i].ID == "" {
			lines[i].ID = uuid.NewString()
		}
		if _, err := q.Exec(ctx, query,
			lines[i].ID, lines[i].PayrollEntryID, lines[i].Code, lines[i].Description, lines[i].Kind,
			lines[i].Quantity, lines[i].Rate, lines[i].Amount, lines[i].IsAutoGenerated, lines[i].PayComponentID,
		); err != nil {
			return fmt.Errorf("failed to insert payroll line: %w", err)
		}
	}

	return nil
}

// UpdateLine implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateLine(ctx context.Context, line payroll.PayrollLine) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_lines
		SET description = $2, quantity = $3, rate = $4, amount = $5
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		line.ID, line.Description, line.Quantity, line.Rate, line.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll line: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrLineNotFound
	}

	return nil
}

// DeleteAutoLines implements payroll.PayrollRepository.
func (p *payrollRepository) DeleteAutoLines(ctx context.Context, entryID string) error {
	q := GetQuerier(ctx, p.db)

	query := `DELETE FROM payroll_lines WHERE payroll_entry_id = $1 AND is_auto_generated = TRUE`
	if _, err := q.Exec(ctx, query, entryID); err != nil {
		return fmt.Errorf("failed to delete auto-generated lines: %w", err)
	}

	return nil
}

// GetLineByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetLineByID(ctx context.Context, id string) (payroll.PayrollLine, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, payroll_entry_id, code, description, kind, quantity, rate, amount,
			   is_auto_generated, pay_component_id, created_at
		FROM payroll_lines
		WHERE id = $1
	`

	var line payroll.PayrollLine
	err := q.QueryRow(ctx, query, id).Scan(
		&line.ID, &line.PayrollEntryID, &line.Code, &line.Description, &line.Kind,
		&line.Quantity, &line.Rate, &line.Amount, &line.IsAutoGenerated, &line.PayComponentID,
		&line.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollLine{}, payroll.ErrLineNotFound
		}
		return payroll.PayrollLine{}, fmt.Errorf("failed to get payroll line: %w", err)
	}

	return line, nil
}

// DeleteLine implements payroll.PayrollRepository.
func (p *payrollRepository) DeleteLine(ctx context.Context, id string) error {
	q := GetQuerier(ctx, p.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM payroll_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll line: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrLineNotFound
	}

	return nil
}

// LockPeriod implements payroll.PayrollRepository.
func (p *payrollRepository) LockPeriod(ctx context.Context, periodID string) error {
	q := GetQuerier(ctx, p.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, periodID); err != nil {
		return fmt.Errorf("failed to lock payroll period: %w", err)
	}

	return nil
}

func (p *payrollRepository) listLines(ctx context.Context, entryIDs []string) (map[string][]payroll.PayrollLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]payroll.PayrollLine{}, nil
	}

	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, payroll_entry_id, code, description, kind, quantity, rate, amount,
			   is_auto_generated, pay_component_id, created_at
		FROM payroll_lines
		WHERE payroll_entry_id = ANY($1)
		ORDER BY is_auto_generated DESC, created_at, code
	`

	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}
	defer rows.Close()

	lines := map[string][]payroll.PayrollLine{}
	for rows.Next() {
		var line payroll.PayrollLine
		if err := rows.Scan(
			&line.ID, &line.PayrollEntryID, &line.Code, &line.Description, &line.Kind,
			&line.Quantity, &line.Rate, &line.Amount, &line.IsAutoGenerated, &line.PayComponentID,
			&line.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll line: %w", err)
		}
		lines[line.PayrollEntryID] = append(lines[line.PayrollEntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll lines: %w", err)
	}

	return lines, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
