package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type timeLogRepository struct {
	db *database.DB
}

// Create implements attendance.TimeLogRepository.
func (t *timeLogRepository) Create(ctx context.Context, log attendance.TimeLog) (attendance.TimeLog, error) {
	q := GetQuerier(ctx, t.db)

	log.ID = uuid.NewString()

	query := `
		INSERT INTO time_logs (id, employee_id, clock_in, clock_out, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.ClockIn, log.ClockOut, log.Source,
	).Scan(&log.CreatedAt)
	if err != nil {
		return attendance.TimeLog{}, fmt.Errorf("failed to create time log: %w", err)
	}

	return log, nil
}

// Close implements attendance.TimeLogRepository.
func (t *timeLogRepository) Close(ctx context.Context, id string, clockOut time.Time) (attendance.TimeLog, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE time_logs
		SET clock_out = $2
		WHERE id = $1 AND clock_out IS NULL
		RETURNING id, employee_id, clock_in, clock_out, source, created_at
	`

	var log attendance.TimeLog
	err := q.QueryRow(ctx, query, id, clockOut).Scan(
		&log.ID, &log.EmployeeID, &log.ClockIn, &log.ClockOut, &log.Source, &log.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.TimeLog{}, attendance.ErrTimeLogNotFound
		}
		return attendance.TimeLog{}, fmt.Errorf("failed to close time log: %w", err)
	}

	return log, nil
}

// GetOpenByEmployee implements attendance.TimeLogRepository.
func (t *timeLogRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.TimeLog, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, employee_id, clock_in, clock_out, source, created_at
		FROM time_logs
		WHERE employee_id = $1 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	var log attendance.TimeLog
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&log.ID, &log.EmployeeID, &log.ClockIn, &log.ClockOut, &log.Source, &log.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open time log: %w", err)
	}

	return &log, nil
}

// ListForEmployeeInRange implements attendance.TimeLogRepository.
func (t *timeLogRepository) ListForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.TimeLog, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, employee_id, clock_in, clock_out, source, created_at
		FROM time_logs
		WHERE employee_id = $1
		  AND clock_in >= $2
		  AND clock_in <= $3
		ORDER BY clock_in
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs in range: %w", err)
	}
	defer rows.Close()

	return scanTimeLogs(rows)
}

// ListForEmployeesOnDate implements attendance.TimeLogRepository.
func (t *timeLogRepository) ListForEmployeesOnDate(ctx context.Context, employeeIDs []string, date time.Time) ([]attendance.TimeLog, error) {
	if len(employeeIDs) == 0 {
		return []attendance.TimeLog{}, nil
	}

	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, employee_id, clock_in, clock_out, source, created_at
		FROM time_logs
		WHERE employee_id = ANY($1)
		  AND clock_in >= $2 AND clock_in < $2 + INTERVAL '1 day'
		ORDER BY employee_id, clock_in
	`

	rows, err := q.Query(ctx, query, employeeIDs, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs on date: %w", err)
	}
	defer rows.Close()

	return scanTimeLogs(rows)
}

// EmployeeIDsWithLogInRange implements attendance.TimeLogRepository.
func (t *timeLogRepository) EmployeeIDsWithLogInRange(ctx context.Context, start, end time.Time) ([]string, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT DISTINCT employee_id
		FROM time_logs
		WHERE clock_in >= $1 AND clock_in <= $2
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids with logs: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// ListStaleOpen implements attendance.TimeLogRepository.
func (t *timeLogRepository) ListStaleOpen(ctx context.Context, cutoff time.Time) ([]attendance.TimeLog, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, employee_id, clock_in, clock_out, source, created_at
		FROM time_logs
		WHERE clock_out IS NULL AND clock_in < $1
		ORDER BY clock_in
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open time logs: %w", err)
	}
	defer rows.Close()

	return scanTimeLogs(rows)
}

// LockEmployee implements attendance.TimeLogRepository.
func (t *timeLogRepository) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, t.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock employee: %w", err)
	}

	return nil
}

func scanTimeLogs(rows pgx.Rows) ([]attendance.TimeLog, error) {
	logs := []attendance.TimeLog{}
	for rows.Next() {
		var log attendance.TimeLog
		if err := rows.Scan(
			&log.ID, &log.EmployeeID, &log.ClockIn, &log.ClockOut, &log.Source, &log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time logs: %w", err)
	}
	return logs, nil
}

func NewTimeLogRepository(db *database.DB) attendance.TimeLogRepository {
	return &timeLogRepository{db: db}
}
