package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

// Create implements schedule.ShiftRepository.
func (s *shiftRepository) Create(ctx context.Context, shift schedule.Shift) (schedule.Shift, error) {
	q := GetQuerier(ctx, s.db)

	overlaps, err := s.hasOverlap(ctx, shift.EmployeeID, shift.Start, shift.End, "")
	if err != nil {
		return schedule.Shift{}, err
	}
	if overlaps {
		return schedule.Shift{}, schedule.ErrShiftOverlap
	}

	shift.ID = uuid.NewString()

	query := `
		INSERT INTO shifts (id, employee_id, start_at, end_at, group_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		shift.ID, shift.EmployeeID, shift.Start, shift.End, shift.GroupName,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		return schedule.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift, nil
}

// Update implements schedule.ShiftRepository.
func (s *shiftRepository) Update(ctx context.Context, shift schedule.Shift) (schedule.Shift, error) {
	q := GetQuerier(ctx, s.db)

	overlaps, err := s.hasOverlap(ctx, shift.EmployeeID, shift.Start, shift.End, shift.ID)
	if err != nil {
		return schedule.Shift{}, err
	}
	if overlaps {
		return schedule.Shift{}, schedule.ErrShiftOverlap
	}

	query := `
		UPDATE shifts
		SET start_at = $2, end_at = $3, group_name = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		shift.ID, shift.Start, shift.End, shift.GroupName,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Shift{}, schedule.ErrShiftNotFound
		}
		return schedule.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return shift, nil
}

// Delete implements schedule.ShiftRepository.
func (s *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}

	return nil
}

// GetByID implements schedule.ShiftRepository.
func (s *shiftRepository) GetByID(ctx context.Context, id string) (schedule.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT s.id, s.employee_id, e.full_name, s.start_at, s.end_at, s.group_name,
			   s.created_at, s.updated_at
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	var shift schedule.Shift
	err := q.QueryRow(ctx, query, id).Scan(
		&shift.ID, &shift.EmployeeID, &shift.EmployeeName, &shift.Start, &shift.End,
		&shift.GroupName, &shift.CreatedAt, &shift.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Shift{}, schedule.ErrShiftNotFound
		}
		return schedule.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return shift, nil
}

// ListForEmployeeInRange implements schedule.ShiftRepository.
func (s *shiftRepository) ListForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT s.id, s.employee_id, e.full_name, s.start_at, s.end_at, s.group_name,
			   s.created_at, s.updated_at
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		  AND s.start_at >= $2
		  AND s.start_at <= $3
		ORDER BY s.start_at
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts in range: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListForDate implements schedule.ShiftRepository.
func (s *shiftRepository) ListForDate(ctx context.Context, date time.Time) ([]schedule.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT s.id, s.employee_id, e.full_name, s.start_at, s.end_at, s.group_name,
			   s.created_at, s.updated_at
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.start_at >= $1 AND s.start_at < $1 + INTERVAL '1 day'
		ORDER BY s.start_at, e.full_name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for date: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// EmployeeIDsWithShiftOnDate implements schedule.ShiftRepository.
func (s *shiftRepository) EmployeeIDsWithShiftOnDate(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT DISTINCT employee_id
		FROM shifts
		WHERE start_at >= $1 AND start_at < $1 + INTERVAL '1 day'
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled employee ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// EmployeeIDsWithShiftOverlapping implements schedule.ShiftRepository.
func (s *shiftRepository) EmployeeIDsWithShiftOverlapping(ctx context.Context, start, end time.Time) ([]string, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT DISTINCT employee_id
		FROM shifts
		WHERE start_at <= $2 AND end_at >= $1
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids with shifts: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// hasOverlap reports whether [start, end) intersects another shift of the
// employee. excludeID skips the shift being updated.
func (s *shiftRepository) hasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM shifts
			WHERE employee_id = $1
			  AND start_at < $3
			  AND end_at > $2
			  AND ($4 = '' OR id <> $4)
		)
	`

	var overlaps bool
	if err := q.QueryRow(ctx, query, employeeID, start, end, excludeID).Scan(&overlaps); err != nil {
		return false, fmt.Errorf("failed to check shift overlap: %w", err)
	}

	return overlaps, nil
}

func scanShifts(rows pgx.Rows) ([]schedule.Shift, error) {
	shifts := []schedule.Shift{}
	for rows.Next() {
		var shift schedule.Shift
		if err := rows.Scan(
			&shift.ID, &shift.EmployeeID, &shift.EmployeeName, &shift.Start, &shift.End,
			&shift.GroupName, &shift.CreatedAt, &shift.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ids: %w", err)
	}
	return ids, nil
}

func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepository{db: db}
}
