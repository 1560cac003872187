package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type payComponentRepository struct {
	db *database.DB
}

// Create implements payroll.PayComponentRepository.
func (p *payComponentRepository) Create(ctx context.Context, component payroll.PayComponent) (payroll.PayComponent, error) {
	q := GetQuerier(ctx, p.db)

	component.ID = uuid.NewString()

	query := `
		INSERT INTO pay_components (id, code, name, kind, calc_type, default_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		component.ID, component.Code, component.Name, component.Kind, component.CalcType, component.DefaultRate,
	).Scan(&component.IsActive, &component.CreatedAt, &component.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayComponent{}, payroll.ErrPayComponentCodeExists
		}
		return payroll.PayComponent{}, fmt.Errorf("failed to create pay component: %w", err)
	}

	return component, nil
}

// GetByID implements payroll.PayComponentRepository.
func (p *payComponentRepository) GetByID(ctx context.Context, id string) (payroll.PayComponent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, code, name, kind, calc_type, default_rate, is_active, created_at, updated_at
		FROM pay_components
		WHERE id = $1
	`

	var component payroll.PayComponent
	err := q.QueryRow(ctx, query, id).Scan(
		&component.ID, &component.Code, &component.Name, &component.Kind, &component.CalcType,
		&component.DefaultRate, &component.IsActive, &component.CreatedAt, &component.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayComponent{}, payroll.ErrPayComponentNotFound
		}
		return payroll.PayComponent{}, fmt.Errorf("failed to get pay component: %w", err)
	}

	return component, nil
}

// List implements payroll.PayComponentRepository.
func (p *payComponentRepository) List(ctx context.Context, activeOnly bool) ([]payroll.PayComponent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, code, name, kind, calc_type, default_rate, is_active, created_at, updated_at
		FROM pay_components
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay components: %w", err)
	}
	defer rows.Close()

	components := []payroll.PayComponent{}
	for rows.Next() {
		var component payroll.PayComponent
		if err := rows.Scan(
			&component.ID, &component.Code, &component.Name, &component.Kind, &component.CalcType,
			&component.DefaultRate, &component.IsActive, &component.CreatedAt, &component.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pay component: %w", err)
		}
		components = append(components, component)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pay components: %w", err)
	}

	return components, nil
}

// Update implements payroll.PayComponentRepository.
func (p *payComponentRepository) Update(ctx context.Context, req payroll.UpdatePayComponentRequest) (payroll.PayComponent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE pay_components
		SET name = COALESCE($2, name),
			default_rate = COALESCE($3, default_rate),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, code, name, kind, calc_type, default_rate, is_active, created_at, updated_at
	`

	var component payroll.PayComponent
	err := q.QueryRow(ctx, query, req.ID, req.Name, req.DefaultRate, req.IsActive).Scan(
		&component.ID, &component.Code, &component.Name, &component.Kind, &component.CalcType,
		&component.DefaultRate, &component.IsActive, &component.CreatedAt, &component.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayComponent{}, payroll.ErrPayComponentNotFound
		}
		return payroll.PayComponent{}, fmt.Errorf("failed to update pay component: %w", err)
	}

	return component, nil
}

func NewPayComponentRepository(db *database.DB) payroll.PayComponentRepository {
	return &payComponentRepository{db: db}
}
