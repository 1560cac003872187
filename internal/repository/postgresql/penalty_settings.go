package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
)

type penaltySettingsRepository struct {
	db *database.DB
}

// GetOrCreate implements payroll.PenaltySettingsRepository.
func (p *penaltySettingsRepository) GetOrCreate(ctx context.Context) (payroll.PenaltySettings, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, late_penalty_per_minute, undertime_penalty_per_minute,
			   absence_full_day_multiplier, overtime_bonus_per_minute, updated_at
		FROM penalty_settings
		ORDER BY updated_at
		LIMIT 1
	`

	var settings payroll.PenaltySettings
	err := q.QueryRow(ctx, query).Scan(
		&settings.ID, &settings.LatePenaltyPerMinute, &settings.UndertimePenaltyPerMinute,
		&settings.AbsenceFullDayMultiplier, &settings.OvertimeBonusPerMinute, &settings.UpdatedAt,
	)
	if err == nil {
		return settings, nil
	}
	if err != pgx.ErrNoRows {
		return payroll.PenaltySettings{}, fmt.Errorf("failed to get penalty settings: %w", err)
	}

	// First access: seed a zero-valued row so penalties stay off until
	// someone configures them.
	insert := `
		INSERT INTO penalty_settings (id, late_penalty_per_minute, undertime_penalty_per_minute,
			absence_full_day_multiplier, overtime_bonus_per_minute)
		VALUES ($1, 0, 0, 0, 0)
		RETURNING id, late_penalty_per_minute, undertime_penalty_per_minute,
			absence_full_day_multiplier, overtime_bonus_per_minute, updated_at
	`

	err = q.QueryRow(ctx, insert, uuid.NewString()).Scan(
		&settings.ID, &settings.LatePenaltyPerMinute, &settings.UndertimePenaltyPerMinute,
		&settings.AbsenceFullDayMultiplier, &settings.OvertimeBonusPerMinute, &settings.UpdatedAt,
	)
	if err != nil {
		return payroll.PenaltySettings{}, fmt.Errorf("failed to create penalty settings: %w", err)
	}

	return settings, nil
}

// Update implements payroll.PenaltySettingsRepository.
func (p *penaltySettingsRepository) Update(ctx context.Context, settings payroll.PenaltySettings) (payroll.PenaltySettings, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE penalty_settings
		SET late_penalty_per_minute = $2,
			undertime_penalty_per_minute = $3,
			absence_full_day_multiplier = $4,
			overtime_bonus_per_minute = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		settings.ID, settings.LatePenaltyPerMinute, settings.UndertimePenaltyPerMinute,
		settings.AbsenceFullDayMultiplier, settings.OvertimeBonusPerMinute,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		return payroll.PenaltySettings{}, fmt.Errorf("failed to update penalty settings: %w", err)
	}

	return settings, nil
}

func NewPenaltySettingsRepository(db *database.DB) payroll.PenaltySettingsRepository {
	return &penaltySettingsRepository{db: db}
}
