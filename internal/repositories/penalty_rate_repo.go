package repositories

import (
	"context"
	"errors"

	"rentledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PenaltyRateRepository interface {
	// GetCurrent returns (nil, nil) when no rate has been configured yet;
	// callers fall back to the default rate.
	GetCurrent(ctx context.Context) (*models.PenaltyRate, error)
	// Update archives the current rate into history, writes the new values
	// and appends an entry to the update log.
	Update(ctx context.Context, rate *models.PenaltyRate) error
	History(ctx context.Context) ([]*models.PenaltyRateHistory, error)
}

type penaltyRateRepo struct {
	db Database
}

func NewPenaltyRateRepo(db Database) PenaltyRateRepository {
	return &penaltyRateRepo{db: db}
}

func (r *penaltyRateRepo) GetCurrent(ctx context.Context) (*models.PenaltyRate, error) {
	rate := &models.PenaltyRate{}
	query := `
		SELECT id, interest_rate, effective_from, created_on, updated_on
		FROM penalty_interest_master
		ORDER BY effective_from DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query).Scan(&rate.ID, &rate.InterestRate, &rate.EffectiveFrom, &rate.CreatedOn, &rate.UpdatedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rate, nil
}

func (r *penaltyRateRepo) Update(ctx context.Context, rate *models.PenaltyRate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	current := &models.PenaltyRate{}
	err = tx.QueryRow(ctx, `
		SELECT id, interest_rate, effective_from, created_on
		FROM penalty_interest_master
		ORDER BY created_on DESC
		LIMIT 1
	`).Scan(&current.ID, &current.InterestRate, &current.EffectiveFrom, &current.CreatedOn)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		rate.ID = uuid.New()
		_, err = tx.Exec(ctx, `
			INSERT INTO penalty_interest_master (id, interest_rate, effective_from, created_on, updated_on)
			VALUES ($1, $2, $3, NOW(), NOW())
		`, rate.ID, rate.InterestRate, rate.EffectiveFrom)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		_, err = tx.Exec(ctx, `
			INSERT INTO penalty_interest_history (original_id, interest_rate, effective_from, created_on, updated_on)
			VALUES ($1, $2, $3, $4, NOW())
		`, current.ID, current.InterestRate, current.EffectiveFrom, current.CreatedOn)
		if err != nil {
			return err
		}
		rate.ID = current.ID
		_, err = tx.Exec(ctx, `
			UPDATE penalty_interest_master
			SET interest_rate = $1, effective_from = $2, updated_on = NOW()
			WHERE id = $3
		`, rate.InterestRate, rate.EffectiveFrom, current.ID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO penalty_interest_updates (rate_id, interest_rate, effective_from, created_on)
		VALUES ($1, $2, $3, NOW())
	`, rate.ID, rate.InterestRate, rate.EffectiveFrom)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *penaltyRateRepo) History(ctx context.Context) ([]*models.PenaltyRateHistory, error) {
	query := `
		SELECT id, original_id, interest_rate, effective_from, created_on, updated_on
		FROM penalty_interest_history
		ORDER BY updated_on DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*models.PenaltyRateHistory
	for rows.Next() {
		h := &models.PenaltyRateHistory{}
		if err := rows.Scan(&h.ID, &h.OriginalID, &h.InterestRate, &h.EffectiveFrom, &h.CreatedOn, &h.UpdatedOn); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
