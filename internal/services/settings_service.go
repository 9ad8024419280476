package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"rentledger/internal/models"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidPenaltyRate     = errors.New("invalid penalty rate (must be 0-100)")
	ErrEffectiveDateRequired  = errors.New("effective date is required")
	ErrEffectiveDateNotFuture = errors.New("effective date must be tomorrow or later")
	ErrInvalidPercentage      = errors.New("invalid increment percentage")
	ErrFactorsNotFound        = errors.New("tenant rent factors not found")
	ErrNoFactorsToUpdate      = errors.New("no tenant rent factors found to update")
)

// FactorBatchInput is one bulk percentage update applied to every tenant's
// rent factors in a single transaction.
type FactorBatchInput struct {
	BasicRentPercentage   float64
	PropertyTaxPercentage float64
	RepairCessPercentage  float64
	MiscPercentage        float64
	EffectiveFrom         time.Time
}

type SystemSettings struct {
	DefaultPenaltyPercent int64 `json:"defaultPenaltyPercent"`
}

type SettingsService interface {
	UpdatePenaltyRate(ctx context.Context, newRate int64, effectiveFrom time.Time, now time.Time) error
	CurrentPenaltyRate(ctx context.Context) (*models.PenaltyRate, error)
	PenaltyRateHistory(ctx context.Context) ([]*models.PenaltyRateHistory, error)
	System(ctx context.Context) (*SystemSettings, error)
	// BulkFactorUpdate archives every tenant's current factors, applies the
	// percentage changes and logs the batch, all in one transaction. Returns
	// the number of tenants updated.
	BulkFactorUpdate(ctx context.Context, input *FactorBatchInput) (int, error)
	// BulkRentIncrement raises basic rent by a percentage for all tenants.
	BulkRentIncrement(ctx context.Context, incrementPercentage float64) (int, error)
	// TenantRentIncrement raises one tenant's basic rent by a percentage.
	TenantRentIncrement(ctx context.Context, tenantID uuid.UUID, incrementPercentage float64) error
}

type settingsService struct {
	db          repositories.Database
	rateRepo    repositories.PenaltyRateRepository
	factorsRepo repositories.RentFactorsRepository
}

func NewSettingsService(db repositories.Database, rateRepo repositories.PenaltyRateRepository, factorsRepo repositories.RentFactorsRepository) SettingsService {
	return &settingsService{
		db:          db,
		rateRepo:    rateRepo,
		factorsRepo: factorsRepo,
	}
}

func (s *settingsService) UpdatePenaltyRate(ctx context.Context, newRate int64, effectiveFrom time.Time, now time.Time) error {
	if newRate < 0 || newRate > 100 {
		return ErrInvalidPenaltyRate
	}
	if effectiveFrom.IsZero() {
		return ErrEffectiveDateRequired
	}
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if effectiveFrom.Before(tomorrow) {
		return ErrEffectiveDateNotFuture
	}

	rate := &models.PenaltyRate{InterestRate: newRate, EffectiveFrom: &effectiveFrom}
	if err := s.rateRepo.Update(ctx, rate); err != nil {
		return fmt.Errorf("update penalty rate: %w", err)
	}
	return nil
}

func (s *settingsService) CurrentPenaltyRate(ctx context.Context) (*models.PenaltyRate, error) {
	return s.rateRepo.GetCurrent(ctx)
}

func (s *settingsService) PenaltyRateHistory(ctx context.Context) ([]*models.PenaltyRateHistory, error) {
	return s.rateRepo.History(ctx)
}

func (s *settingsService) System(ctx context.Context) (*SystemSettings, error) {
	rate, err := s.rateRepo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	settings := &SystemSettings{}
	if rate != nil {
		settings.DefaultPenaltyPercent = rate.InterestRate
	}
	return settings, nil
}

func applyPercentage(amount int64, percentage float64) int64 {
	return int64(math.Round(float64(amount) * (1 + percentage/100)))
}

func (s *settingsService) BulkFactorUpdate(ctx context.Context, input *FactorBatchInput) (int, error) {
	if input.BasicRentPercentage < 0 || input.PropertyTaxPercentage < 0 ||
		input.RepairCessPercentage < 0 || input.MiscPercentage < 0 {
		return 0, ErrInvalidPercentage
	}
	if input.EffectiveFrom.IsZero() {
		return 0, ErrEffectiveDateRequired
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin factor update transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var batchID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO tenant_factor_update_batches (basic_rent_percentage, property_tax_percentage, repair_cess_percentage, misc_percentage, created_on)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`, input.BasicRentPercentage, input.PropertyTaxPercentage, input.RepairCessPercentage, input.MiscPercentage).Scan(&batchID)
	if err != nil {
		return 0, fmt.Errorf("log factor update batch: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, tenant_id, basic_rent, property_tax, repair_cess, misc
		FROM rent_factors
		WHERE tenant_id IS NOT NULL
	`)
	if err != nil {
		return 0, fmt.Errorf("load rent factors: %w", err)
	}

	var factors []*models.RentFactors
	for rows.Next() {
		f := &models.RentFactors{}
		if err := rows.Scan(&f.ID, &f.TenantID, &f.BasicRent, &f.PropertyTax, &f.RepairCess, &f.Misc); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan rent factors: %w", err)
		}
		factors = append(factors, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("load rent factors: %w", err)
	}
	if len(factors) == 0 {
		return 0, ErrNoFactorsToUpdate
	}

	effectiveTill := input.EffectiveFrom.AddDate(0, 0, -1)
	for _, factor := range factors {
		_, err = tx.Exec(ctx, `
			INSERT INTO rent_factors_history (original_id, tenant_id, basic_rent, property_tax, repair_cess, misc, effective_till, batch_id, created_on, updated_on)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		`, factor.ID, factor.TenantID, factor.BasicRent, factor.PropertyTax, factor.RepairCess, factor.Misc, effectiveTill, batchID)
		if err != nil {
			return 0, fmt.Errorf("archive rent factors for tenant %s: %w", factor.TenantID, err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE rent_factors
			SET basic_rent = $1, property_tax = $2, repair_cess = $3, misc = $4, effective_from = $5, updated_on = NOW()
			WHERE id = $6
		`, applyPercentage(factor.BasicRent, input.BasicRentPercentage),
			applyPercentage(factor.PropertyTax, input.PropertyTaxPercentage),
			applyPercentage(factor.RepairCess, input.RepairCessPercentage),
			applyPercentage(factor.Misc, input.MiscPercentage),
			input.EffectiveFrom, factor.ID)
		if err != nil {
			return 0, fmt.Errorf("update rent factors for tenant %s: %w", factor.TenantID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit factor update transaction: %w", err)
	}
	return len(factors), nil
}

func (s *settingsService) BulkRentIncrement(ctx context.Context, incrementPercentage float64) (int, error) {
	factors, err := s.factorsRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load rent factors: %w", err)
	}

	for _, factor := range factors {
		factor.BasicRent = applyPercentage(factor.BasicRent, incrementPercentage)
		if err := s.factorsRepo.Update(ctx, factor); err != nil {
			return 0, fmt.Errorf("update rent factors for tenant %s: %w", factor.TenantID, err)
		}
	}
	return len(factors), nil
}

func (s *settingsService) TenantRentIncrement(ctx context.Context, tenantID uuid.UUID, incrementPercentage float64) error {
	factors, err := s.factorsRepo.GetCurrentByTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load rent factors: %w", err)
	}
	if factors == nil {
		return ErrFactorsNotFound
	}

	factors.BasicRent = applyPercentage(factors.BasicRent, incrementPercentage)
	if err := s.factorsRepo.Update(ctx, factors); err != nil {
		return fmt.Errorf("update rent factors: %w", err)
	}
	return nil
}
