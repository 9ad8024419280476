package repositories

import (
	"context"
	"errors"

	"rentledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RentFactorsRepository interface {
	Create(ctx context.Context, factors *models.RentFactors) error
	// GetCurrentByTenant returns the latest factors row for the tenant, or
	// (nil, nil) when the tenant has none.
	GetCurrentByTenant(ctx context.Context, tenantID uuid.UUID) (*models.RentFactors, error)
	Update(ctx context.Context, factors *models.RentFactors) error
	ListAll(ctx context.Context) ([]*models.RentFactors, error)
}

type rentFactorsRepo struct {
	db Database
}

func NewRentFactorsRepo(db Database) RentFactorsRepository {
	return &rentFactorsRepo{db: db}
}

const rentFactorColumns = `id, tenant_id, basic_rent, property_tax, repair_cess, misc, cheque_return_charge, effective_from, created_on, updated_on`

func (r *rentFactorsRepo) Create(ctx context.Context, factors *models.RentFactors) error {
	query := `
		INSERT INTO rent_factors (id, tenant_id, basic_rent, property_tax, repair_cess, misc, cheque_return_charge, effective_from, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, factors.ID, factors.TenantID, factors.BasicRent, factors.PropertyTax, factors.RepairCess, factors.Misc, factors.ChequeReturnCharge, factors.EffectiveFrom)
	return err
}

func (r *rentFactorsRepo) GetCurrentByTenant(ctx context.Context, tenantID uuid.UUID) (*models.RentFactors, error) {
	factors := &models.RentFactors{}
	query := `
		SELECT ` + rentFactorColumns + `
		FROM rent_factors
		WHERE tenant_id = $1
		ORDER BY created_on DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&factors.ID, &factors.TenantID, &factors.BasicRent, &factors.PropertyTax, &factors.RepairCess, &factors.Misc, &factors.ChequeReturnCharge, &factors.EffectiveFrom, &factors.CreatedOn, &factors.UpdatedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return factors, nil
}

func (r *rentFactorsRepo) Update(ctx context.Context, factors *models.RentFactors) error {
	query := `
		UPDATE rent_factors
		SET basic_rent = $1, property_tax = $2, repair_cess = $3, misc = $4, cheque_return_charge = $5, effective_from = $6, updated_on = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, factors.BasicRent, factors.PropertyTax, factors.RepairCess, factors.Misc, factors.ChequeReturnCharge, factors.EffectiveFrom, factors.ID)
	return err
}

func (r *rentFactorsRepo) ListAll(ctx context.Context) ([]*models.RentFactors, error) {
	query := `SELECT ` + rentFactorColumns + ` FROM rent_factors WHERE tenant_id IS NOT NULL ORDER BY created_on`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []*models.RentFactors
	for rows.Next() {
		factors := &models.RentFactors{}
		if err := rows.Scan(&factors.ID, &factors.TenantID, &factors.BasicRent, &factors.PropertyTax, &factors.RepairCess, &factors.Misc, &factors.ChequeReturnCharge, &factors.EffectiveFrom, &factors.CreatedOn, &factors.UpdatedOn); err != nil {
			return nil, err
		}
		all = append(all, factors)
	}
	return all, rows.Err()
}
