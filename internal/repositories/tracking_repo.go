package repositories

import (
	"context"
	"errors"
	"time"

	"rentledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TrackingRepository interface {
	Create(ctx context.Context, entry *models.RentTracking) error
	// GetByTenantAndMonth returns (nil, nil) when the tenant has no ledger
	// entry for that month.
	GetByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, rentMonth time.Time) (*models.RentTracking, error)
	GetLatestByTenant(ctx context.Context, tenantID uuid.UUID) (*models.RentTracking, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentTracking, error)
	ListUnpaidInRange(ctx context.Context, start, end time.Time) ([]*models.UnpaidRentRecord, error)
	ApplyPenalty(ctx context.Context, trackingID uuid.UUID, penalty int64) error
	UnpaidBalances(ctx context.Context) ([]*models.UnpaidBalance, error)
}

type trackingRepo struct {
	db Database
}

func NewTrackingRepo(db Database) TrackingRepository {
	return &trackingRepo{db: db}
}

const trackingColumns = `id, tenant_id, rent_month, rent_collected, rent_pending, outstanding_amount, outstanding_collected, outstanding_pending, penalty_amount, penalty_paid, penalty_pending, financial_year, quarter, created_on, updated_on`

func scanTracking(row pgx.Row) (*models.RentTracking, error) {
	entry := &models.RentTracking{}
	err := row.Scan(&entry.ID, &entry.TenantID, &entry.RentMonth, &entry.RentCollected, &entry.RentPending, &entry.OutstandingAmount, &entry.OutstandingCollected, &entry.OutstandingPending, &entry.PenaltyAmount, &entry.PenaltyPaid, &entry.PenaltyPending, &entry.FinancialYear, &entry.Quarter, &entry.CreatedOn, &entry.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *trackingRepo) Create(ctx context.Context, entry *models.RentTracking) error {
	query := `
		INSERT INTO monthly_rent_tracking (id, tenant_id, rent_month, rent_collected, rent_pending, outstanding_amount, outstanding_collected, outstanding_pending, penalty_amount, penalty_paid, penalty_pending, financial_year, quarter, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.TenantID, entry.RentMonth, entry.RentCollected, entry.RentPending, entry.OutstandingAmount, entry.OutstandingCollected, entry.OutstandingPending, entry.PenaltyAmount, entry.PenaltyPaid, entry.PenaltyPending, entry.FinancialYear, entry.Quarter)
	return err
}

func (r *trackingRepo) GetByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, rentMonth time.Time) (*models.RentTracking, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM monthly_rent_tracking
		WHERE tenant_id = $1 AND rent_month = $2
	`
	entry, err := scanTracking(r.db.QueryRow(ctx, query, tenantID, rentMonth))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *trackingRepo) GetLatestByTenant(ctx context.Context, tenantID uuid.UUID) (*models.RentTracking, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM monthly_rent_tracking
		WHERE tenant_id = $1
		ORDER BY rent_month DESC
		LIMIT 1
	`
	entry, err := scanTracking(r.db.QueryRow(ctx, query, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *trackingRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentTracking, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM monthly_rent_tracking
		WHERE tenant_id = $1
		ORDER BY rent_month DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.RentTracking
	for rows.Next() {
		entry, err := scanTracking(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListUnpaidInRange selects ledger rows with unpaid rent whose month falls
// in the half-open [start, end) window.
func (r *trackingRepo) ListUnpaidInRange(ctx context.Context, start, end time.Time) ([]*models.UnpaidRentRecord, error) {
	query := `
		SELECT t.id, t.tenant_id, tn.name, t.rent_month, t.rent_pending, t.outstanding_pending, t.penalty_amount
		FROM monthly_rent_tracking t
		JOIN tenants tn ON tn.id = t.tenant_id
		WHERE t.rent_month >= $1 AND t.rent_month < $2
		  AND t.rent_pending > 0
		ORDER BY tn.name, t.rent_month
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.UnpaidRentRecord
	for rows.Next() {
		rec := &models.UnpaidRentRecord{}
		if err := rows.Scan(&rec.TrackingID, &rec.TenantID, &rec.TenantName, &rec.RentMonth, &rec.RentPending, &rec.OutstandingPending, &rec.CurrentPenalty); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ApplyPenalty overwrites the quarter's penalty on a ledger row. Any partial
// penalty payment from the previous quarter is cleared so the new figure is
// owed in full.
func (r *trackingRepo) ApplyPenalty(ctx context.Context, trackingID uuid.UUID, penalty int64) error {
	query := `
		UPDATE monthly_rent_tracking
		SET penalty_amount = $1, penalty_pending = $1, penalty_paid = 0, updated_on = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, penalty, trackingID)
	return err
}

func (r *trackingRepo) UnpaidBalances(ctx context.Context) ([]*models.UnpaidBalance, error) {
	query := `
		SELECT tn.id, tn.name, COALESCE(p.name, ''),
		       SUM(t.rent_pending + t.outstanding_pending),
		       MIN(t.rent_month),
		       SUM(t.penalty_pending)
		FROM monthly_rent_tracking t
		JOIN tenants tn ON tn.id = t.tenant_id
		LEFT JOIN properties p ON p.id = tn.property_id
		WHERE t.rent_pending > 0 OR t.outstanding_pending > 0 OR t.penalty_pending > 0
		GROUP BY tn.id, tn.name, p.name
		ORDER BY tn.name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*models.UnpaidBalance
	for rows.Next() {
		b := &models.UnpaidBalance{}
		if err := rows.Scan(&b.TenantID, &b.TenantName, &b.PropertyName, &b.OutstandingAmount, &b.DueDate, &b.Penalty); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
