package repositories

import (
	"context"
	"errors"
	"fmt"

	"rentledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentEntry, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*models.PaymentEntry, error)
	List(ctx context.Context, filter models.PaymentListFilter) ([]*models.PaymentListRow, int, error)
	Summary(ctx context.Context) (*models.PaymentSummary, error)
}

type paymentRepo struct {
	db Database
}

func NewPaymentRepo(db Database) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentColumns = `id, tenant_id, rent_month, received_amount, rent_allocated, outstanding_allocated, penalty_allocated, payment_method, payment_date, cheque_number, cheque_date, bank_name, bank_branch, transaction_id, payment_gateway, notes, created_on, updated_on`

func scanPayment(row pgx.Row) (*models.PaymentEntry, error) {
	entry := &models.PaymentEntry{}
	err := row.Scan(&entry.ID, &entry.TenantID, &entry.RentMonth, &entry.ReceivedAmount, &entry.RentAllocated, &entry.OutstandingAllocated, &entry.PenaltyAllocated, &entry.PaymentMethod, &entry.PaymentDate, &entry.ChequeNumber, &entry.ChequeDate, &entry.BankName, &entry.BankBranch, &entry.TransactionID, &entry.PaymentGateway, &entry.Notes, &entry.CreatedOn, &entry.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + ` FROM tenant_payment_entries WHERE id = $1`
	entry, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *paymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*models.PaymentEntry, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM tenant_payment_entries
		WHERE tenant_id = $1
		ORDER BY payment_date DESC, created_on DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.PaymentEntry
	for rows.Next() {
		entry, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// List joins each payment with its tenant, property and the tenant's latest
// ledger row. Filters use parameterized placeholders only.
func (r *paymentRepo) List(ctx context.Context, filter models.PaymentListFilter) ([]*models.PaymentListRow, int, error) {
	where := ""
	args := []any{}

	addCond := func(cond string, arg any) {
		args = append(args, arg)
		cond = fmt.Sprintf(cond, len(args))
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if filter.TenantID != nil {
		addCond("pe.tenant_id = $%d", *filter.TenantID)
	}
	if filter.DateFrom != nil {
		addCond("pe.payment_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCond("pe.payment_date <= $%d", *filter.DateTo)
	}
	if filter.Method != nil {
		addCond("pe.payment_method = $%d", *filter.Method)
	}
	if filter.Search != "" {
		addCond("(tn.name ILIKE $%[1]d OR pe.cheque_number ILIKE $%[1]d OR pe.transaction_id ILIKE $%[1]d)", "%"+filter.Search+"%")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM tenant_payment_entries pe
		JOIN tenants tn ON tn.id = pe.tenant_id
		` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT pe.id, pe.tenant_id, pe.rent_month, pe.received_amount, pe.rent_allocated, pe.outstanding_allocated, pe.penalty_allocated, pe.payment_method, pe.payment_date, pe.cheque_number, pe.cheque_date, pe.bank_name, pe.bank_branch, pe.transaction_id, pe.payment_gateway, pe.notes, pe.created_on, pe.updated_on,
		       tn.name, p.name,
		       COALESCE(f.basic_rent + f.property_tax + f.repair_cess + f.misc, 0),
		       COALESCE(mrt.rent_pending, 0), COALESCE(mrt.penalty_pending, 0), COALESCE(mrt.outstanding_pending, 0)
		FROM tenant_payment_entries pe
		JOIN tenants tn ON tn.id = pe.tenant_id
		LEFT JOIN properties p ON p.id = tn.property_id
		LEFT JOIN (
			SELECT DISTINCT ON (tenant_id) tenant_id, basic_rent, property_tax, repair_cess, misc
			FROM rent_factors
			ORDER BY tenant_id, created_on DESC
		) f ON f.tenant_id = pe.tenant_id
		LEFT JOIN (
			SELECT DISTINCT ON (tenant_id) tenant_id, rent_pending, penalty_pending, outstanding_pending
			FROM monthly_rent_tracking
			ORDER BY tenant_id, rent_month DESC
		) mrt ON mrt.tenant_id = pe.tenant_id
		%s
		ORDER BY pe.payment_date DESC, pe.created_on DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*models.PaymentListRow
	for rows.Next() {
		row := &models.PaymentListRow{}
		if err := rows.Scan(&row.ID, &row.TenantID, &row.RentMonth, &row.ReceivedAmount, &row.RentAllocated, &row.OutstandingAllocated, &row.PenaltyAllocated, &row.PaymentMethod, &row.PaymentDate, &row.ChequeNumber, &row.ChequeDate, &row.BankName, &row.BankBranch, &row.TransactionID, &row.PaymentGateway, &row.Notes, &row.CreatedOn, &row.UpdatedOn, &row.TenantName, &row.PropertyName, &row.TotalRent, &row.RentPending, &row.PenaltyPending, &row.OutstandingPending); err != nil {
			return nil, 0, err
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}

func (r *paymentRepo) Summary(ctx context.Context) (*models.PaymentSummary, error) {
	summary := &models.PaymentSummary{}
	query := `
		SELECT COALESCE((SELECT SUM(received_amount) FROM tenant_payment_entries), 0),
		       COALESCE((SELECT SUM(rent_pending + outstanding_pending + penalty_pending) FROM monthly_rent_tracking), 0)
	`
	if err := r.db.QueryRow(ctx, query).Scan(&summary.TotalReceived, &summary.TotalOutstanding); err != nil {
		return nil, err
	}
	return summary, nil
}
