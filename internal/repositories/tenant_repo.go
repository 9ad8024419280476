package repositories

import (
	"context"
	"fmt"

	"rentledger/internal/models"

	"github.com/google/uuid"
)

// ActiveTenantFactors is an active tenant joined with its current rent
// factors, the input row for the monthly tracking job.
type ActiveTenantFactors struct {
	TenantID    uuid.UUID
	TenantName  string
	BasicRent   int64
	PropertyTax int64
	RepairCess  int64
	Misc        int64
}

// TenantListFilter narrows the tenant list endpoint; zero values are ignored.
type TenantListFilter struct {
	PropertyID *uuid.UUID
	Status     string // "active" | "inactive" | ""
	Search     string
	Limit      int
	Offset     int
}

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	List(ctx context.Context, filter TenantListFilter) ([]*models.Tenant, int, error)
	ListActiveWithFactors(ctx context.Context) ([]ActiveTenantFactors, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `id, property_id, name, salutation, building_floor, property_type, property_number, mobile_number, notes, tenancy_date, tenancy_end_date, is_active, created_on, updated_on`

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, property_id, name, salutation, building_floor, property_type, property_number, mobile_number, notes, tenancy_date, tenancy_end_date, is_active, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.PropertyID, tenant.Name, tenant.Salutation, tenant.BuildingFloor, tenant.PropertyType, tenant.PropertyNumber, tenant.MobileNumber, tenant.Notes, tenant.TenancyDate, tenant.TenancyEndDate, tenant.IsActive)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.PropertyID, &tenant.Name, &tenant.Salutation, &tenant.BuildingFloor, &tenant.PropertyType, &tenant.PropertyNumber, &tenant.MobileNumber, &tenant.Notes, &tenant.TenancyDate, &tenant.TenancyEndDate, &tenant.IsActive, &tenant.CreatedOn, &tenant.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET property_id = $1, name = $2, salutation = $3, building_floor = $4, property_type = $5, property_number = $6, mobile_number = $7, notes = $8, tenancy_date = $9, tenancy_end_date = $10, is_active = $11, updated_on = NOW()
		WHERE id = $12
	`
	_, err := r.db.Exec(ctx, query, tenant.PropertyID, tenant.Name, tenant.Salutation, tenant.BuildingFloor, tenant.PropertyType, tenant.PropertyNumber, tenant.MobileNumber, tenant.Notes, tenant.TenancyDate, tenant.TenancyEndDate, tenant.IsActive, tenant.ID)
	return err
}

// List applies the optional filters with parameterized placeholders only;
// no user input is ever concatenated into the SQL text.
func (r *tenantRepo) List(ctx context.Context, filter TenantListFilter) ([]*models.Tenant, int, error) {
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

	if filter.PropertyID != nil {
		addCond("property_id = $%d", *filter.PropertyID)
	}
	switch filter.Status {
	case "active":
		addCond("is_active = $%d", true)
	case "inactive":
		addCond("is_active = $%d", false)
	}
	if filter.Search != "" {
		addCond("(name ILIKE $%[1]d OR property_number ILIKE $%[1]d OR mobile_number ILIKE $%[1]d)", "%"+filter.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM tenants ` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+tenantColumns+` FROM tenants %s ORDER BY name LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.PropertyID, &tenant.Name, &tenant.Salutation, &tenant.BuildingFloor, &tenant.PropertyType, &tenant.PropertyNumber, &tenant.MobileNumber, &tenant.Notes, &tenant.TenancyDate, &tenant.TenancyEndDate, &tenant.IsActive, &tenant.CreatedOn, &tenant.UpdatedOn); err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, total, rows.Err()
}

// ListActiveWithFactors joins each active tenant with its most recent rent
// factors row. Tenants without factors are excluded; the tracking job reports
// them through its error list when they matter.
func (r *tenantRepo) ListActiveWithFactors(ctx context.Context) ([]ActiveTenantFactors, error) {
	query := `
		SELECT t.id, t.name, f.basic_rent, f.property_tax, f.repair_cess, f.misc
		FROM tenants t
		INNER JOIN (
			SELECT DISTINCT ON (tenant_id) tenant_id, basic_rent, property_tax, repair_cess, misc
			FROM rent_factors
			ORDER BY tenant_id, created_on DESC
		) f ON f.tenant_id = t.id
		WHERE t.is_active = TRUE
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ActiveTenantFactors
	for rows.Next() {
		var row ActiveTenantFactors
		if err := rows.Scan(&row.TenantID, &row.TenantName, &row.BasicRent, &row.PropertyTax, &row.RepairCess, &row.Misc); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
