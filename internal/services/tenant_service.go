package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rentledger/internal/caching"
	"rentledger/internal/ledger"
	"rentledger/internal/models"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrTenantRequiredFields = errors.New("required fields are missing")
	ErrTenantNotFound       = errors.New("tenant not found")
)

// AddTenantInput bundles the tenant record with its initial rent factors.
type AddTenantInput struct {
	Tenant      *models.Tenant
	RentFactors *models.RentFactors
}

// UpdateTenantInput is a partial update; nil fields are left untouched.
type UpdateTenantInput struct {
	TenantID       uuid.UUID
	Name           *string
	PropertyID     *uuid.UUID
	Salutation     *string
	BuildingFloor  *string
	PropertyType   *string
	PropertyNumber *string
	MobileNumber   *string
	Notes          *string
	TenancyDate    *time.Time
	TenancyEndDate *time.Time
	IsActive       *bool

	BasicRent   *int64
	PropertyTax *int64
	RepairCess  *int64
	Misc        *int64
}

// MonthStatus is one ledger month in the tenant detail, with the derived
// penalty applicability flags. Enforcement of the trigger date is left to the
// caller; the allocator accepts whatever split the operator chose.
type MonthStatus struct {
	RentMonth             string `json:"RENT_MONTH"`
	RentPending           int64  `json:"RENT_PENDING"`
	PenaltyPending        int64  `json:"PENALTY_PENDING"`
	OutstandingPending    int64  `json:"OUTSTANDING_PENDING"`
	RentCollected         int64  `json:"RENT_COLLECTED"`
	PenaltyPaid           int64  `json:"PENALTY_PAID"`
	OutstandingCollected  int64  `json:"OUTSTANDING_COLLECTED"`
	IsPaid                bool   `json:"isPaid"`
	PenaltyTriggerDate    string `json:"penaltyTriggerDate"`
	PenaltyShouldApply    bool   `json:"penaltyShouldApply"`
}

type TenantDetail struct {
	Tenant         *models.Tenant         `json:"tenant"`
	Property       *models.Property       `json:"property"`
	AllMonths      []MonthStatus          `json:"allMonths"`
	TotalDue       int64                  `json:"totalDue"`
	PaymentHistory []*models.PaymentEntry `json:"paymentHistory"`
	RentFactors    *models.RentFactors    `json:"rentFactors"`
	TotalRent      int64                  `json:"totalRent"`
}

type TenantService interface {
	// AddTenant creates the tenant with its rent factors and pre-fills ledger
	// rows from the tenancy month through the current month. Future tenancy
	// dates skip the pre-fill; the monthly job picks them up when due.
	AddTenant(ctx context.Context, input *AddTenantInput) (uuid.UUID, error)
	UpdateTenant(ctx context.Context, input *UpdateTenantInput) error
	Detail(ctx context.Context, tenantID uuid.UUID, now time.Time) (*TenantDetail, error)
	List(ctx context.Context, filter repositories.TenantListFilter) ([]*models.Tenant, int, error)
}

type tenantService struct {
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
	factorsRepo  repositories.RentFactorsRepository
	trackingRepo repositories.TrackingRepository
	paymentRepo  repositories.PaymentRepository
	cache        caching.CacheService
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	propertyRepo repositories.PropertyRepository,
	factorsRepo repositories.RentFactorsRepository,
	trackingRepo repositories.TrackingRepository,
	paymentRepo repositories.PaymentRepository,
	cache caching.CacheService,
) TenantService {
	return &tenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		factorsRepo:  factorsRepo,
		trackingRepo: trackingRepo,
		paymentRepo:  paymentRepo,
		cache:        cache,
	}
}

func (s *tenantService) AddTenant(ctx context.Context, input *AddTenantInput) (uuid.UUID, error) {
	tenant := input.Tenant
	factors := input.RentFactors
	if tenant == nil || factors == nil || tenant.Name == "" || tenant.PropertyID == nil ||
		factors.BasicRent == 0 || factors.PropertyTax == 0 || factors.RepairCess == 0 || factors.Misc == 0 {
		return uuid.Nil, ErrTenantRequiredFields
	}

	tenant.ID = uuid.New()
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return uuid.Nil, fmt.Errorf("create tenant: %w", err)
	}

	factors.ID = uuid.New()
	factors.TenantID = tenant.ID
	if err := s.factorsRepo.Create(ctx, factors); err != nil {
		return uuid.Nil, fmt.Errorf("create rent factors: %w", err)
	}

	if err := s.prefillTracking(ctx, tenant, factors, time.Now().UTC()); err != nil {
		return uuid.Nil, err
	}

	return tenant.ID, nil
}

// prefillTracking inserts one ledger row per month from the tenancy month to
// the current month so historical dues are billable immediately.
func (s *tenantService) prefillTracking(ctx context.Context, tenant *models.Tenant, factors *models.RentFactors, now time.Time) error {
	if tenant.TenancyDate == nil {
		return nil
	}
	if tenant.TenancyDate.After(now) {
		log.Printf("[TENANT_ADD] Tenancy for %s starts in the future. Skipping pre-fill.", tenant.Name)
		return nil
	}

	totalRent := factors.TotalRent()
	endMonth := ledger.MonthStart(now)
	inserted := 0
	for month := ledger.MonthStart(*tenant.TenancyDate); !month.After(endMonth); month = month.AddDate(0, 1, 0) {
		financialYear, quarter := ledger.FinancialYearAndQuarter(month)
		entry := &models.RentTracking{
			ID:            uuid.New(),
			TenantID:      tenant.ID,
			RentMonth:     month,
			RentPending:   totalRent,
			FinancialYear: financialYear,
			Quarter:       quarter,
		}
		if err := s.trackingRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("pre-fill tracking for %s: %w", month.Format("2006-01"), err)
		}
		inserted++
	}
	if inserted > 0 {
		log.Printf("[TENANT_ADD] Pre-filled %d monthly tracking records for tenant %s.", inserted, tenant.Name)
	}
	return nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, input *UpdateTenantInput) error {
	if input.TenantID == uuid.Nil {
		return ErrTenantRequiredFields
	}

	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTenantNotFound
	}
	if err != nil {
		return fmt.Errorf("load tenant: %w", err)
	}

	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.PropertyID != nil {
		tenant.PropertyID = input.PropertyID
	}
	if input.Salutation != nil {
		tenant.Salutation = input.Salutation
	}
	if input.BuildingFloor != nil {
		tenant.BuildingFloor = input.BuildingFloor
	}
	if input.PropertyType != nil {
		tenant.PropertyType = input.PropertyType
	}
	if input.PropertyNumber != nil {
		tenant.PropertyNumber = input.PropertyNumber
	}
	if input.MobileNumber != nil {
		tenant.MobileNumber = input.MobileNumber
	}
	if input.Notes != nil {
		tenant.Notes = input.Notes
	}
	if input.TenancyDate != nil {
		tenant.TenancyDate = input.TenancyDate
	}
	if input.TenancyEndDate != nil {
		tenant.TenancyEndDate = input.TenancyEndDate
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}

	if input.BasicRent != nil || input.PropertyTax != nil || input.RepairCess != nil || input.Misc != nil {
		latest, err := s.factorsRepo.GetCurrentByTenant(ctx, input.TenantID)
		if err != nil {
			return fmt.Errorf("load rent factors: %w", err)
		}
		if latest == nil {
			latest = &models.RentFactors{ID: uuid.New(), TenantID: input.TenantID}
			applyFactorUpdates(latest, input)
			if err := s.factorsRepo.Create(ctx, latest); err != nil {
				return fmt.Errorf("create rent factors: %w", err)
			}
		} else {
			applyFactorUpdates(latest, input)
			if err := s.factorsRepo.Update(ctx, latest); err != nil {
				return fmt.Errorf("update rent factors: %w", err)
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.DeleteTenantDetail(ctx, input.TenantID); err != nil {
			log.Printf("WARN: failed to invalidate tenant detail cache: %v", err)
		}
	}
	return nil
}

func applyFactorUpdates(factors *models.RentFactors, input *UpdateTenantInput) {
	if input.BasicRent != nil {
		factors.BasicRent = *input.BasicRent
	}
	if input.PropertyTax != nil {
		factors.PropertyTax = *input.PropertyTax
	}
	if input.RepairCess != nil {
		factors.RepairCess = *input.RepairCess
	}
	if input.Misc != nil {
		factors.Misc = *input.Misc
	}
}

func (s *tenantService) Detail(ctx context.Context, tenantID uuid.UUID, now time.Time) (*TenantDetail, error) {
	if s.cache != nil {
		var cached TenantDetail
		hit, err := s.cache.GetTenantDetail(ctx, tenantID, &cached)
		if err != nil {
			log.Printf("WARN: tenant detail cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load tenant: %w", err)
	}

	var property *models.Property
	if tenant.PropertyID != nil {
		property, err = s.propertyRepo.GetByID(ctx, *tenant.PropertyID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("load property: %w", err)
		}
	}

	factors, err := s.factorsRepo.GetCurrentByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load rent factors: %w", err)
	}

	tracking, err := s.trackingRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load ledger months: %w", err)
	}

	payments, err := s.paymentRepo.ListByTenant(ctx, tenantID, 12)
	if err != nil {
		return nil, fmt.Errorf("load payment history: %w", err)
	}

	var months []MonthStatus
	var totalDue int64
	for _, entry := range tracking {
		if entry.RentMonth.After(now) {
			continue
		}
		trigger := ledger.PenaltyTriggerDate(entry.RentMonth)
		month := MonthStatus{
			RentMonth:            entry.RentMonth.Format("2006-01-02"),
			RentPending:          entry.RentPending,
			PenaltyPending:       entry.PenaltyPending,
			OutstandingPending:   entry.OutstandingPending,
			RentCollected:        entry.RentCollected,
			PenaltyPaid:          entry.PenaltyPaid,
			OutstandingCollected: entry.OutstandingCollected,
			IsPaid:               entry.RentPending == 0,
			PenaltyTriggerDate:   trigger.Format(time.RFC3339),
			PenaltyShouldApply:   !now.Before(trigger),
		}
		months = append(months, month)
		if !month.IsPaid {
			totalDue += entry.RentPending + entry.PenaltyPending + entry.OutstandingPending
		}
	}

	detail := &TenantDetail{
		Tenant:         tenant,
		Property:       property,
		AllMonths:      months,
		TotalDue:       totalDue,
		PaymentHistory: payments,
		RentFactors:    factors,
	}
	if factors != nil {
		detail.TotalRent = factors.TotalRent()
	}

	if s.cache != nil {
		if err := s.cache.SetTenantDetail(ctx, tenantID, detail, 2*time.Minute); err != nil {
			log.Printf("WARN: tenant detail cache write failed: %v", err)
		}
	}
	return detail, nil
}

func (s *tenantService) List(ctx context.Context, filter repositories.TenantListFilter) ([]*models.Tenant, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	return s.tenantRepo.List(ctx, filter)
}
