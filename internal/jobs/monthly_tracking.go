package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentledger/internal/ledger"
	"rentledger/internal/models"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
)

// TrackingAction records what happened to one tenant during a monthly run.
type TrackingAction struct {
	TenantID    uuid.UUID `json:"tenantId"`
	TenantName  string    `json:"tenantName"`
	Action      string    `json:"action"` // "inserted" or "skipped"
	Reason      string    `json:"reason,omitempty"`
	RentPending int64     `json:"rentPending"`
	Outstanding int64     `json:"outstanding"`
}

type TrackingRunResult struct {
	ProcessedCount int              `json:"processedCount"`
	Processed      []TrackingAction `json:"processed"`
	Errors         []string         `json:"errors"`
}

// MonthlyTrackingService materializes one ledger row per active tenant for
// the current month. Runs are idempotent: existing (tenant, month) rows are
// skipped, so a crashed or repeated run never double-bills.
type MonthlyTrackingService struct {
	tenantRepo   repositories.TenantRepository
	trackingRepo repositories.TrackingRepository
}

func NewMonthlyTrackingService(tenantRepo repositories.TenantRepository, trackingRepo repositories.TrackingRepository) *MonthlyTrackingService {
	return &MonthlyTrackingService{
		tenantRepo:   tenantRepo,
		trackingRepo: trackingRepo,
	}
}

func (s *MonthlyTrackingService) Run(ctx context.Context, now time.Time) *TrackingRunResult {
	startTime := time.Now()
	log.Printf("[MONTHLY_TRACKING] ========== STARTING MONTHLY RENT TRACKING PROCESS ==========")
	log.Printf("[MONTHLY_TRACKING] Process started at: %s", startTime)

	result := &TrackingRunResult{
		Processed: []TrackingAction{},
		Errors:    []string{},
	}

	rentMonth := ledger.MonthStart(now)
	financialYear, quarter := ledger.FinancialYearAndQuarter(rentMonth)

	log.Printf("[MONTHLY_TRACKING] Processing rent tracking for month: %s", rentMonth.Format(time.RFC3339))

	tenants, err := s.tenantRepo.ListActiveWithFactors(ctx)
	if err != nil {
		errMsg := fmt.Sprintf("Fatal error in monthly rent tracking: %v", err)
		log.Printf("[MONTHLY_TRACKING] %s", errMsg)
		result.Errors = append(result.Errors, errMsg)
		return result
	}

	log.Printf("[MONTHLY_TRACKING] Found %d active tenants to process.", len(tenants))

	if len(tenants) == 0 {
		log.Printf("[MONTHLY_TRACKING] WARNING: No active tenants found. This might indicate a data issue.")
		result.Errors = append(result.Errors, "No active tenants found")
		return result
	}

	for _, tenant := range tenants {
		action, err := s.processTenant(ctx, tenant, rentMonth, financialYear, quarter)
		if err != nil {
			errMsg := fmt.Sprintf("Error processing tenant %s (%s): %v", tenant.TenantName, tenant.TenantID, err)
			log.Printf("[MONTHLY_TRACKING] %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Processed = append(result.Processed, action)
	}
	result.ProcessedCount = len(result.Processed)

	inserted, skipped := 0, 0
	for _, p := range result.Processed {
		if p.Action == "inserted" {
			inserted++
		} else {
			skipped++
		}
	}

	log.Printf("[MONTHLY_TRACKING] ========== MONTHLY RENT TRACKING PROCESS COMPLETED ==========")
	log.Printf("[MONTHLY_TRACKING] Total duration: %s", time.Since(startTime))
	log.Printf("[MONTHLY_TRACKING] Total tenants processed: %d", len(tenants))
	log.Printf("[MONTHLY_TRACKING] Records created: %d", inserted)
	log.Printf("[MONTHLY_TRACKING] Records skipped: %d", skipped)
	log.Printf("[MONTHLY_TRACKING] Errors encountered: %d", len(result.Errors))
	for i, errMsg := range result.Errors {
		log.Printf("[MONTHLY_TRACKING] Error %d: %s", i+1, errMsg)
	}

	return result
}

func (s *MonthlyTrackingService) processTenant(ctx context.Context, tenant repositories.ActiveTenantFactors, rentMonth time.Time, financialYear, quarter string) (TrackingAction, error) {
	existing, err := s.trackingRepo.GetByTenantAndMonth(ctx, tenant.TenantID, rentMonth)
	if err != nil {
		return TrackingAction{}, err
	}
	if existing != nil {
		return TrackingAction{
			TenantID:   tenant.TenantID,
			TenantName: tenant.TenantName,
			Action:     "skipped",
			Reason:     "Already exists",
		}, nil
	}

	// Unpaid dues roll forward from the previous month's ledger row.
	var outstanding int64
	prev, err := s.trackingRepo.GetByTenantAndMonth(ctx, tenant.TenantID, rentMonth.AddDate(0, -1, 0))
	if err != nil {
		return TrackingAction{}, err
	}
	if prev != nil {
		outstanding = prev.OutstandingPending
	}

	rentPending := tenant.BasicRent + tenant.PropertyTax + tenant.RepairCess + tenant.Misc

	entry := &models.RentTracking{
		ID:                 uuid.New(),
		TenantID:           tenant.TenantID,
		RentMonth:          rentMonth,
		RentPending:        rentPending,
		OutstandingAmount:  outstanding,
		OutstandingPending: outstanding,
		FinancialYear:      financialYear,
		Quarter:            quarter,
	}
	if err := s.trackingRepo.Create(ctx, entry); err != nil {
		return TrackingAction{}, err
	}

	return TrackingAction{
		TenantID:    tenant.TenantID,
		TenantName:  tenant.TenantName,
		Action:      "inserted",
		RentPending: rentPending,
		Outstanding: outstanding,
	}, nil
}
