package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentledger/internal/ledger"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
)

// DefaultPenaltyRate is the fallback interest percentage when no rate has
// been configured.
const DefaultPenaltyRate = 5

// PenaltyDetail records the decision taken for one ledger row.
type PenaltyDetail struct {
	TenantID          uuid.UUID `json:"tenantId"`
	TenantName        string    `json:"tenantName"`
	RentMonth         time.Time `json:"rentMonth"`
	Action            string    `json:"action"` // "updated" or "skipped"
	Reason            string    `json:"reason,omitempty"`
	PenaltyBaseAmount int64     `json:"penaltyBaseAmount,omitempty"`
	PenaltyAmount     int64     `json:"penaltyAmount,omitempty"`
	CurrentPenalty    int64     `json:"currentPenalty,omitempty"`
}

type PenaltyRunSummary struct {
	QuarterProcessed   string `json:"quarterProcessed"`
	PenaltyRate        string `json:"penaltyRate"`
	TotalRecordsFound  int    `json:"totalRecordsFound"`
	RecordsUpdated     int    `json:"recordsUpdated"`
	RecordsSkipped     int    `json:"recordsSkipped"`
	TotalPenaltyAmount int64  `json:"totalPenaltyAmount"`
}

type PenaltyRunResult struct {
	ProcessedCount int               `json:"processedCount"`
	Errors         []string          `json:"errors"`
	Details        []PenaltyDetail   `json:"details"`
	Summary        PenaltyRunSummary `json:"summary"`
}

// PenaltyProcessorService accrues late-payment penalties on ledger rows from
// the previous calendar quarter that still carry unpaid rent. The penalty
// replaces the row's previous figure; it never accumulates, and a recorded
// penalty equal to or above the newly computed one is left untouched.
type PenaltyProcessorService struct {
	trackingRepo repositories.TrackingRepository
	rateRepo     repositories.PenaltyRateRepository
}

func NewPenaltyProcessorService(trackingRepo repositories.TrackingRepository, rateRepo repositories.PenaltyRateRepository) *PenaltyProcessorService {
	return &PenaltyProcessorService{
		trackingRepo: trackingRepo,
		rateRepo:     rateRepo,
	}
}

func (s *PenaltyProcessorService) Run(ctx context.Context, now time.Time) *PenaltyRunResult {
	startTime := time.Now()
	log.Printf("[PENALTY_PROCESSOR] ========== STARTING QUARTERLY PENALTY PROCESSING ==========")
	log.Printf("[PENALTY_PROCESSOR] Process started at: %s", startTime)

	result := &PenaltyRunResult{
		Errors:  []string{},
		Details: []PenaltyDetail{},
	}

	startDate, endDate := ledger.PreviousQuarterRange(now)
	quarterLabel := fmt.Sprintf("%s to %s", startDate.Format(time.RFC3339), endDate.Format(time.RFC3339))
	log.Printf("[PENALTY_PROCESSOR] Quarter period: %s (exclusive)", quarterLabel)

	rate := int64(DefaultPenaltyRate)
	current, err := s.rateRepo.GetCurrent(ctx)
	if err != nil {
		errMsg := fmt.Sprintf("Fatal error in quarterly penalty processing: %v", err)
		log.Printf("[PENALTY_PROCESSOR] %s", errMsg)
		result.Errors = append(result.Errors, errMsg)
		result.Summary = PenaltyRunSummary{QuarterProcessed: "Error occurred before processing", PenaltyRate: "Unknown"}
		return result
	}
	source := "default fallback"
	if current != nil {
		rate = current.InterestRate
		source = "from database"
	}
	log.Printf("[PENALTY_PROCESSOR] Penalty rate to be applied: %d%% (%s)", rate, source)

	unpaid, err := s.trackingRepo.ListUnpaidInRange(ctx, startDate, endDate)
	if err != nil {
		errMsg := fmt.Sprintf("Fatal error in quarterly penalty processing: %v", err)
		log.Printf("[PENALTY_PROCESSOR] %s", errMsg)
		result.Errors = append(result.Errors, errMsg)
		result.Summary = PenaltyRunSummary{QuarterProcessed: "Error occurred before processing", PenaltyRate: "Unknown"}
		return result
	}

	log.Printf("[PENALTY_PROCESSOR] Found %d tenant records with unpaid rent from previous quarter", len(unpaid))

	rateLabel := fmt.Sprintf("%d%%", rate)
	if len(unpaid) == 0 {
		log.Printf("[PENALTY_PROCESSOR] No unpaid rent records found. No penalties to apply.")
		result.Summary = PenaltyRunSummary{QuarterProcessed: quarterLabel, PenaltyRate: rateLabel}
		return result
	}

	var updated int
	var totalPenalty int64
	for _, record := range unpaid {
		base := record.RentPending
		if base <= 0 {
			result.Details = append(result.Details, PenaltyDetail{
				TenantID:   record.TenantID,
				TenantName: record.TenantName,
				RentMonth:  record.RentMonth,
				Action:     "skipped",
				Reason:     "No pending rent to apply penalty on",
			})
			continue
		}

		penalty := base * rate / 100

		if record.CurrentPenalty >= penalty {
			result.Details = append(result.Details, PenaltyDetail{
				TenantID:       record.TenantID,
				TenantName:     record.TenantName,
				RentMonth:      record.RentMonth,
				Action:         "skipped",
				Reason:         "Penalty already applied or higher penalty exists",
				CurrentPenalty: record.CurrentPenalty,
			})
			continue
		}

		if err := s.trackingRepo.ApplyPenalty(ctx, record.TrackingID, penalty); err != nil {
			errMsg := fmt.Sprintf("Error processing tenant %s (%s) for %s: %v", record.TenantID, record.TenantName, record.RentMonth.Format("2006-01-02"), err)
			log.Printf("[PENALTY_PROCESSOR] %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		updated++
		totalPenalty += penalty
		result.Details = append(result.Details, PenaltyDetail{
			TenantID:          record.TenantID,
			TenantName:        record.TenantName,
			RentMonth:         record.RentMonth,
			Action:            "updated",
			PenaltyBaseAmount: base,
			PenaltyAmount:     penalty,
		})
	}

	skipped := len(result.Details) - updated
	result.ProcessedCount = updated
	result.Summary = PenaltyRunSummary{
		QuarterProcessed:   quarterLabel,
		PenaltyRate:        rateLabel,
		TotalRecordsFound:  len(unpaid),
		RecordsUpdated:     updated,
		RecordsSkipped:     skipped,
		TotalPenaltyAmount: totalPenalty,
	}

	log.Printf("[PENALTY_PROCESSOR] ========== QUARTERLY PENALTY PROCESSING COMPLETED ==========")
	log.Printf("[PENALTY_PROCESSOR] Total duration: %s", time.Since(startTime))
	log.Printf("[PENALTY_PROCESSOR] Records found with pending rent: %d", len(unpaid))
	log.Printf("[PENALTY_PROCESSOR] Penalties applied: %d", updated)
	log.Printf("[PENALTY_PROCESSOR] Records skipped: %d", skipped)
	log.Printf("[PENALTY_PROCESSOR] Total penalty amount applied: %d", totalPenalty)
	log.Printf("[PENALTY_PROCESSOR] Errors encountered: %d", len(result.Errors))

	return result
}
