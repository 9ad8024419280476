package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"rentledger/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
)

// JobHandlers exposes manual and internal trigger endpoints for the
// scheduled ledger jobs, for testing and recovery.
type JobHandlers struct {
	trackingSvc *jobs.MonthlyTrackingService
	penaltySvc  *jobs.PenaltyProcessorService
}

func NewJobHandlers(trackingSvc *jobs.MonthlyTrackingService, penaltySvc *jobs.PenaltyProcessorService) *JobHandlers {
	return &JobHandlers{
		trackingSvc: trackingSvc,
		penaltySvc:  penaltySvc,
	}
}

func newRequestID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), random.String(9))
}

// TriggerMonthlyTracking handles POST /api/manual/trigger-monthly-tracking
func (h *JobHandlers) TriggerMonthlyTracking(c echo.Context) error {
	ctx := c.Request().Context()
	requestID := newRequestID("REQ")

	log.Printf("[MANUAL_TRIGGER] Request ID: %s - Manual monthly tracking trigger initiated by user", requestID)

	result := h.trackingSvc.Run(ctx, time.Now().UTC())

	log.Printf("[MANUAL_TRIGGER] %s - Results: %d records processed, %d errors",
		requestID, result.ProcessedCount, len(result.Errors))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         200,
		"message":        "Manual monthly rent tracking completed successfully",
		"requestId":      requestID,
		"processedCount": result.ProcessedCount,
		"processed":      result.Processed,
		"errors":         result.Errors,
		"triggeredAt":    time.Now().UTC(),
		"triggeredBy":    "manual",
	})
}

// TriggerPenalties handles POST /api/manual/trigger-penalties
func (h *JobHandlers) TriggerPenalties(c echo.Context) error {
	ctx := c.Request().Context()
	requestID := newRequestID("REQ")

	log.Printf("[MANUAL_PENALTY] Request ID: %s - Manual penalty processing trigger initiated by user", requestID)

	result := h.penaltySvc.Run(ctx, time.Now().UTC())

	log.Printf("[MANUAL_PENALTY] %s - Results: %d records processed, %d errors",
		requestID, result.ProcessedCount, len(result.Errors))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         200,
		"message":        "Manual penalty processing completed successfully",
		"requestId":      requestID,
		"processedCount": result.ProcessedCount,
		"errors":         result.Errors,
		"details":        result.Details,
		"summary":        result.Summary,
		"triggeredAt":    time.Now().UTC(),
		"triggeredBy":    "manual",
	})
}

// ProcessQuarterlyPenalties handles POST /api/internal/process-quarterly-penalties
func (h *JobHandlers) ProcessQuarterlyPenalties(c echo.Context) error {
	ctx := c.Request().Context()
	requestID := newRequestID("INTERNAL")

	log.Printf("[INTERNAL_PENALTY] Request ID: %s - Internal penalty processing triggered", requestID)

	result := h.penaltySvc.Run(ctx, time.Now().UTC())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    200,
		"message":   "Quarterly penalties processed successfully",
		"requestId": requestID,
		"processed": result.ProcessedCount,
		"errors":    result.Errors,
		"timestamp": time.Now().UTC(),
		"details":   result.Details,
	})
}
