package background

import (
	"context"
	"log"
	"sync"
	"time"

	"rentledger/internal/caching"
	"rentledger/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring ledger jobs
type JobScheduler struct {
	scheduler   gocron.Scheduler
	trackingSvc *jobs.MonthlyTrackingService
	penaltySvc  *jobs.PenaltyProcessorService
	cacheSvc    caching.CacheService
	registered  map[string]gocron.Job
	mu          sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(trackingSvc *jobs.MonthlyTrackingService, penaltySvc *jobs.PenaltyProcessorService,
	cacheSvc caching.CacheService) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		trackingSvc: trackingSvc,
		penaltySvc:  penaltySvc,
		cacheSvc:    cacheSvc,
		registered:  make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all recurring jobs
func (js *JobScheduler) registerJobs() {
	// Monthly ledger materialization - midnight on the 1st of every month
	trackingJob, err := js.scheduler.NewJob(
		gocron.CronJob("0 0 1 * *", false),
		gocron.NewTask(js.runMonthlyTracking),
		gocron.WithName("monthly-rent-tracking"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create monthly tracking job: %v", err)
	} else {
		js.registered["monthly-tracking"] = trackingJob
	}

	// Quarterly penalty accrual - midnight on Jan/Apr/Jul/Oct 1st
	penaltyJob, err := js.scheduler.NewJob(
		gocron.CronJob("0 0 1 1,4,7,10 *", false),
		gocron.NewTask(js.runQuarterlyPenalties),
		gocron.WithName("quarterly-penalties"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create quarterly penalties job: %v", err)
	} else {
		js.registered["quarterly-penalties"] = penaltyJob
	}

	log.Printf("Registered %d background jobs", len(js.registered))
}

// runMonthlyTracking materializes the current month's ledger rows
func (js *JobScheduler) runMonthlyTracking() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result := js.trackingSvc.Run(ctx, time.Now().UTC())
	if len(result.Errors) > 0 {
		log.Printf("Monthly tracking completed with %d errors", len(result.Errors))
	}

	js.invalidateLedgerCaches(ctx)
	return nil
}

// runQuarterlyPenalties accrues penalties for the previous quarter
func (js *JobScheduler) runQuarterlyPenalties() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result := js.penaltySvc.Run(ctx, time.Now().UTC())
	if len(result.Errors) > 0 {
		log.Printf("Penalty processing completed with %d errors", len(result.Errors))
	}

	js.invalidateLedgerCaches(ctx)
	return nil
}

func (js *JobScheduler) invalidateLedgerCaches(ctx context.Context) {
	if js.cacheSvc == nil {
		return
	}
	if err := js.cacheSvc.InvalidateAllCache(ctx); err != nil {
		log.Printf("WARN: failed to invalidate caches after job run: %v", err)
	}
}
