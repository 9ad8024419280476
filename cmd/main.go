package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"rentledger/internal/caching"
	"rentledger/internal/config"
	"rentledger/internal/handlers"
	"rentledger/internal/jobs"
	"rentledger/internal/jobs/background"
	"rentledger/internal/repositories"
	"rentledger/internal/services"
	"rentledger/pkg/database"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	propertyRepo := repositories.NewPropertyRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	factorsRepo := repositories.NewRentFactorsRepo(pool)
	trackingRepo := repositories.NewTrackingRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	rateRepo := repositories.NewPenaltyRateRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create services
	propertySvc := services.NewPropertyService(propertyRepo)
	tenantSvc := services.NewTenantService(tenantRepo, propertyRepo, factorsRepo, trackingRepo, paymentRepo, cacheSvc)
	paymentSvc := services.NewPaymentService(pool, paymentRepo, trackingRepo, cacheSvc)
	settingsSvc := services.NewSettingsService(pool, rateRepo, factorsRepo)

	// Create job services
	trackingJob := jobs.NewMonthlyTrackingService(tenantRepo, trackingRepo)
	penaltyJob := jobs.NewPenaltyProcessorService(trackingRepo, rateRepo)

	// Create handlers
	propertyHandlers := handlers.NewPropertyHandlers(propertySvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	transactionHandlers := handlers.NewTransactionHandlers(paymentSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)
	jobHandlers := handlers.NewJobHandlers(trackingJob, penaltyJob)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background scheduler
	if cfg.SchedulerEnabled {
		scheduler := background.NewJobScheduler(trackingJob, penaltyJob, cacheSvc)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Printf("Failed to stop scheduler: %v", err)
			}
		}()
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")

	// Property routes
	api.POST("/property/add", propertyHandlers.AddProperty)
	api.GET("/property/list", propertyHandlers.ListProperties)

	// Tenant routes
	api.POST("/tenant/add", tenantHandlers.AddTenant)
	api.POST("/tenant/update", tenantHandlers.UpdateTenant)
	api.GET("/tenant/detail/:id", tenantHandlers.TenantDetail)
	api.GET("/tenant/list", tenantHandlers.ListTenants)

	// Transaction routes
	api.POST("/transaction/add", transactionHandlers.AddTransaction)
	api.DELETE("/transaction/delete/:transactionId", transactionHandlers.DeleteTransaction)
	api.GET("/transaction/list", transactionHandlers.ListTransactions)
	api.GET("/transaction/unpaid", transactionHandlers.UnpaidBalances)
	api.GET("/transaction/summary", transactionHandlers.Summary)

	// Settings routes
	api.POST("/settings/update-penalty", settingsHandlers.UpdatePenalty)
	api.POST("/settings/tenant-factor-update", settingsHandlers.TenantFactorUpdate)
	api.POST("/settings/bulk-rent-update", settingsHandlers.BulkRentUpdate)
	api.POST("/settings/update-increment", settingsHandlers.UpdateIncrement)
	api.GET("/settings/system", settingsHandlers.System)
	api.GET("/settings/penalty-current", settingsHandlers.PenaltyCurrent)
	api.GET("/settings/penalty-history", settingsHandlers.PenaltyHistory)

	// Manual and internal job triggers
	api.POST("/manual/trigger-monthly-tracking", jobHandlers.TriggerMonthlyTracking)
	api.POST("/manual/trigger-penalties", jobHandlers.TriggerPenalties)
	api.POST("/internal/process-quarterly-penalties", jobHandlers.ProcessQuarterlyPenalties)

	log.Printf("Rent ledger server v%s starting on port %d", version, cfg.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
