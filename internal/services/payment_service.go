package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rentledger/internal/caching"
	"rentledger/internal/models"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrMissingRequiredFields     = errors.New("missing required fields")
	ErrChequeDetailsRequired     = errors.New("cheque payment requires cheque number, date, and bank name")
	ErrTransactionIDRequired     = errors.New("online payment requires transaction ID")
	ErrAllocationExceedsReceived = errors.New("total allocated amount cannot exceed received amount")
	ErrTransactionNotFound       = errors.New("transaction not found")
)

// AddPaymentInput carries one received payment and how the operator chose to
// allocate it. RentMonth is optional; when absent the rent and penalty ledger
// updates are skipped and only the entry itself is recorded.
type AddPaymentInput struct {
	TenantID             uuid.UUID
	RentMonth            *time.Time
	ReceivedAmount       int64
	RentAllocated        int64
	OutstandingAllocated int64
	PenaltyAllocated     int64
	IsPenaltyWaived      bool
	PaymentMethod        int
	PaymentDate          time.Time
	ChequeNumber         *string
	ChequeDate           *time.Time
	BankName             *string
	BankBranch           *string
	TransactionID        *string
	PaymentGateway       *string
	Notes                *string
}

type PaymentService interface {
	// AddPayment records the payment entry and applies its allocations to the
	// ledger in one transaction. Returns the new payment id.
	AddPayment(ctx context.Context, input *AddPaymentInput) (uuid.UUID, error)
	// DeletePayment reverses the payment's allocations and hard deletes the
	// entry. Returns ErrTransactionNotFound for an unknown id.
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	List(ctx context.Context, filter models.PaymentListFilter) ([]*models.PaymentListRow, int, error)
	UnpaidBalances(ctx context.Context) ([]*models.UnpaidBalance, error)
	Summary(ctx context.Context) (*models.PaymentSummary, error)
}

type paymentService struct {
	db           repositories.Database
	paymentRepo  repositories.PaymentRepository
	trackingRepo repositories.TrackingRepository
	cache        caching.CacheService
}

func NewPaymentService(db repositories.Database, paymentRepo repositories.PaymentRepository, trackingRepo repositories.TrackingRepository, cache caching.CacheService) PaymentService {
	return &paymentService{
		db:           db,
		paymentRepo:  paymentRepo,
		trackingRepo: trackingRepo,
		cache:        cache,
	}
}

func validateAddPayment(input *AddPaymentInput) error {
	if input.TenantID == uuid.Nil || input.ReceivedAmount == 0 || input.PaymentMethod == 0 || input.PaymentDate.IsZero() {
		return ErrMissingRequiredFields
	}
	if input.PaymentMethod == models.PaymentMethodCheque {
		if input.ChequeNumber == nil || input.ChequeDate == nil || input.BankName == nil {
			return ErrChequeDetailsRequired
		}
	}
	if input.PaymentMethod == models.PaymentMethodOnline {
		if input.TransactionID == nil {
			return ErrTransactionIDRequired
		}
	}
	totalAllocated := input.RentAllocated + input.PenaltyAllocated + input.OutstandingAllocated
	if totalAllocated > input.ReceivedAmount {
		return ErrAllocationExceedsReceived
	}
	return nil
}

func (s *paymentService) AddPayment(ctx context.Context, input *AddPaymentInput) (uuid.UUID, error) {
	if err := validateAddPayment(input); err != nil {
		return uuid.Nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin payment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	paymentID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO tenant_payment_entries (
			id, tenant_id, rent_month, received_amount,
			rent_allocated, outstanding_allocated, penalty_allocated,
			payment_method, payment_date, cheque_number, cheque_date,
			bank_name, bank_branch, transaction_id, payment_gateway, notes,
			created_on, updated_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`, paymentID, input.TenantID, input.RentMonth, input.ReceivedAmount,
		input.RentAllocated, input.OutstandingAllocated, input.PenaltyAllocated,
		input.PaymentMethod, input.PaymentDate, input.ChequeNumber, input.ChequeDate,
		input.BankName, input.BankBranch, input.TransactionID, input.PaymentGateway, input.Notes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert payment entry: %w", err)
	}

	if input.RentAllocated > 0 && input.RentMonth != nil {
		_, err = tx.Exec(ctx, `
			UPDATE monthly_rent_tracking
			SET rent_collected = rent_collected + $1,
			    rent_pending = rent_pending - $1,
			    updated_on = NOW()
			WHERE tenant_id = $2 AND rent_month = $3
		`, input.RentAllocated, input.TenantID, *input.RentMonth)
		if err != nil {
			return uuid.Nil, fmt.Errorf("apply rent allocation: %w", err)
		}
	}

	if input.PenaltyAllocated > 0 && input.RentMonth != nil {
		_, err = tx.Exec(ctx, `
			UPDATE monthly_rent_tracking
			SET penalty_paid = penalty_paid + $1,
			    penalty_pending = penalty_pending - $1,
			    updated_on = NOW()
			WHERE tenant_id = $2 AND rent_month = $3
		`, input.PenaltyAllocated, input.TenantID, *input.RentMonth)
		if err != nil {
			return uuid.Nil, fmt.Errorf("apply penalty allocation: %w", err)
		}
	} else if input.IsPenaltyWaived && input.RentMonth != nil {
		_, err = tx.Exec(ctx, `
			UPDATE monthly_rent_tracking
			SET penalty_paid = penalty_paid + penalty_pending,
			    penalty_pending = 0,
			    updated_on = NOW()
			WHERE tenant_id = $1 AND rent_month = $2
		`, input.TenantID, *input.RentMonth)
		if err != nil {
			return uuid.Nil, fmt.Errorf("waive penalty: %w", err)
		}
	}

	// Outstanding dues always live on the tenant's latest ledger month, which
	// can differ from the month the payment is posted against.
	if input.OutstandingAllocated > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE monthly_rent_tracking
			SET outstanding_collected = outstanding_collected + $1,
			    outstanding_pending = outstanding_pending - $1,
			    outstanding_amount = GREATEST(outstanding_amount - $1, 0),
			    updated_on = NOW()
			WHERE tenant_id = $2
			  AND rent_month = (
				SELECT rent_month
				FROM monthly_rent_tracking
				WHERE tenant_id = $2
				ORDER BY rent_month DESC
				LIMIT 1
			  )
		`, input.OutstandingAllocated, input.TenantID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("apply outstanding allocation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit payment transaction: %w", err)
	}

	s.invalidateCaches(ctx, input.TenantID)
	return paymentID, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reversal transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var tenantID uuid.UUID
	var rentMonth *time.Time
	var rentAllocated, penaltyAllocated, outstandingAllocated int64
	err = tx.QueryRow(ctx, `
		SELECT tenant_id, rent_month, rent_allocated, penalty_allocated, outstanding_allocated
		FROM tenant_payment_entries
		WHERE id = $1
	`, paymentID).Scan(&tenantID, &rentMonth, &rentAllocated, &penaltyAllocated, &outstandingAllocated)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("load payment entry: %w", err)
	}

	if rentAllocated > 0 && rentMonth != nil {
		_, err = tx.Exec(ctx, `
			UPDATE monthly_rent_tracking
			SET rent_collected = rent_collected - $1,
			    rent_pending = rent_pending + $1,
			    updated_on = NOW()
			WHERE tenant_id = $2 AND rent_month = $3
		`, rentAllocated, tenantID, *rentMonth)
		if err != nil {
			return fmt.Errorf("reverse rent allocation: %w", err)
		}
	}

	if penaltyAllocated > 0 && rentMonth != nil {
		_, err = tx.Exec(ctx, `
			UPDATE monthly_rent_tracking
			SET penalty_paid = penalty_paid - $1,
			    penalty_pending = penalty_pending + $1,
			    updated_on = NOW()
			WHERE tenant_id = $2 AND rent_month = $3
		`, penaltyAllocated, tenantID, *rentMonth)
		if err != nil {
			return fmt.Errorf("reverse penalty allocation: %w", err)
		}
	}

	// The reversal adds the amount back without the floor the forward path
	// applies, matching the allocation accounting exactly.
	if outstandingAllocated > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE monthly_rent_tracking
			SET outstanding_collected = outstanding_collected - $1,
			    outstanding_pending = outstanding_pending + $1,
			    outstanding_amount = outstanding_amount + $1,
			    updated_on = NOW()
			WHERE tenant_id = $2
			  AND rent_month = (
				SELECT rent_month
				FROM monthly_rent_tracking
				WHERE tenant_id = $2
				ORDER BY rent_month DESC
				LIMIT 1
			  )
		`, outstandingAllocated, tenantID)
		if err != nil {
			return fmt.Errorf("reverse outstanding allocation: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM tenant_payment_entries WHERE id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("delete payment entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reversal transaction: %w", err)
	}

	s.invalidateCaches(ctx, tenantID)
	return nil
}

func (s *paymentService) invalidateCaches(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePaymentSummary(ctx); err != nil {
		log.Printf("WARN: failed to invalidate summary cache: %v", err)
	}
	if err := s.cache.DeleteTenantDetail(ctx, tenantID); err != nil {
		log.Printf("WARN: failed to invalidate tenant detail cache: %v", err)
	}
}

func (s *paymentService) List(ctx context.Context, filter models.PaymentListFilter) ([]*models.PaymentListRow, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	return s.paymentRepo.List(ctx, filter)
}

func (s *paymentService) UnpaidBalances(ctx context.Context) ([]*models.UnpaidBalance, error) {
	return s.trackingRepo.UnpaidBalances(ctx)
}

func (s *paymentService) Summary(ctx context.Context) (*models.PaymentSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPaymentSummary(ctx)
		if err != nil {
			log.Printf("WARN: summary cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.paymentRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPaymentSummary(ctx, summary, 5*time.Minute); err != nil {
			log.Printf("WARN: summary cache write failed: %v", err)
		}
	}
	return summary, nil
}
