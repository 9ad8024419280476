package models

import (
	"time"

	"github.com/google/uuid"
)

// RentTracking is the monthly ledger entry: one row per (tenant, month),
// rent_month normalized to the first of the month in UTC. Rows are created
// once by the monthly tracking job and only mutated by payment allocation
// and quarterly penalty accrual; they are never deleted.
type RentTracking struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	TenantID              uuid.UUID `json:"tenant_id" db:"tenant_id"`
	RentMonth             time.Time `json:"rent_month" db:"rent_month"`
	RentCollected         int64     `json:"rent_collected" db:"rent_collected"`
	RentPending           int64     `json:"rent_pending" db:"rent_pending"`
	OutstandingAmount     int64     `json:"outstanding_amount" db:"outstanding_amount"`
	OutstandingCollected  int64     `json:"outstanding_collected" db:"outstanding_collected"`
	OutstandingPending    int64     `json:"outstanding_pending" db:"outstanding_pending"`
	PenaltyAmount         int64     `json:"penalty_amount" db:"penalty_amount"`
	PenaltyPaid           int64     `json:"penalty_paid" db:"penalty_paid"`
	PenaltyPending        int64     `json:"penalty_pending" db:"penalty_pending"`
	FinancialYear         string    `json:"financial_year" db:"financial_year"`
	Quarter               string    `json:"quarter" db:"quarter"`
	CreatedOn             time.Time `json:"created_on" db:"created_on"`
	UpdatedOn             time.Time `json:"updated_on" db:"updated_on"`
}

// UnpaidRentRecord is a ledger row joined with its tenant name, as selected
// by the quarterly penalty job.
type UnpaidRentRecord struct {
	TrackingID         uuid.UUID `json:"tracking_id" db:"tracking_id"`
	TenantID           uuid.UUID `json:"tenant_id" db:"tenant_id"`
	TenantName         string    `json:"tenant_name" db:"tenant_name"`
	RentMonth          time.Time `json:"rent_month" db:"rent_month"`
	RentPending        int64     `json:"rent_pending" db:"rent_pending"`
	OutstandingPending int64     `json:"outstanding_pending" db:"outstanding_pending"`
	CurrentPenalty     int64     `json:"current_penalty" db:"penalty_amount"`
}

// UnpaidBalance aggregates a tenant's pending amounts across all ledger months.
type UnpaidBalance struct {
	TenantID          uuid.UUID `json:"tenantId"`
	TenantName        string    `json:"tenantName"`
	PropertyName      string    `json:"propertyName"`
	OutstandingAmount int64     `json:"outstandingAmount"`
	DueDate           time.Time `json:"dueDate"`
	Penalty           int64     `json:"penalty"`
}
