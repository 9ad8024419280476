package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment method codes, as stored on payment entries.
const (
	PaymentMethodCash   = 1
	PaymentMethodCheque = 2
	PaymentMethodOnline = 3
)

// PaymentEntry is an immutable financial fact: one row per received payment,
// with the amounts that were allocated to rent, penalty and outstanding at
// the time it was recorded. Deleting an entry reverses those allocations.
type PaymentEntry struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	TenantID             uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	RentMonth            *time.Time `json:"rent_month" db:"rent_month"`
	ReceivedAmount       int64      `json:"received_amount" db:"received_amount"`
	RentAllocated        int64      `json:"rent_allocated" db:"rent_allocated"`
	OutstandingAllocated int64      `json:"outstanding_allocated" db:"outstanding_allocated"`
	PenaltyAllocated     int64      `json:"penalty_allocated" db:"penalty_allocated"`
	PaymentMethod        int        `json:"payment_method" db:"payment_method"`
	PaymentDate          time.Time  `json:"payment_date" db:"payment_date"`
	ChequeNumber         *string    `json:"cheque_number" db:"cheque_number"`
	ChequeDate           *time.Time `json:"cheque_date" db:"cheque_date"`
	BankName             *string    `json:"bank_name" db:"bank_name"`
	BankBranch           *string    `json:"bank_branch" db:"bank_branch"`
	TransactionID        *string    `json:"transaction_id" db:"transaction_id"`
	PaymentGateway       *string    `json:"payment_gateway" db:"payment_gateway"`
	Notes                *string    `json:"notes" db:"notes"`
	CreatedOn            time.Time  `json:"created_on" db:"created_on"`
	UpdatedOn            time.Time  `json:"updated_on" db:"updated_on"`
}

// PaymentListFilter narrows the transaction list endpoint. Zero values mean
// "no filter". All filters are applied as parameterized SQL.
type PaymentListFilter struct {
	TenantID *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	Method   *int
	Search   string
	Limit    int
	Offset   int
}

// PaymentListRow is a payment entry joined with tenant, property and current
// ledger context for the transaction list screen.
type PaymentListRow struct {
	PaymentEntry
	TenantName         string  `json:"tenant_name"`
	PropertyName       *string `json:"property_name"`
	TotalRent          int64   `json:"total_rent"`
	RentPending        int64   `json:"rent_pending"`
	PenaltyPending     int64   `json:"penalty_pending"`
	OutstandingPending int64   `json:"outstanding_pending"`
}

// PaymentSummary holds the aggregate totals for the transaction summary card.
type PaymentSummary struct {
	TotalReceived    int64 `json:"totalReceived"`
	TotalOutstanding int64 `json:"totalOutstanding"`
}
