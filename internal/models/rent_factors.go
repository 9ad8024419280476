package models

import (
	"time"

	"github.com/google/uuid"
)

// RentFactors holds the recurring monthly charge components for one tenant.
// The current record is the latest row by created_on; superseded rows are
// archived into rent_factors_history by bulk updates.
type RentFactors struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	TenantID           uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BasicRent          int64      `json:"basic_rent" db:"basic_rent"`
	PropertyTax        int64      `json:"property_tax" db:"property_tax"`
	RepairCess         int64      `json:"repair_cess" db:"repair_cess"`
	Misc               int64      `json:"misc" db:"misc"`
	ChequeReturnCharge int64      `json:"cheque_return_charge" db:"cheque_return_charge"`
	EffectiveFrom      *time.Time `json:"effective_from" db:"effective_from"`
	CreatedOn          time.Time  `json:"created_on" db:"created_on"`
	UpdatedOn          time.Time  `json:"updated_on" db:"updated_on"`
}

// TotalRent is the monthly charge materialized into a ledger entry's
// rent_pending. Missing components are stored as 0, so a plain sum is safe.
func (f *RentFactors) TotalRent() int64 {
	return f.BasicRent + f.PropertyTax + f.RepairCess + f.Misc
}
