package models

import (
	"time"

	"github.com/google/uuid"
)

// PenaltyRate is the current late-payment interest percentage. Superseded
// rates are moved into penalty_interest_history; every change is also
// appended to the penalty_interest_updates log.
type PenaltyRate struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	InterestRate  int64      `json:"interest_rate" db:"interest_rate"`
	EffectiveFrom *time.Time `json:"effective_from" db:"effective_from"`
	CreatedOn     time.Time  `json:"created_on" db:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on" db:"updated_on"`
}

type PenaltyRateHistory struct {
	ID            int64      `json:"id" db:"id"`
	OriginalID    uuid.UUID  `json:"original_id" db:"original_id"`
	InterestRate  int64      `json:"interest_rate" db:"interest_rate"`
	EffectiveFrom *time.Time `json:"effective_from" db:"effective_from"`
	CreatedOn     *time.Time `json:"created_on" db:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on" db:"updated_on"`
}
