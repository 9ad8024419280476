package models

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID           uuid.UUID `json:"id" db:"id"`
	LandlordName *string   `json:"landlord_name" db:"landlord_name"`
	Name         string    `json:"name" db:"name"`
	BillName     string    `json:"bill_name" db:"bill_name"`
	Ward         *string   `json:"ward" db:"ward"`
	BlockCount   int       `json:"block_count" db:"block_count"`
	Address      string    `json:"address" db:"address"`
	PhoneNumber  *string   `json:"phone_number" db:"phone_number"`
	CreatedOn    time.Time `json:"created_on" db:"created_on"`
	UpdatedOn    time.Time `json:"updated_on" db:"updated_on"`
}
