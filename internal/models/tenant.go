package models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	PropertyID     *uuid.UUID `json:"property_id" db:"property_id"`
	Name           string     `json:"name" db:"name"`
	Salutation     *string    `json:"salutation" db:"salutation"`
	BuildingFloor  *string    `json:"building_floor" db:"building_floor"`
	PropertyType   *string    `json:"property_type" db:"property_type"`
	PropertyNumber *string    `json:"property_number" db:"property_number"`
	MobileNumber   *string    `json:"mobile_number" db:"mobile_number"`
	Notes          *string    `json:"notes" db:"notes"`
	TenancyDate    *time.Time `json:"tenancy_date" db:"tenancy_date"`
	TenancyEndDate *time.Time `json:"tenancy_end_date" db:"tenancy_end_date"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedOn      time.Time  `json:"created_on" db:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on" db:"updated_on"`
}
