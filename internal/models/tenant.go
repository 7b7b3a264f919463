package models

import (
	"time"
)

// Tenant represents a person leasing a unit at a property. Lease dates are
// stored as epoch milliseconds to match the values collected by the client.
type Tenant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	PropertyID string    `json:"propertyId"`
	Unit       *string   `json:"unit,omitempty"`
	LeaseStart int64     `json:"leaseStart"`
	LeaseEnd   int64     `json:"leaseEnd"`
	CreatedAt  time.Time `json:"createdAt"`
}
