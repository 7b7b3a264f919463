package models

import (
	"time"
)

// PropertyType enumerates the kinds of property the system tracks.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyCommercial PropertyType = "commercial"
	PropertyCondo      PropertyType = "condo"
)

// Valid reports whether the property type is one of the known values.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyCommercial, PropertyCondo:
		return true
	}
	return false
}

// Property represents a rental property owned by a landlord and optionally
// managed by an agent. The landlord is fixed at creation; there is no
// reassignment operation. Nullable fields use pointers to distinguish
// between zero values and NULL.
type Property struct {
	ID         string       `json:"id"`
	Address    string       `json:"address"`
	Type       PropertyType `json:"type"`
	Units      *int         `json:"units,omitempty"`
	LandlordID string       `json:"landlordId"`
	AgentID    *string      `json:"agentId,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// PropertyWithStats annotates a property with repair counts computed at read
// time by scanning that property's repair requests.
type PropertyWithStats struct {
	Property
	TotalRepairs   int `json:"totalRepairs"`
	PendingRepairs int `json:"pendingRepairs"`
	ActiveRepairs  int `json:"activeRepairs"`
}

// PropertyWithTenants is a property joined with its tenants for the
// single-property view.
type PropertyWithTenants struct {
	Property
	Tenants []Tenant `json:"tenants"`
}
