package models

import (
	"time"
)

// Role enumerates the application roles a user profile can hold.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleLandlord, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// UserProfile holds application-level data for an authenticated user.
// The UserID is the opaque identifier supplied by the identity provider.
type UserProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Role        Role      `json:"role"`
	CompanyName *string   `json:"companyName,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
