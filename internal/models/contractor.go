package models

import (
	"time"
)

// Contractor represents an independent service provider that can be assigned
// to repair requests. Contractors are referenced, never owned, by repairs.
type Contractor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Specialties []string  `json:"specialties"`
	Rating      *float64  `json:"rating,omitempty"`
	HourlyRate  *float64  `json:"hourlyRate,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasSpecialty reports whether the contractor's specialty set contains the
// given tag.
func (c *Contractor) HasSpecialty(specialty string) bool {
	for _, s := range c.Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}

// ContractorWithStats annotates a contractor with repair counts computed at
// read time by scanning that contractor's repair requests.
type ContractorWithStats struct {
	Contractor
	ActiveRepairs    int `json:"activeRepairs"`
	CompletedRepairs int `json:"completedRepairs"`
	TotalRepairs     int `json:"totalRepairs"`
}

// ContractorPatch holds the mutable contractor fields for a partial update.
// Nil fields are left unchanged.
type ContractorPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Specialties []string
	HourlyRate  *float64
	IsActive    *bool
}
