package models

import (
	"time"
)

// RepairCategory enumerates the kinds of maintenance work a repair request
// can describe.
type RepairCategory string

const (
	CategoryPlumbing   RepairCategory = "plumbing"
	CategoryElectrical RepairCategory = "electrical"
	CategoryHVAC       RepairCategory = "hvac"
	CategoryAppliance  RepairCategory = "appliance"
	CategoryStructural RepairCategory = "structural"
	CategoryOther      RepairCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c RepairCategory) Valid() bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryHVAC,
		CategoryAppliance, CategoryStructural, CategoryOther:
		return true
	}
	return false
}

// RepairPriority enumerates urgency levels for a repair request.
type RepairPriority string

const (
	PriorityLow       RepairPriority = "low"
	PriorityMedium    RepairPriority = "medium"
	PriorityHigh      RepairPriority = "high"
	PriorityEmergency RepairPriority = "emergency"
)

// Valid reports whether the priority is one of the known values.
func (p RepairPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// RepairStatus enumerates the lifecycle states of a repair request.
// New requests always start in StatusPending; StatusCompleted and
// StatusCancelled are terminal.
type RepairStatus string

const (
	StatusPending    RepairStatus = "pending"
	StatusAssigned   RepairStatus = "assigned"
	StatusInProgress RepairStatus = "in_progress"
	StatusCompleted  RepairStatus = "completed"
	StatusCancelled  RepairStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s RepairStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress,
		StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s RepairStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Reporter enumerates who reported a repair request.
type Reporter string

const (
	ReportedByTenant     Reporter = "tenant"
	ReportedByLandlord   Reporter = "landlord"
	ReportedByAgent      Reporter = "agent"
	ReportedByInspection Reporter = "inspection"
)

// Valid reports whether the reporter is one of the known values.
func (r Reporter) Valid() bool {
	switch r {
	case ReportedByTenant, ReportedByLandlord, ReportedByAgent, ReportedByInspection:
		return true
	}
	return false
}

// UpdateType enumerates the kinds of audit entry logged against a repair.
type UpdateType string

const (
	UpdateStatusChange UpdateType = "status_change"
	UpdateAssignment   UpdateType = "assignment"
	UpdateNote         UpdateType = "note"
	UpdateCostUpdate   UpdateType = "cost_update"
)

// Valid reports whether the update type is one of the known values.
func (u UpdateType) Valid() bool {
	switch u {
	case UpdateStatusChange, UpdateAssignment, UpdateNote, UpdateCostUpdate:
		return true
	}
	return false
}

// RepairRequest represents a unit of maintenance work tracked against a
// property. PropertyID is immutable once set. CompletedDate is set if and
// only if the status is StatusCompleted. Scheduled and completed dates are
// epoch milliseconds; image entries are opaque storage references.
type RepairRequest struct {
	ID            string         `json:"id"`
	PropertyID    string         `json:"propertyId"`
	TenantID      *string        `json:"tenantId,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      RepairCategory `json:"category"`
	Priority      RepairPriority `json:"priority"`
	Status        RepairStatus   `json:"status"`
	ReportedBy    Reporter       `json:"reportedBy"`
	ContractorID  *string        `json:"contractorId,omitempty"`
	AssignedBy    *string        `json:"assignedBy,omitempty"`
	EstimatedCost *float64       `json:"estimatedCost,omitempty"`
	ActualCost    *float64       `json:"actualCost,omitempty"`
	ScheduledDate *int64         `json:"scheduledDate,omitempty"`
	CompletedDate *int64         `json:"completedDate,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	Images        []string       `json:"images,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// RepairUpdate is an immutable audit record of a change to a repair request.
// One is appended on every creation, status change, or contractor assignment;
// records are never mutated or deleted.
type RepairUpdate struct {
	ID              string     `json:"id"`
	RepairRequestID string     `json:"repairRequestId"`
	UpdatedBy       string     `json:"updatedBy"`
	UpdateType      UpdateType `json:"updateType"`
	OldValue        *string    `json:"oldValue,omitempty"`
	NewValue        *string    `json:"newValue,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// RepairWithRelations is a repair request denormalized with its property,
// contractor, and tenant for list views. Relations that do not apply are nil.
type RepairWithRelations struct {
	RepairRequest
	Property   *Property   `json:"property"`
	Contractor *Contractor `json:"contractor"`
	Tenant     *Tenant     `json:"tenant"`
}

// RepairUpdateWithUser is an audit record joined with the profile of the
// user who made the change.
type RepairUpdateWithUser struct {
	RepairUpdate
	User *UserProfile `json:"user"`
}

// RepairDetails is the full denormalized view of a single repair request:
// every relation resolved plus the ordered audit trail.
type RepairDetails struct {
	RepairRequest
	Property       *Property              `json:"property"`
	Contractor     *Contractor            `json:"contractor"`
	Tenant         *Tenant                `json:"tenant"`
	AssignedByUser *UserProfile           `json:"assignedByUser"`
	Updates        []RepairUpdateWithUser `json:"updates"`
}
