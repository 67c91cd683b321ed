package request

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a collection request
type Status string

const (
	StatusPending   Status = "PENDING"   // Submitted, awaiting admin review
	StatusApproved  Status = "APPROVED"  // Accepted by admin, awaiting scheduling
	StatusRejected  Status = "REJECTED"  // Declined with a reason
	StatusScheduled Status = "SCHEDULED" // Pickup person assigned with a date
	StatusCompleted Status = "COMPLETED" // Closed via OTP verification
	StatusCollected Status = "COLLECTED" // Marked collected by the assignee
)

// Condition represents the declared condition of the device being handed in
type Condition string

const (
	ConditionWorking  Condition = "WORKING"
	ConditionDamaged  Condition = "DAMAGED"
	ConditionDead     Condition = "DEAD"
	ConditionBroken   Condition = "BROKEN"
	ConditionForParts Condition = "FOR_PARTS"
)

// Request represents an e-waste collection request entity in the domain
type Request struct {
	ID     uuid.UUID
	UserID uuid.UUID

	// Device descriptor
	DeviceType string
	Brand      string
	Model      string
	Condition  Condition
	Quantity   int

	PickupAddress string
	Remarks       *string
	ImageURLs     []string

	Status          Status
	RejectionReason *string
	AdminRemarks    *string

	// Scheduling and completion
	ScheduledPickupAt      *time.Time
	CompletedAt            *time.Time
	AssignedPickupPersonID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusCount is a per-status aggregate used by dashboards
type StatusCount struct {
	Status Status
	Count  int64
}

// DeviceTypeCount is a per-device-type aggregate used by dashboards
type DeviceTypeCount struct {
	DeviceType string
	Count      int64
}
