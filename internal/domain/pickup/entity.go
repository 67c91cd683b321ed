package pickup

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a pickup person profile bound one-to-one to a user account.
// Assigned requests are deliberately not stored here; they are derived through
// request.Repository.ListByAssignee so the set can never go stale.
type Person struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	VehicleNumber string
	Available     bool
	CreatedAt     time.Time
}
