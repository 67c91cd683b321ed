package support

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the status of a support ticket
type TicketStatus string

const (
	TicketOpen     TicketStatus = "Open"
	TicketResolved TicketStatus = "Resolved"
	TicketClosed   TicketStatus = "Closed"
)

// Ticket represents a support query raised by a user
type Ticket struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Subject          string
	Category         string
	Description      string
	RelatedRequestID *uuid.UUID
	Status           TicketStatus
	AdminReply       *string
	CreatedAt        time.Time
	ResolvedAt       *time.Time
}
