package support

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for support ticket persistence
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, ticketID uuid.UUID) (*Ticket, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Ticket, error)
	ListAll(ctx context.Context) ([]*Ticket, error)
	Update(ctx context.Context, ticket *Ticket) error
}
