package pickup

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for pickup person persistence
type Repository interface {
	Create(ctx context.Context, person *Person) error
	GetByID(ctx context.Context, personID uuid.UUID) (*Person, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Person, error)
	List(ctx context.Context) ([]*Person, error)
	SetAvailability(ctx context.Context, personID uuid.UUID, available bool) error
}
