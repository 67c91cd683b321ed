package request

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for request persistence. The durable store is
// the source of truth between lifecycle transitions; implementations must refresh
// UpdatedAt on every mutating save.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, requestID uuid.UUID) (*Request, error)
	Update(ctx context.Context, req *Request) error

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Request, error)
	ListByAssignee(ctx context.Context, pickupPersonID uuid.UUID) ([]*Request, error)
	ListAll(ctx context.Context, status *Status) ([]*Request, error)

	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status Status) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByUserByStatus(ctx context.Context, userID uuid.UUID) ([]StatusCount, error)
	CountByDeviceType(ctx context.Context) ([]DeviceTypeCount, error)
}
