package pickup

import (
	"time"

	"github.com/google/uuid"

	domainPickup "ewaste-tracker/internal/domain/pickup"
)

type CompleteVerificationRequest struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type PersonResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name,omitempty"`
	Email         string    `json:"email,omitempty"`
	VehicleNumber string    `json:"vehicle_number"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToPersonResponse(person *domainPickup.Person) *PersonResponse {
	return &PersonResponse{
		ID:            person.ID,
		UserID:        person.UserID,
		VehicleNumber: person.VehicleNumber,
		Available:     person.Available,
		CreatedAt:     person.CreatedAt,
	}
}

// RouteStop is one entry on the pickup person's route. Coordinates are a
// placeholder derived from the request id, not geocoded.
type RouteStop struct {
	RequestID     uuid.UUID   `json:"request_id"`
	Address       string      `json:"address"`
	Customer      string      `json:"customer"`
	Device        string      `json:"device"`
	ScheduledTime string      `json:"scheduled_time"`
	Coordinates   Coordinates `json:"coordinates"`
	Status        string      `json:"status"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RouteResponse struct {
	Stops      []RouteStop `json:"stops"`
	TotalStops int         `json:"total_stops"`
}
