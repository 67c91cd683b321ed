package request

import (
	"time"

	"github.com/google/uuid"

	domainRequest "ewaste-tracker/internal/domain/request"
)

// Request DTOs
type SubmitRequest struct {
	DeviceType    string   `json:"device_type" validate:"required,min=2,max=100"`
	Brand         string   `json:"brand" validate:"omitempty,max=100"`
	Model         string   `json:"model" validate:"omitempty,max=100"`
	Condition     string   `json:"condition" validate:"required"`
	Quantity      int      `json:"quantity" validate:"omitempty,min=0"`
	PickupAddress string   `json:"pickup_address" validate:"required,min=5"`
	Remarks       *string  `json:"remarks" validate:"omitempty,max=500"`
	ImageURLs     []string `json:"image_urls" validate:"omitempty,dive,max=2048"`
}

type UpdateStatusRequest struct {
	Status          string  `json:"status" validate:"required"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,max=500"`
}

type RejectRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required,min=5,max=500"`
}

type ScheduleRequest struct {
	// RFC 3339 timestamp; optional when only assigning later.
	PickupDate     *string    `json:"pickup_date"`
	PickupPersonID *uuid.UUID `json:"pickup_person_id"`
}

// Response DTOs
type RequestResponse struct {
	ID                     uuid.UUID  `json:"id"`
	UserID                 uuid.UUID  `json:"user_id"`
	DeviceType             string     `json:"device_type"`
	Brand                  string     `json:"brand,omitempty"`
	Model                  string     `json:"model,omitempty"`
	Condition              string     `json:"condition"`
	Quantity               int        `json:"quantity"`
	PickupAddress          string     `json:"pickup_address"`
	Remarks                *string    `json:"remarks,omitempty"`
	ImageURLs              []string   `json:"image_urls,omitempty"`
	Status                 string     `json:"status"`
	RejectionReason        *string    `json:"rejection_reason,omitempty"`
	ScheduledPickupAt      *time.Time `json:"scheduled_pickup_at,omitempty"`
	CompletedAt            *time.Time `json:"completed_at,omitempty"`
	AssignedPickupPersonID *uuid.UUID `json:"assigned_pickup_person_id,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func ToRequestResponse(req *domainRequest.Request) *RequestResponse {
	return &RequestResponse{
		ID:                     req.ID,
		UserID:                 req.UserID,
		DeviceType:             req.DeviceType,
		Brand:                  req.Brand,
		Model:                  req.Model,
		Condition:              string(req.Condition),
		Quantity:               req.Quantity,
		PickupAddress:          req.PickupAddress,
		Remarks:                req.Remarks,
		ImageURLs:              req.ImageURLs,
		Status:                 string(req.Status),
		RejectionReason:        req.RejectionReason,
		ScheduledPickupAt:      req.ScheduledPickupAt,
		CompletedAt:            req.CompletedAt,
		AssignedPickupPersonID: req.AssignedPickupPersonID,
		CreatedAt:              req.CreatedAt,
		UpdatedAt:              req.UpdatedAt,
	}
}

func ToRequestResponses(reqs []*domainRequest.Request) []*RequestResponse {
	responses := make([]*RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		responses = append(responses, ToRequestResponse(req))
	}
	return responses
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DeviceTypeCountResponse struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}
