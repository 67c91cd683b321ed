package support

import (
	"time"

	"github.com/google/uuid"

	domainSupport "ewaste-tracker/internal/domain/support"
)

type CreateTicketRequest struct {
	Subject          string     `json:"subject" validate:"required,min=3,max=200"`
	Category         string     `json:"category" validate:"omitempty,max=100"`
	Description      string     `json:"description" validate:"required,min=10,max=2000"`
	RelatedRequestID *uuid.UUID `json:"related_request_id"`
}

type ReplyRequest struct {
	Reply   string `json:"reply" validate:"required,min=1,max=2000"`
	Resolve bool   `json:"resolve"`
}

type TicketResponse struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Subject          string     `json:"subject"`
	Category         string     `json:"category,omitempty"`
	Description      string     `json:"description"`
	RelatedRequestID *uuid.UUID `json:"related_request_id,omitempty"`
	Status           string     `json:"status"`
	AdminReply       *string    `json:"admin_reply,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
}

func ToTicketResponse(ticket *domainSupport.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:               ticket.ID,
		UserID:           ticket.UserID,
		Subject:          ticket.Subject,
		Category:         ticket.Category,
		Description:      ticket.Description,
		RelatedRequestID: ticket.RelatedRequestID,
		Status:           string(ticket.Status),
		AdminReply:       ticket.AdminReply,
		CreatedAt:        ticket.CreatedAt,
		ResolvedAt:       ticket.ResolvedAt,
	}
}

func ToTicketResponses(tickets []*domainSupport.Ticket) []*TicketResponse {
	responses := make([]*TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, ToTicketResponse(ticket))
	}
	return responses
}
