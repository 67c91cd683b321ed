package support

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainSupport "ewaste-tracker/internal/domain/support"
	"ewaste-tracker/internal/logger"
	appErrors "ewaste-tracker/pkg/errors"
	"ewaste-tracker/pkg/utils"
)

// Service implements support ticket use cases.
type Service struct {
	ticketRepo domainSupport.Repository
}

func NewService(ticketRepo domainSupport.Repository) *Service {
	return &Service{ticketRepo: ticketRepo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateTicketRequest) (*TicketResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	ticket := &domainSupport.Ticket{
		UserID:           userID,
		Subject:          utils.SanitizeString(req.Subject),
		Category:         utils.SanitizeString(req.Category),
		Description:      utils.SanitizeString(req.Description),
		RelatedRequestID: req.RelatedRequestID,
		Status:           domainSupport.TicketOpen,
		CreatedAt:        time.Now(),
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	logger.Info("Support ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return ToTicketResponse(ticket), nil
}

func (s *Service) MyTickets(ctx context.Context, userID uuid.UUID) ([]*TicketResponse, error) {
	tickets, err := s.ticketRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToTicketResponses(tickets), nil
}

func (s *Service) All(ctx context.Context) ([]*TicketResponse, error) {
	tickets, err := s.ticketRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToTicketResponses(tickets), nil
}

func (s *Service) Reply(ctx context.Context, ticketID uuid.UUID, req *ReplyRequest) (*TicketResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domainSupport.ErrTicketNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "Ticket not found", err)
		}
		return nil, err
	}

	reply := utils.SanitizeString(req.Reply)
	ticket.AdminReply = &reply
	if req.Resolve {
		ticket.Status = domainSupport.TicketResolved
		resolvedAt := time.Now()
		ticket.ResolvedAt = &resolvedAt
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ToTicketResponse(ticket), nil
}
