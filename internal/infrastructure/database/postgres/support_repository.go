package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ewaste-tracker/internal/domain/support"
	"ewaste-tracker/internal/infrastructure/database/postgres/models"
)

type SupportRepository struct {
	db *DB
}

func NewSupportRepository(db *DB) support.Repository {
	return &SupportRepository{db: db}
}

func (r *SupportRepository) Create(ctx context.Context, ticket *support.Ticket) error {
	ticket.ID = uuid.New()
	ticket.CreatedAt = time.Now()
	if ticket.Status == "" {
		ticket.Status = support.TicketOpen
	}

	dbModel := toTicketModel(ticket)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create support ticket: %w", err)
	}

	ticket.ID = dbModel.ID
	return nil
}

func (r *SupportRepository) GetByID(ctx context.Context, ticketID uuid.UUID) (*support.Ticket, error) {
	var dbModel models.SupportTicketModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", ticketID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, support.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get support ticket: %w", err)
	}

	return toTicketEntity(&dbModel), nil
}

func (r *SupportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*support.Ticket, error) {
	var dbModels []models.SupportTicketModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list support tickets by user: %w", err)
	}

	return toTicketEntities(dbModels), nil
}

func (r *SupportRepository) ListAll(ctx context.Context) ([]*support.Ticket, error) {
	var dbModels []models.SupportTicketModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list support tickets: %w", err)
	}

	return toTicketEntities(dbModels), nil
}

func (r *SupportRepository) Update(ctx context.Context, ticket *support.Ticket) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SupportTicketModel{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"status":      string(ticket.Status),
			"admin_reply": ticket.AdminReply,
			"resolved_at": ticket.ResolvedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update support ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return support.ErrTicketNotFound
	}

	return nil
}

func toTicketModel(ticket *support.Ticket) *models.SupportTicketModel {
	return &models.SupportTicketModel{
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

func toTicketEntity(dbModel *models.SupportTicketModel) *support.Ticket {
	return &support.Ticket{
		ID:               dbModel.ID,
		UserID:           dbModel.UserID,
		Subject:          dbModel.Subject,
		Category:         dbModel.Category,
		Description:      dbModel.Description,
		RelatedRequestID: dbModel.RelatedRequestID,
		Status:           support.TicketStatus(dbModel.Status),
		AdminReply:       dbModel.AdminReply,
		CreatedAt:        dbModel.CreatedAt,
		ResolvedAt:       dbModel.ResolvedAt,
	}
}

func toTicketEntities(dbModels []models.SupportTicketModel) []*support.Ticket {
	entities := make([]*support.Ticket, 0, len(dbModels))
	for i := range dbModels {
		entities = append(entities, toTicketEntity(&dbModels[i]))
	}
	return entities
}
