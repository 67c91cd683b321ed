package models

import (
	"time"

	"github.com/google/uuid"
)

// SupportTicketModel represents the database model for support queries
type SupportTicketModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subject          string     `gorm:"type:varchar(200);not null"`
	Category         string     `gorm:"type:varchar(100)"`
	Description      string     `gorm:"type:text;not null"`
	RelatedRequestID *uuid.UUID `gorm:"type:uuid"`
	Status           string     `gorm:"type:varchar(20);not null;default:'Open'"`
	AdminReply       *string    `gorm:"type:text"`
	CreatedAt        time.Time  `gorm:"not null;index"`
	ResolvedAt       *time.Time `gorm:"type:timestamptz"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (SupportTicketModel) TableName() string {
	return "support_queries"
}
