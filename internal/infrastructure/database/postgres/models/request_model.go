package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestModel represents the database model for collection requests. Image
// references are stored as a comma-joined text column.
type RequestModel struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID                 uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeviceType             string     `gorm:"type:varchar(100);not null"`
	Brand                  string     `gorm:"type:varchar(100)"`
	Model                  string     `gorm:"type:varchar(100)"`
	Condition              string     `gorm:"type:varchar(20);not null"`
	Quantity               int        `gorm:"not null;default:1"`
	PickupAddress          string     `gorm:"type:text;not null"`
	Remarks                *string    `gorm:"type:text"`
	ImageURLs              string     `gorm:"type:text;column:image_urls"`
	Status                 string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RejectionReason        *string    `gorm:"type:text"`
	AdminRemarks           *string    `gorm:"type:text"`
	ScheduledPickupAt      *time.Time `gorm:"type:timestamptz"`
	CompletedAt            *time.Time `gorm:"type:timestamptz"`
	AssignedPickupPersonID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt              time.Time  `gorm:"not null;index"`
	UpdatedAt              time.Time  `gorm:"not null"`

	User                 *UserModel         `gorm:"foreignKey:UserID"`
	AssignedPickupPerson *PickupPersonModel `gorm:"foreignKey:AssignedPickupPersonID"`
}

func (RequestModel) TableName() string {
	return "ewaste_requests"
}
