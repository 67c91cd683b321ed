package models

import (
	"time"

	"github.com/google/uuid"
)

// PickupPersonModel represents the database model for pickup person profiles
type PickupPersonModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	VehicleNumber string    `gorm:"type:varchar(20)"`
	Available     bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (PickupPersonModel) TableName() string {
	return "pickup_persons"
}
