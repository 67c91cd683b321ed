package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for user accounts
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed string    `gorm:"type:varchar(255);not null;column:password_hash"`
	PhoneNumber    string    `gorm:"type:varchar(20)"`
	Address        string    `gorm:"type:text"`
	Role           string    `gorm:"type:varchar(20);not null;default:'user';index"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
