package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the role of a user account
type Role string

const (
	RoleUser         Role = "user"
	RolePickupPerson Role = "pickup_person"
	RoleAdmin        Role = "admin"
)

// User represents a user account in the domain
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	PasswordHashed string
	PhoneNumber    string
	Address        string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
