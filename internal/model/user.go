package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values carried in the JWT and checked by the role middleware.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
)

// Auth providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User stores customer and staff accounts with role-based access.
// PasswordHash is empty for federated (Google) accounts.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string
	Phone        *string
	Role         string `gorm:"type:varchar(20);not null;default:'customer'"`
	Provider     string `gorm:"type:varchar(20);not null;default:'local'"`
	AvatarURL    *string
	// Preferences
	Newsletter  bool `gorm:"not null;default:false"`
	OrderEmails bool `gorm:"not null;default:true"`
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsFederated reports whether the account has no local password.
func (u *User) IsFederated() bool { return u.PasswordHash == "" }
