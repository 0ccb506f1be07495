package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user's saved shipping address. Exactly one address per user may
// have IsDefault=true; setting a new default clears the flag on the others in
// the same transaction.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Label      string    `gorm:"not null;default:'home'"`
	Recipient  string    `gorm:"not null"`
	Phone      string
	Street     string `gorm:"not null"`
	City       string `gorm:"not null"`
	State      string
	PostalCode string
	Country    string `gorm:"not null"`
	IsDefault  bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Address) TableName() string { return "addresses" }
