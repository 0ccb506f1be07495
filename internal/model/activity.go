package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only record of notable actions for the admin UI.
// Writes are best-effort: failures are logged and never fail the request.
type ActivityLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"not null"` // e.g. "order.created", "user.registered"
	Detail    string
	CreatedAt time.Time
}

func (ActivityLog) TableName() string { return "activity_logs" }

// Notification is a per-user message for UI display. Best-effort writes,
// append-only except for the read flag.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"not null"`
	Body      string
	Read      bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}
