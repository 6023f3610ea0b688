package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Action string     `gorm:"size:50;not null" json:"action"`

	Entity   string     `gorm:"size:50" json:"entity"`
	EntityID *uuid.UUID `gorm:"type:uuid" json:"entity_id"`
	Metadata string     `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
