package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	AppointmentID uuid.UUID   `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SenderID   uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	SenderName string    `gorm:"size:200" json:"sender_name"`

	Content string `gorm:"type:text;not null" json:"content"`

	SentAt time.Time `gorm:"not null;index" json:"sent_at"`
}
