package models

import (
	"time"

	"github.com/google/uuid"
)

// AssistantSession groups a user's messages with the symptom assistant.
type AssistantSession struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title string `gorm:"size:200" json:"title"`

	CreatedAt time.Time `json:"created_at"`
}

type AssistantMessage struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"message_id"`

	SessionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
	Session   AssistantSession `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserMessage string `gorm:"type:text;not null" json:"user_message"`
	AIResponse  string `gorm:"type:text" json:"ai_response"`

	CreatedAt time.Time `json:"timestamp"`
}
