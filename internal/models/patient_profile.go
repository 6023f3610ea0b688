package models

import (
	"time"

	"github.com/google/uuid"
)

type PatientProfile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Gender      int        `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	PhoneNumber string     `gorm:"size:20" json:"phone_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
