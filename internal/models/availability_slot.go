package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a doctor's recurring weekly block of bookable time.
// Slots are immutable once created; the owner deletes and recreates them.
type AvailabilitySlot struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	DoctorID uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Doctor   DoctorProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// 0 = Sunday .. 6 = Saturday
	DayOfWeek int `gorm:"not null" json:"day_of_week"`

	StartTime string `gorm:"size:8;not null" json:"start_time"` // HH:mm
	EndTime   string `gorm:"size:8;not null" json:"end_time"`   // HH:mm

	CreatedAt time.Time `json:"created_at"`
}
