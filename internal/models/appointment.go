package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	PatientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	Patient   PatientProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Doctor   DoctorProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
