package models

import (
	"time"

	"github.com/google/uuid"
)

type DoctorReview struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	DoctorID uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Doctor   DoctorProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID uuid.UUID      `gorm:"type:uuid;not null" json:"patient_id"`
	Patient   PatientProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
