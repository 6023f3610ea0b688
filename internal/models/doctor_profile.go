package models

import (
	"time"

	"github.com/google/uuid"
)

type DoctorProfile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SpecializationID uuid.UUID      `gorm:"type:uuid" json:"specialization_id"`
	Specialization   Specialization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	ConsultationFee           float64 `json:"consultation_fee"`
	MedicalInstitutionLicense string  `gorm:"size:100" json:"medical_institution_license"`
	PhoneNumber               string  `gorm:"size:20" json:"phone_number"`
	Biography                 string  `gorm:"type:text" json:"biography"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
