package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

const (
	GenderMale   = 0
	GenderFemale = 1
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Gender    int    `json:"gender"`

	Role string `gorm:"size:20;default:'patient'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
