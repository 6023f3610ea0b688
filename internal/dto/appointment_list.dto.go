package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID          uuid.UUID `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
}
