package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/medilinkhq/telehealth-api/internal/models"
)

type Repository interface {
	// -------- Doctor --------
	GetDoctorByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.DoctorProfile, error)

	GetDoctorByUserID(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.DoctorProfile, error)

	ListAvailability(
		ctx context.Context,
		doctorID uuid.UUID,
	) ([]models.AvailabilitySlot, error)

	// -------- Patient --------
	GetPatientByUserID(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.PatientProfile, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uuid.UUID,
		userID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPatient(
		ctx context.Context,
		patientID uuid.UUID,
	) ([]models.Appointment, error)

	ListAppointmentsForDoctor(
		ctx context.Context,
		doctorID uuid.UUID,
	) ([]models.Appointment, error)
}
