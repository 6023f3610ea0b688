package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/medilinkhq/telehealth-api/internal/domain/appointment"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.DoctorProfile, error) {

	var doctor models.DoctorProfile
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetDoctorByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*models.DoctorProfile, error) {

	var doctor models.DoctorProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) ListAvailability(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]models.AvailabilitySlot, error) {

	var slots []models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatientByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*models.PatientProfile, error) {

	var patient models.PatientProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointmentIfFree inserts the appointment only when no other
// non-cancelled appointment of the same doctor overlaps its window.
// The conflict scan takes row locks so two concurrent bookings of the
// same occurrence cannot both pass.
func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.DoctorID,
				string(domain.StatusCancelled),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

// GetAppointmentForUser resolves the appointment when the user is
// either its patient or its doctor.
func (r *AppointmentGormRepository) GetAppointmentForUser(
	ctx context.Context,
	appointmentID uuid.UUID,
	userID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN patient_profiles ON patient_profiles.id = appointments.patient_id").
		Joins("LEFT JOIN doctor_profiles ON doctor_profiles.id = appointments.doctor_id").
		Where("appointments.id = ?", appointmentID).
		Where("patient_profiles.user_id = ? OR doctor_profiles.user_id = ?", userID, userID).
		First(&ap).Error
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientID uuid.UUID,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDoctor(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}
