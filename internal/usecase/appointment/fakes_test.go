package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medilinkhq/telehealth-api/internal/audit"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory Repository for exercising use cases
// without a database.
type fakeRepo struct {
	doctor       *models.DoctorProfile
	patient      *models.PatientProfile
	slots        []models.AvailabilitySlot
	appointments []models.Appointment

	appointmentForUser *models.Appointment

	created   *models.Appointment
	createErr error

	updated   *models.Appointment
	updateErr error
}

func (f *fakeRepo) GetDoctorByID(_ context.Context, id uuid.UUID) (*models.DoctorProfile, error) {
	if f.doctor == nil || f.doctor.ID != id {
		return nil, errNotFound
	}
	return f.doctor, nil
}

func (f *fakeRepo) GetDoctorByUserID(_ context.Context, userID uuid.UUID) (*models.DoctorProfile, error) {
	if f.doctor == nil || f.doctor.UserID != userID {
		return nil, errNotFound
	}
	return f.doctor, nil
}

func (f *fakeRepo) ListAvailability(_ context.Context, _ uuid.UUID) ([]models.AvailabilitySlot, error) {
	return f.slots, nil
}

func (f *fakeRepo) GetPatientByUserID(_ context.Context, userID uuid.UUID) (*models.PatientProfile, error) {
	if f.patient == nil || f.patient.UserID != userID {
		return nil, errNotFound
	}
	return f.patient, nil
}

func (f *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = uuid.New()
	f.created = ap
	return nil
}

func (f *fakeRepo) GetAppointmentForUser(_ context.Context, appointmentID, _ uuid.UUID) (*models.Appointment, error) {
	if f.appointmentForUser == nil || f.appointmentForUser.ID != appointmentID {
		return nil, errNotFound
	}
	cp := *f.appointmentForUser
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForPatient(_ context.Context, _ uuid.UUID) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeRepo) ListAppointmentsForDoctor(_ context.Context, _ uuid.UUID) ([]models.Appointment, error) {
	return f.appointments, nil
}

// nopSink drops audit events; the queue still drains normally.
type nopSink struct{}

func (nopSink) Log(_ *uuid.UUID, _, _ string, _ *uuid.UUID, _ any) error {
	return nil
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{}, zap.NewNop())
}
