package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medilinkhq/telehealth-api/internal/audit"
	domain "github.com/medilinkhq/telehealth-api/internal/domain/appointment"
	"github.com/medilinkhq/telehealth-api/internal/domain/schedule"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
	"github.com/medilinkhq/telehealth-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientUserID uuid.UUID
	DoctorID      uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	patient, err := uc.repo.GetPatientByUserID(ctx, in.PatientUserID)
	if err != nil {
		return nil, httperr.ErrBusiness("patient_profile_not_found")
	}

	now := timezone.Now()
	if in.StartTime.Before(now) {
		return nil, httperr.ErrBusiness("start_in_the_past")
	}

	end := in.EndTime
	if end.IsZero() {
		end = in.StartTime.Add(schedule.ConsultationDuration)
	}
	if !end.After(in.StartTime) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	// The chosen time must fall inside one of the doctor's recurring
	// windows for that weekday.
	slots, err := uc.repo.ListAvailability(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	slot := schedule.SlotForWeekday(slots, in.StartTime)
	if slot == nil {
		return nil, httperr.ErrBusiness("no_availability_for_day")
	}

	if err := schedule.ValidateBookingWindow(slot, in.StartTime, end.Sub(in.StartTime)); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		StartTime: in.StartTime,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
	}

	// Conflict detection and insert run in one transaction.
	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.PatientUserID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
