package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

// nextWeekAt returns a time next week at the given hour, far enough
// out that "start in the past" never trips during the test run.
func nextWeekAt(hour int) time.Time {
	base := time.Now().UTC().AddDate(0, 0, 7)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, time.UTC)
}

func bookingFixture() (*fakeRepo, BookAppointmentInput) {
	doctorID := uuid.New()
	patientUserID := uuid.New()
	start := nextWeekAt(10)

	repo := &fakeRepo{
		doctor:  &models.DoctorProfile{ID: doctorID},
		patient: &models.PatientProfile{ID: uuid.New(), UserID: patientUserID},
		slots: []models.AvailabilitySlot{
			{
				ID:        uuid.New(),
				DoctorID:  doctorID,
				DayOfWeek: int(start.Weekday()),
				StartTime: "09:00",
				EndTime:   "18:00",
			},
		},
	}

	in := BookAppointmentInput{
		PatientUserID: patientUserID,
		DoctorID:      doctorID,
		StartTime:     start,
	}

	return repo, in
}

func requireBusinessCode(t *testing.T, err error, want string) {
	t.Helper()
	require.Error(t, err)
	code, ok := httperr.BusinessCode(err)
	require.True(t, ok, "expected a business error, got %v", err)
	assert.Equal(t, want, code)
}

func TestBookAppointment(t *testing.T) {
	repo, in := bookingFixture()
	uc := NewBookAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, repo.patient.ID, ap.PatientID)
	assert.Equal(t, repo.doctor.ID, ap.DoctorID)
	assert.Equal(t, in.StartTime, ap.StartTime)
	// end defaults to one consultation length
	assert.Equal(t, in.StartTime.Add(time.Hour), ap.EndTime)
	require.NotNil(t, repo.created)
}

func TestBookAppointment_DoctorNotFound(t *testing.T) {
	repo, in := bookingFixture()
	in.DoctorID = uuid.New()
	uc := NewBookAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), in)
	requireBusinessCode(t, err, "doctor_not_found")
}

func TestBookAppointment_NoPatientProfile(t *testing.T) {
	repo, in := bookingFixture()
	in.PatientUserID = uuid.New()
	uc := NewBookAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), in)
	requireBusinessCode(t, err, "patient_profile_not_found")
}

func TestBookAppointment_StartInThePast(t *testing.T) {
	repo, in := bookingFixture()
	in.StartTime = time.Now().UTC().Add(-time.Hour)
	uc := NewBookAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), in)
	requireBusinessCode(t, err, "start_in_the_past")
}

func TestBookAppointment_EndBeforeStart(t *testing.T) {
	repo, in := bookingFixture()
	in.EndTime = in.StartTime.Add(-time.Minute)
	uc := NewBookAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), in)
	requireBusinessCode(t, err, "invalid_time_range")
}

func TestBookAppointment_NoSlotThatDay(t *testing.T) {
	repo, in := bookingFixture()
	repo.slots[0].DayOfWeek = (repo.slots[0].DayOfWeek + 1) % 7
	uc := NewBookAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), in)
	requireBusinessCode(t, err, "no_availability_for_day")
}

func TestBookAppointment_OutsideWindow(t *testing.T) {
	repo, in := bookingFixture()
	repo.slots[0].StartTime = "09:00"
	repo.slots[0].EndTime = "10:30"
	// 10:00 + 1h runs past the 10:30 close
	uc := NewBookAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), in)
	requireBusinessCode(t, err, "outside_slot_window")
}

func TestBookAppointment_Conflict(t *testing.T) {
	repo, in := bookingFixture()
	repo.createErr = httperr.ErrBusiness("time_conflict")
	uc := NewBookAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), in)
	requireBusinessCode(t, err, "time_conflict")
}
