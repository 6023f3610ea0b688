package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medilinkhq/telehealth-api/internal/models"
)

func stateFixture(status string, startIn time.Duration) (*fakeRepo, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	apID := uuid.New()

	repo := &fakeRepo{
		appointmentForUser: &models.Appointment{
			ID:        apID,
			Status:    status,
			StartTime: time.Now().UTC().Add(startIn),
		},
	}

	return repo, userID, apID
}

func TestConfirmAppointment(t *testing.T) {
	repo, userID, apID := stateFixture("pending", 24*time.Hour)
	uc := NewConfirmAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), userID, apID)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "confirmed", repo.updated.Status)
}

func TestConfirmAppointment_NotFound(t *testing.T) {
	repo, userID, _ := stateFixture("pending", 24*time.Hour)
	uc := NewConfirmAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), userID, uuid.New())
	requireBusinessCode(t, err, "appointment_not_found")
}

func TestConfirmAppointment_AlreadyConfirmed(t *testing.T) {
	repo, userID, apID := stateFixture("confirmed", 24*time.Hour)
	uc := NewConfirmAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), userID, apID)
	requireBusinessCode(t, err, "invalid_state")
}

func TestCancelAppointment(t *testing.T) {
	repo, userID, apID := stateFixture("confirmed", 24*time.Hour)
	uc := NewCancelAppointment(repo, testDispatcher(), time.Hour)

	ap, err := uc.Execute(context.Background(), userID, apID)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", ap.Status)
	assert.NotNil(t, ap.CancelledAt)
	require.NotNil(t, repo.updated)
}

func TestCancelAppointment_TooClose(t *testing.T) {
	repo, userID, apID := stateFixture("pending", 30*time.Minute)
	uc := NewCancelAppointment(repo, testDispatcher(), time.Hour)

	_, err := uc.Execute(context.Background(), userID, apID)
	requireBusinessCode(t, err, "too_late_to_cancel")
}

func TestCancelAppointment_AlreadyCancelled(t *testing.T) {
	repo, userID, apID := stateFixture("cancelled", 24*time.Hour)
	uc := NewCancelAppointment(repo, testDispatcher(), time.Hour)

	_, err := uc.Execute(context.Background(), userID, apID)
	requireBusinessCode(t, err, "invalid_state")
}

func TestListMyAppointments(t *testing.T) {
	userID := uuid.New()
	patientID := uuid.New()

	repo := &fakeRepo{
		patient: &models.PatientProfile{ID: patientID, UserID: userID},
		appointments: []models.Appointment{
			{
				ID:        uuid.New(),
				PatientID: patientID,
				DoctorID:  uuid.New(),
				Status:    "pending",
				Doctor:    models.DoctorProfile{FirstName: "Grace", LastName: "Hopper"},
				Patient:   models.PatientProfile{FirstName: "Ada", LastName: "Lovelace"},
			},
		},
	}

	uc := NewListMyAppointments(repo)

	out, err := uc.Execute(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "Grace Hopper", out[0].DoctorName)
	assert.Equal(t, "Ada Lovelace", out[0].PatientName)
	assert.Equal(t, "pending", out[0].Status)
}

func TestListMyAppointments_Doctor(t *testing.T) {
	userID := uuid.New()
	doctorID := uuid.New()

	repo := &fakeRepo{
		doctor: &models.DoctorProfile{ID: doctorID, UserID: userID, FirstName: "Grace", LastName: "Hopper"},
		appointments: []models.Appointment{
			{
				ID:        uuid.New(),
				DoctorID:  doctorID,
				PatientID: uuid.New(),
				Status:    "pending",
				Doctor:    models.DoctorProfile{FirstName: "Grace", LastName: "Hopper"},
				Patient:   models.PatientProfile{FirstName: "Ada", LastName: "Lovelace"},
			},
		},
	}

	uc := NewListMyAppointments(repo)

	// a doctor account has no patient profile; the agenda still loads
	out, err := uc.Execute(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, doctorID, out[0].DoctorID)
	assert.Equal(t, "Ada Lovelace", out[0].PatientName)
	assert.Equal(t, "pending", out[0].Status)
}

func TestListMyAppointments_NoProfile(t *testing.T) {
	uc := NewListMyAppointments(&fakeRepo{})

	_, err := uc.Execute(context.Background(), uuid.New())
	requireBusinessCode(t, err, "profile_not_found")
}
