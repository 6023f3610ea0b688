package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(base time.Time, hour, min int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, min, 0, 0, base.Location())
}

func TestNextOccurrence_SlotLaterToday(t *testing.T) {
	// Monday 08:00, slot opens Monday 09:00: still offerable today.
	ref := at(monday, 8, 0)

	got, err := NextOccurrence(1, TimeOfDay{Hour: 9}, ref)
	require.NoError(t, err)
	assert.Equal(t, at(monday, 9, 0), got)
}

func TestNextOccurrence_SlotAlreadyElapsedToday(t *testing.T) {
	// Monday 09:30, slot opened 09:00: rolls to next Monday.
	ref := at(monday, 9, 30)

	got, err := NextOccurrence(1, TimeOfDay{Hour: 9}, ref)
	require.NoError(t, err)
	assert.Equal(t, at(monday.AddDate(0, 0, 7), 9, 0), got)
}

func TestNextOccurrence_SlotExactlyNow(t *testing.T) {
	// ref equal to the slot start counts as elapsed.
	ref := at(monday, 9, 0)

	got, err := NextOccurrence(1, TimeOfDay{Hour: 9}, ref)
	require.NoError(t, err)
	assert.Equal(t, at(monday.AddDate(0, 0, 7), 9, 0), got)
}

func TestNextOccurrence_EveryWeekday(t *testing.T) {
	ref := at(monday, 12, 0)

	for day := 0; day <= 6; day++ {
		got, err := NextOccurrence(day, TimeOfDay{Hour: 9}, ref)
		require.NoError(t, err)

		assert.Equal(t, time.Weekday(day), got.Weekday(), "day %d", day)
		assert.False(t, got.Before(ref), "day %d occurrence before ref", day)
		assert.True(t, got.Sub(ref) <= 7*24*time.Hour, "day %d occurrence more than a week out", day)
	}
}

func TestNextOccurrence_WrapsAroundWeek(t *testing.T) {
	// Sunday slot requested on a Monday lands six days out.
	ref := at(monday, 12, 0)

	got, err := NextOccurrence(0, TimeOfDay{Hour: 10}, ref)
	require.NoError(t, err)
	assert.Equal(t, at(monday.AddDate(0, 0, 6), 10, 0), got)
}

func TestNextOccurrence_InvalidDay(t *testing.T) {
	for _, day := range []int{-1, 7, 42} {
		_, err := NextOccurrence(day, TimeOfDay{Hour: 9}, monday)
		require.Error(t, err)

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "invalid_day_of_week", code)
	}
}

func TestIsOccurrenceBooked(t *testing.T) {
	doctorID := uuid.New()
	otherDoctor := uuid.New()
	start := at(monday, 9, 0)

	occ := Occurrence{
		SlotID:        uuid.New(),
		ConcreteStart: start,
		ConcreteEnd:   start.Add(ConsultationDuration),
	}

	tests := []struct {
		name         string
		appointments []models.Appointment
		want         bool
	}{
		{
			name:         "no appointments",
			appointments: nil,
			want:         false,
		},
		{
			name: "exact match",
			appointments: []models.Appointment{
				{DoctorID: doctorID, StartTime: start, Status: "pending"},
			},
			want: true,
		},
		{
			name: "within tolerance",
			appointments: []models.Appointment{
				{DoctorID: doctorID, StartTime: start.Add(5 * time.Second), Status: "confirmed"},
			},
			want: true,
		},
		{
			name: "within tolerance before",
			appointments: []models.Appointment{
				{DoctorID: doctorID, StartTime: start.Add(-30 * time.Second), Status: "pending"},
			},
			want: true,
		},
		{
			name: "outside tolerance",
			appointments: []models.Appointment{
				{DoctorID: doctorID, StartTime: start.Add(BookedMatchTolerance), Status: "pending"},
			},
			want: false,
		},
		{
			name: "cancelled appointments do not block",
			appointments: []models.Appointment{
				{DoctorID: doctorID, StartTime: start, Status: "cancelled"},
			},
			want: false,
		},
		{
			name: "other doctor does not block",
			appointments: []models.Appointment{
				{DoctorID: otherDoctor, StartTime: start, Status: "confirmed"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsOccurrenceBooked(occ, doctorID, tt.appointments)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOccurrenceOf(t *testing.T) {
	doctorID := uuid.New()

	slot := &models.AvailabilitySlot{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	ref := at(monday, 8, 0)

	occ, err := NextOccurrenceOf(slot, nil, ref)
	require.NoError(t, err)

	assert.Equal(t, slot.ID, occ.SlotID)
	assert.Equal(t, at(monday, 9, 0), occ.ConcreteStart)
	assert.Equal(t, at(monday, 10, 0), occ.ConcreteEnd)
	assert.False(t, occ.Booked)

	booked, err := NextOccurrenceOf(slot, []models.Appointment{
		{DoctorID: doctorID, StartTime: at(monday, 9, 0), Status: "pending"},
	}, ref)
	require.NoError(t, err)
	assert.True(t, booked.Booked)
}

func TestNextOccurrenceOf_MultiHourWindow(t *testing.T) {
	// the occurrence spans the whole slot window, not one consultation
	slot := &models.AvailabilitySlot{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "12:00",
	}

	occ, err := NextOccurrenceOf(slot, nil, at(monday, 8, 0))
	require.NoError(t, err)

	assert.Equal(t, at(monday, 9, 0), occ.ConcreteStart)
	assert.Equal(t, at(monday, 12, 0), occ.ConcreteEnd)
}

func TestNextOccurrenceOf_BadSlotTimes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "bad start", start: "not-a-time", end: "10:00"},
		{name: "bad end", start: "09:00", end: "later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &models.AvailabilitySlot{
				ID:        uuid.New(),
				DayOfWeek: 1,
				StartTime: tt.start,
				EndTime:   tt.end,
			}

			_, err := NextOccurrenceOf(slot, nil, monday)
			require.Error(t, err)

			code, ok := httperr.BusinessCode(err)
			require.True(t, ok)
			assert.Equal(t, "invalid_time_of_day", code)
		})
	}
}
