package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/medilinkhq/telehealth-api/internal/domain/appointment"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

// BookedMatchTolerance bounds the timestamp difference allowed when
// matching a recomputed occurrence against a persisted appointment.
// The persisted start is a full timestamp while the occurrence is
// rebuilt from day-of-week + time-of-day, so the two can drift by
// seconds or milliseconds of calendar arithmetic.
const BookedMatchTolerance = time.Minute

// ConsultationDuration is the fixed length of a booked consultation.
const ConsultationDuration = time.Hour

// Occurrence is the next concrete calendar instance of a recurring
// weekly slot. Derived per request, never persisted.
type Occurrence struct {
	SlotID        uuid.UUID `json:"slot_id"`
	ConcreteStart time.Time `json:"concrete_start"`
	ConcreteEnd   time.Time `json:"concrete_end"`
	Booked        bool      `json:"is_booked"`
}

// NextOccurrence computes the next calendar date on or after ref at
// which a weekly slot (dayOfWeek 0=Sunday..6=Saturday, starting at
// start) is offerable. A slot whose start has already elapsed today
// rolls to next week. The same ref is used for the day and the time
// comparison, so a midnight boundary cannot split one evaluation.
func NextOccurrence(dayOfWeek int, start TimeOfDay, ref time.Time) (time.Time, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return time.Time{}, httperr.ErrBusiness("invalid_day_of_week")
	}

	delta := dayOfWeek - int(ref.Weekday())
	if delta < 0 {
		delta += 7
	}

	if delta == 0 && !ref.Before(start.On(ref)) {
		delta = 7
	}

	date := ref.AddDate(0, 0, delta)
	return start.On(date), nil
}

// NextOccurrenceOf derives the full occurrence of a persisted slot,
// marking it booked against the viewer's appointment list.
func NextOccurrenceOf(
	slot *models.AvailabilitySlot,
	appointments []models.Appointment,
	ref time.Time,
) (Occurrence, error) {

	start, err := ParseTimeOfDay(slot.StartTime)
	if err != nil {
		return Occurrence{}, err
	}
	end, err := ParseTimeOfDay(slot.EndTime)
	if err != nil {
		return Occurrence{}, err
	}

	concreteStart, err := NextOccurrence(slot.DayOfWeek, start, ref)
	if err != nil {
		return Occurrence{}, err
	}

	occ := Occurrence{
		SlotID:        slot.ID,
		ConcreteStart: concreteStart,
		ConcreteEnd:   end.On(concreteStart),
	}
	occ.Booked = IsOccurrenceBooked(occ, slot.DoctorID, appointments)

	return occ, nil
}

// IsOccurrenceBooked reports whether a non-cancelled appointment with
// the same doctor starts within BookedMatchTolerance of the occurrence.
// Pure function of its inputs.
func IsOccurrenceBooked(
	occ Occurrence,
	doctorID uuid.UUID,
	appointments []models.Appointment,
) bool {

	for _, ap := range appointments {
		if appointment.Status(ap.Status) == appointment.StatusCancelled {
			continue
		}
		if ap.DoctorID != doctorID {
			continue
		}

		diff := ap.StartTime.Sub(occ.ConcreteStart)
		if diff < 0 {
			diff = -diff
		}
		if diff < BookedMatchTolerance {
			return true
		}
	}

	return false
}
