package schedule

import (
	"time"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

// ValidateBookingWindow checks that a chosen start plus the fixed
// consultation duration fits inside the slot's [start, end) window.
// Advisory only: the booking transaction still rejects conflicts.
func ValidateBookingWindow(
	slot *models.AvailabilitySlot,
	chosenStart time.Time,
	duration time.Duration,
) error {

	slotStart, err := ParseTimeOfDay(slot.StartTime)
	if err != nil {
		return err
	}
	slotEnd, err := ParseTimeOfDay(slot.EndTime)
	if err != nil {
		return err
	}

	windowStart := slotStart.On(chosenStart)
	windowEnd := slotEnd.On(chosenStart)

	if chosenStart.Before(windowStart) {
		return httperr.ErrBusiness("outside_slot_window")
	}
	if chosenStart.Add(duration).After(windowEnd) {
		return httperr.ErrBusiness("outside_slot_window")
	}

	return nil
}

// SlotForWeekday returns the first slot matching the weekday of the
// chosen date, or nil when the doctor has no slot that day.
func SlotForWeekday(slots []models.AvailabilitySlot, date time.Time) *models.AvailabilitySlot {
	weekday := int(date.Weekday())
	for i := range slots {
		if slots[i].DayOfWeek == weekday {
			return &slots[i]
		}
	}
	return nil
}
