package schedule

import (
	"fmt"
	"time"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
)

// ===============================
// Time of day
// ===============================

// TimeOfDay is a wall-clock time with no date attached.
// Availability slots store these as "HH:mm" strings.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:mm" or "HH:mm:ss".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var tod TimeOfDay

	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return tod, httperr.ErrBusiness("invalid_time_of_day")
	}

	tod.Hour = t.Hour()
	tod.Minute = t.Minute()
	tod.Second = t.Second()
	return tod, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day to the given calendar date.
// Sub-second components are always zero.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour, t.Minute, t.Second, 0,
		date.Location(),
	)
}

func (t TimeOfDay) secondsOfDay() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.secondsOfDay() < other.secondsOfDay()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.secondsOfDay() > other.secondsOfDay()
}
