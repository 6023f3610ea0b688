package timezone

import "time"

// Appointments are stored in UTC; a viewer's timezone only matters
// when reconciling recurring slots into concrete occurrences, where
// "today" depends on where the viewer is.
const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().UTC()
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
