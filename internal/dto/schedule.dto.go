package dto

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleSlotDTO pairs a recurring weekly slot with its next
// concrete occurrence for the requesting viewer.
type ScheduleSlotDTO struct {
	SlotID    uuid.UUID `json:"slot_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`

	NextStart time.Time `json:"next_start"`
	NextEnd   time.Time `json:"next_end"`
	IsBooked  bool      `json:"is_booked"`
}
