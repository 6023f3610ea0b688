package appointment

import (
	"time"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

// Cancel rejects cancellations closer to the start than lead.
func Cancel(ap *models.Appointment, now time.Time, lead time.Duration) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	if now.Add(lead).After(ap.StartTime) {
		return httperr.ErrBusiness("too_late_to_cancel")
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}
