package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medilinkhq/telehealth-api/internal/audit"
	domain "github.com/medilinkhq/telehealth-api/internal/domain/appointment"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
	"github.com/medilinkhq/telehealth-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	lead  time.Duration
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	lead time.Duration,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		lead:  lead,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.Now()
	if err := domain.Cancel(ap, now, uc.lead); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
