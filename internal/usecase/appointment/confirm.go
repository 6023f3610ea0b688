package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/medilinkhq/telehealth-api/internal/audit"
	domain "github.com/medilinkhq/telehealth-api/internal/domain/appointment"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
	"github.com/medilinkhq/telehealth-api/internal/timezone"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	userID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.Now()
	if err := domain.Confirm(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
