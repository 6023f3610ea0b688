package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	domain "github.com/medilinkhq/telehealth-api/internal/domain/appointment"
	schedomain "github.com/medilinkhq/telehealth-api/internal/domain/schedule"
	"github.com/medilinkhq/telehealth-api/internal/dto"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

// DoctorSchedule reconciles a doctor's recurring weekly slots against
// the viewing patient's own appointments: for every slot, the next
// concrete occurrence and whether the viewer already holds a booking
// there. The reference instant is explicit so the computation stays
// deterministic under test.
type DoctorSchedule struct {
	repo domain.Repository
}

func NewDoctorSchedule(repo domain.Repository) *DoctorSchedule {
	return &DoctorSchedule{repo: repo}
}

func (uc *DoctorSchedule) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
	viewerUserID uuid.UUID,
	ref time.Time,
) ([]dto.ScheduleSlotDTO, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	slots, err := uc.repo.ListAvailability(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	if viewerUserID != uuid.Nil {
		if patient, err := uc.repo.GetPatientByUserID(ctx, viewerUserID); err == nil {
			appointments, err = uc.repo.ListAppointmentsForPatient(ctx, patient.ID)
			if err != nil {
				return nil, err
			}
		}
		// a doctor viewing another doctor simply has no bookings to match
	}

	out := make([]dto.ScheduleSlotDTO, 0, len(slots))
	for i := range slots {
		slot := &slots[i]

		occ, err := schedomain.NextOccurrenceOf(slot, appointments, ref)
		if err != nil {
			return nil, err
		}

		out = append(out, dto.ScheduleSlotDTO{
			SlotID:    slot.ID,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			NextStart: occ.ConcreteStart,
			NextEnd:   occ.ConcreteEnd,
			IsBooked:  occ.Booked,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].NextStart.Before(out[j].NextStart)
	})

	return out, nil
}
