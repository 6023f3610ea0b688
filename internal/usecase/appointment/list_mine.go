package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/medilinkhq/telehealth-api/internal/domain/appointment"
	"github.com/medilinkhq/telehealth-api/internal/dto"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(
	repo domain.Repository,
) *ListMyAppointments {
	return &ListMyAppointments{
		repo: repo,
	}
}

// Execute lists the caller's appointments from whichever side of the
// consultation they are on: patients see their bookings, doctors see
// their agenda.
func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	userID uuid.UUID,
) ([]dto.AppointmentListDTO, error) {

	var appointments []models.Appointment

	if patient, err := uc.repo.GetPatientByUserID(ctx, userID); err == nil {
		appointments, err = uc.repo.ListAppointmentsForPatient(ctx, patient.ID)
		if err != nil {
			return nil, err
		}
	} else if doctor, err := uc.repo.GetDoctorByUserID(ctx, userID); err == nil {
		appointments, err = uc.repo.ListAppointmentsForDoctor(ctx, doctor.ID)
		if err != nil {
			return nil, err
		}
	} else {
		return nil, httperr.ErrBusiness("profile_not_found")
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			DoctorID:    ap.DoctorID,
			DoctorName:  ap.Doctor.FirstName + " " + ap.Doctor.LastName,
			PatientID:   ap.PatientID,
			PatientName: ap.Patient.FirstName + " " + ap.Patient.LastName,
		})
	}

	return out, nil
}
