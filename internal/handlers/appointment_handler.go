package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/httpresp"
	"github.com/medilinkhq/telehealth-api/internal/metrics"
	ucAppointment "github.com/medilinkhq/telehealth-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC    *ucAppointment.BookAppointment
	confirmUC *ucAppointment.ConfirmAppointment
	cancelUC  *ucAppointment.CancelAppointment
	listUC    *ucAppointment.ListMyAppointments
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listUC *ucAppointment.ListMyAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:    bookUC,
		confirmUC: confirmUC,
		cancelUC:  cancelUC,
		listUC:    listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"` // RFC 3339
	EndTime   string    `json:"end_time"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	userID := currentUserID(c)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	start, err := parseRFC3339(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "Start time must be RFC 3339.")
		return
	}

	in := ucAppointment.BookAppointmentInput{
		PatientUserID: userID,
		DoctorID:      req.DoctorID,
		StartTime:     start,
	}

	if req.EndTime != "" {
		end, err := parseRFC3339(req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_time", "End time must be RFC 3339.")
			return
		}
		in.EndTime = end
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), in)
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			metrics.BookingConflicts.Inc()
			httperr.Conflict(c, "time_conflict", "The occurrence is already booked.")
			return
		}
		if code, isBusiness := httperr.BusinessCode(err); isBusiness {
			httperr.BadRequest(c, code, "Booking was rejected.")
			return
		}
		httperr.Internal(c, "failed_to_book_appointment", "Could not book the appointment.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := currentUserID(c)

	out, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		if code, isBusiness := httperr.BusinessCode(err); isBusiness {
			httperr.BadRequest(c, code, "Could not list appointments.")
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// CONFIRM / CANCEL
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), userID, id)
	if err != nil {
		h.writeStateChangeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), userID, id)
	if err != nil {
		h.writeStateChangeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) writeStateChangeError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "The appointment cannot change to that state.")
	case httperr.IsBusiness(err, "too_late_to_cancel"):
		httperr.BadRequest(c, "too_late_to_cancel", "The cancellation window has passed.")
	default:
		httperr.Internal(c, "failed_to_update_appointment", "Could not update the appointment.")
	}
}
