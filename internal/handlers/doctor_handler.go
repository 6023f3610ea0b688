package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/audit"
	"github.com/medilinkhq/telehealth-api/internal/domain/schedule"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/httpresp"
	"github.com/medilinkhq/telehealth-api/internal/middleware"
	"github.com/medilinkhq/telehealth-api/internal/models"
	"github.com/medilinkhq/telehealth-api/internal/timezone"
	ucSchedule "github.com/medilinkhq/telehealth-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type DoctorHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	schedule *ucSchedule.DoctorSchedule
}

func NewDoctorHandler(
	db *gorm.DB,
	audit *audit.Dispatcher,
	scheduleUC *ucSchedule.DoctorSchedule,
) *DoctorHandler {
	return &DoctorHandler{
		db:       db,
		audit:    audit,
		schedule: scheduleUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateDoctorRequest struct {
	SpecializationID          *uuid.UUID `json:"specialization_id"`
	ConsultationFee           float64    `json:"consultation_fee" binding:"min=0"`
	MedicalInstitutionLicense string     `json:"medical_institution_license"`
	PhoneNumber               string     `json:"phone_number"`
	Biography                 string     `json:"biography"`
}

type CreateAvailabilityRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ======================================================
// DIRECTORY
// ======================================================

func (h *DoctorHandler) List(c *gin.Context) {
	var doctors []models.DoctorProfile
	if err := h.db.
		Preload("Specialization").
		Order("last_name ASC, first_name ASC").
		Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not load doctors.")
		return
	}

	httpresp.List(c, doctors)
}

func (h *DoctorHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var doctor models.DoctorProfile
	if err := h.db.Preload("Specialization").First(&doctor, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	httpresp.OK(c, doctor)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *DoctorHandler) ListAvailability(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var slots []models.AvailabilitySlot
	if err := h.db.
		Where("doctor_id = ?", id).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_availability", "Could not load availability.")
		return
	}

	httpresp.List(c, slots)
}

// Schedule returns the reconciled view: every weekly slot with its
// next concrete occurrence and whether the viewer already booked it.
// The optional tz query parameter decides what "today" means for the
// viewer; reconciliation itself runs on one reference instant.
func (h *DoctorHandler) Schedule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	viewerID := currentUserID(c)
	ref := timezone.NowIn(c.Query("tz"))

	slots, err := h.schedule.Execute(c.Request.Context(), id, viewerID, ref)
	if err != nil {
		if code, isBusiness := httperr.BusinessCode(err); isBusiness {
			httperr.BadRequest(c, code, "Could not compute schedule.")
			return
		}
		httperr.Internal(c, "failed_to_compute_schedule", "Could not compute schedule.")
		return
	}

	httpresp.List(c, slots)
}

func (h *DoctorHandler) CreateAvailability(c *gin.Context) {
	doctor, ok := h.doctorForUser(c)
	if !ok {
		return
	}

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid availability payload.")
		return
	}

	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time_of_day", "Start time must be HH:mm.")
		return
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time_of_day", "End time must be HH:mm.")
		return
	}
	if !start.Before(end) {
		httperr.BadRequest(c, "invalid_time_range", "Start must be before end.")
		return
	}

	// overlapping windows on the same weekday would produce ambiguous
	// occurrences, so they are rejected up front
	var existing []models.AvailabilitySlot
	if err := h.db.
		Where("doctor_id = ? AND day_of_week = ?", doctor.ID, req.DayOfWeek).
		Find(&existing).Error; err != nil {
		httperr.Internal(c, "failed_to_check_slots", "Could not verify existing slots.")
		return
	}
	for _, s := range existing {
		es, err1 := schedule.ParseTimeOfDay(s.StartTime)
		ee, err2 := schedule.ParseTimeOfDay(s.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if start.Before(ee) && end.After(es) {
			httperr.Conflict(c, "slot_overlap", "The window overlaps an existing slot.")
			return
		}
	}

	slot := models.AvailabilitySlot{
		DoctorID:  doctor.ID,
		DayOfWeek: req.DayOfWeek,
		StartTime: start.String(),
		EndTime:   end.String(),
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_slot", "Could not save the slot.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "availability_created",
		Entity:   "availability_slot",
		EntityID: &slot.ID,
	})

	httpresp.Created(c, slot)
}

func (h *DoctorHandler) DeleteAvailability(c *gin.Context) {
	doctor, ok := h.doctorForUser(c)
	if !ok {
		return
	}

	slotID, ok := parseUUIDParam(c, "slotId")
	if !ok {
		httperr.BadRequest(c, "invalid_slot_id", "Invalid slot id.")
		return
	}

	res := h.db.
		Where("id = ? AND doctor_id = ?", slotID, doctor.ID).
		Delete(&models.AvailabilitySlot{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_slot", "Could not delete the slot.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "availability_deleted",
		Entity:   "availability_slot",
		EntityID: &slotID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// REVIEWS
// ======================================================

func (h *DoctorHandler) ListReviews(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var reviews []models.DoctorReview
	if err := h.db.
		Where("doctor_id = ?", id).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not load reviews.")
		return
	}

	httpresp.List(c, reviews)
}

func (h *DoctorHandler) CreateReview(c *gin.Context) {
	doctorID, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review payload.")
		return
	}

	userID := currentUserID(c)

	var patient models.PatientProfile
	if err := h.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		httperr.Forbidden(c, "patient_profile_required", "Only patients can leave reviews.")
		return
	}

	// one review per completed consultation relationship
	var visits int64
	h.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND patient_id = ? AND status <> ?", doctorID, patient.ID, "cancelled").
		Count(&visits)
	if visits == 0 {
		httperr.Forbidden(c, "no_appointment_with_doctor", "You can only review doctors you visited.")
		return
	}

	review := models.DoctorReview{
		DoctorID:  doctorID,
		PatientID: patient.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not save the review.")
		return
	}

	httpresp.Created(c, review)
}

// ======================================================
// ME
// ======================================================

func (h *DoctorHandler) GetMe(c *gin.Context) {
	doctor, ok := h.doctorForUser(c)
	if !ok {
		return
	}

	httpresp.OK(c, doctor)
}

func (h *DoctorHandler) UpdateMe(c *gin.Context) {
	doctor, ok := h.doctorForUser(c)
	if !ok {
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile payload.")
		return
	}

	if req.SpecializationID != nil {
		doctor.SpecializationID = *req.SpecializationID
	}
	doctor.ConsultationFee = req.ConsultationFee
	doctor.MedicalInstitutionLicense = req.MedicalInstitutionLicense
	doctor.PhoneNumber = req.PhoneNumber
	doctor.Biography = req.Biography

	if err := h.db.Save(doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update the profile.")
		return
	}

	httpresp.OK(c, doctor)
}

// ======================================================
// HELPERS
// ======================================================

func (h *DoctorHandler) doctorForUser(c *gin.Context) (*models.DoctorProfile, bool) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return nil, false
	}

	var doctor models.DoctorProfile
	if err := h.db.
		Where("user_id = ?", userIDVal.(uuid.UUID)).
		First(&doctor).Error; err != nil {
		httperr.Forbidden(c, "doctor_profile_required", "Doctor profile required.")
		return nil, false
	}

	return &doctor, true
}
