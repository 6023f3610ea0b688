package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/httpresp"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type UpdatePatientRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Gender      int    `json:"gender" binding:"min=0,max=1"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	PhoneNumber string `json:"phone_number"`
}

func (h *PatientHandler) GetMe(c *gin.Context) {
	userID := currentUserID(c)

	var patient models.PatientProfile
	if err := h.db.Preload("User").Where("user_id = ?", userID).First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_profile_not_found", "Patient profile not found.")
		return
	}

	httpresp.OK(c, gin.H{
		"id":            patient.ID,
		"user_id":       patient.UserID,
		"first_name":    patient.FirstName,
		"last_name":     patient.LastName,
		"gender":        patient.Gender,
		"date_of_birth": patient.DateOfBirth,
		"phone_number":  patient.PhoneNumber,
		"email":         patient.User.Email,
	})
}

func (h *PatientHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
		return
	}

	var patient models.PatientProfile
	if err := h.db.First(&patient, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	httpresp.OK(c, patient)
}

func (h *PatientHandler) UpdateMe(c *gin.Context) {
	userID := currentUserID(c)

	var patient models.PatientProfile
	if err := h.db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_profile_not_found", "Patient profile not found.")
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile payload.")
		return
	}

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.Gender = req.Gender
	patient.PhoneNumber = req.PhoneNumber

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_of_birth", "Date of birth must be YYYY-MM-DD.")
			return
		}
		patient.DateOfBirth = &dob
	}

	if err := h.db.Save(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update the profile.")
		return
	}

	httpresp.OK(c, patient)
}
