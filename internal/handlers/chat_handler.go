package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/httpresp"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

type ChatHandler struct {
	db *gorm.DB
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

// History returns the persisted transcript of an appointment's chat.
// Live delivery happens over the websocket hub; both read the same
// table, so a reconnecting client never loses messages.
func (h *ChatHandler) History(c *gin.Context) {
	appointmentID, ok := parseUUIDParam(c, "appointmentId")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	userID := currentUserID(c)

	var count int64
	h.db.
		Model(&models.Appointment{}).
		Joins("LEFT JOIN patient_profiles ON patient_profiles.id = appointments.patient_id").
		Joins("LEFT JOIN doctor_profiles ON doctor_profiles.id = appointments.doctor_id").
		Where("appointments.id = ?", appointmentID).
		Where("patient_profiles.user_id = ? OR doctor_profiles.user_id = ?", userID, userID).
		Count(&count)
	if count == 0 {
		httperr.Forbidden(c, "not_a_participant", "You are not part of this conversation.")
		return
	}

	var messages []models.ChatMessage
	if err := h.db.
		Where("appointment_id = ?", appointmentID).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_load_history", "Could not load chat history.")
		return
	}

	httpresp.List(c, messages)
}
