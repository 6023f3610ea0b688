package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/httpresp"
	"github.com/medilinkhq/telehealth-api/internal/models"
)

type SpecializationHandler struct {
	db *gorm.DB
}

func NewSpecializationHandler(db *gorm.DB) *SpecializationHandler {
	return &SpecializationHandler{db: db}
}

func (h *SpecializationHandler) List(c *gin.Context) {
	var specs []models.Specialization
	if err := h.db.Order("name ASC").Find(&specs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_specializations", "Could not load specializations.")
		return
	}

	httpresp.List(c, specs)
}
