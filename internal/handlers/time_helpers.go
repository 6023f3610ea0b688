package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medilinkhq/telehealth-api/internal/middleware"
)

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextUserID).(uuid.UUID)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseRFC3339 accepts timestamps with or without sub-second parts,
// the way the web client serializes Dates.
func parseRFC3339(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
