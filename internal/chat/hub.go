package chat

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/config"
	"github.com/medilinkhq/telehealth-api/internal/metrics"
	"github.com/medilinkhq/telehealth-api/internal/middleware"
	"github.com/medilinkhq/telehealth-api/internal/models"
	"github.com/medilinkhq/telehealth-api/internal/timezone"
)

// ======================================================
// WIRE MESSAGES
// ======================================================

// InboundMessage is what a connected client sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what the hub pushes to clients in a room.
type OutboundMessage struct {
	Type          string `json:"type"` // "message", "error"
	ID            string `json:"id,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
	SenderID      string `json:"sender_id,omitempty"`
	SenderName    string `json:"sender_name,omitempty"`
	Text          string `json:"text,omitempty"`
	SentAt        string `json:"sent_at,omitempty"`
}

// ======================================================
// HUB
// ======================================================

// Hub keeps one room per appointment. A client joins the room of the
// appointment it is a participant of and receives every message sent
// to that room; messages are persisted before broadcast so the
// history endpoint and live view never disagree.
type Hub struct {
	db  *gorm.DB
	cfg *config.Config
	log *zap.Logger

	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*client]struct{}
}

type client struct {
	conn   *websocket.Conn
	send   chan OutboundMessage
	userID uuid.UUID
	name   string
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin access is already constrained by the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewHub(db *gorm.DB, cfg *config.Config, log *zap.Logger) *Hub {
	return &Hub{
		db:    db,
		cfg:   cfg,
		log:   log,
		rooms: make(map[uuid.UUID]map[*client]struct{}),
	}
}

// ======================================================
// ROOM MEMBERSHIP
// ======================================================

func (h *Hub) join(appointmentID uuid.UUID, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[appointmentID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[appointmentID] = room
	}
	room[cl] = struct{}{}

	metrics.ChatConnections.Inc()
}

func (h *Hub) leave(appointmentID uuid.UUID, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[appointmentID]; ok {
		if _, member := room[cl]; member {
			delete(room, cl)
			close(cl.send)
			metrics.ChatConnections.Dec()
		}
		if len(room) == 0 {
			delete(h.rooms, appointmentID)
		}
	}
}

func (h *Hub) broadcast(appointmentID uuid.UUID, msg OutboundMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.rooms[appointmentID] {
		select {
		case cl.send <- msg:
		default:
			// slow consumer; the write pump will notice the closed conn
		}
	}
}

func (h *Hub) roomSize(appointmentID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[appointmentID])
}

// ======================================================
// PARTICIPANT CHECK
// ======================================================

// isParticipant: only the appointment's patient or doctor may join.
func (h *Hub) isParticipant(appointmentID, userID uuid.UUID) bool {
	var count int64
	h.db.
		Model(&models.Appointment{}).
		Joins("LEFT JOIN patient_profiles ON patient_profiles.id = appointments.patient_id").
		Joins("LEFT JOIN doctor_profiles ON doctor_profiles.id = appointments.doctor_id").
		Where("appointments.id = ?", appointmentID).
		Where("patient_profiles.user_id = ? OR doctor_profiles.user_id = ?", userID, userID).
		Count(&count)
	return count > 0
}

// ======================================================
// WEBSOCKET ENTRYPOINT
// ======================================================

// HandleWS upgrades the connection. Browsers cannot set headers on
// websocket dials, so the bearer token travels in the query string.
func (h *Hub) HandleWS(c *gin.Context) {
	token := c.Query("access_token")
	userID, _, err := middleware.TokenClaims(token, h.cfg.JWTSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	appointmentID, err := uuid.Parse(c.Query("appointment"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_appointment_id"})
		return
	}

	if !h.isParticipant(appointmentID, userID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not_a_participant"})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		conn:   conn,
		send:   make(chan OutboundMessage, 16),
		userID: userID,
		name:   user.FullName(),
	}

	h.join(appointmentID, cl)

	go h.writePump(cl)
	h.readPump(appointmentID, cl)
}

func (h *Hub) readPump(appointmentID uuid.UUID, cl *client) {
	defer func() {
		h.leave(appointmentID, cl)
		cl.conn.Close()
	}()

	for {
		var in InboundMessage
		if err := cl.conn.ReadJSON(&in); err != nil {
			return
		}

		switch in.Type {
		case "ping":
			continue
		case "message":
			if in.Text == "" {
				continue
			}
			if err := h.deliver(appointmentID, cl, in.Text); err != nil {
				h.log.Error("chat message delivery failed",
					zap.String("appointment_id", appointmentID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (h *Hub) writePump(cl *client) {
	for msg := range cl.send {
		if err := cl.conn.WriteJSON(msg); err != nil {
			cl.conn.Close()
			return
		}
	}
}

// deliver persists the message, then fans it out to the room.
func (h *Hub) deliver(appointmentID uuid.UUID, cl *client, text string) error {
	msg := models.ChatMessage{
		AppointmentID: appointmentID,
		SenderID:      cl.userID,
		SenderName:    cl.name,
		Content:       text,
		SentAt:        timezone.Now(),
	}

	if err := h.db.Create(&msg).Error; err != nil {
		return err
	}

	h.broadcast(appointmentID, OutboundMessage{
		Type:          "message",
		ID:            msg.ID.String(),
		AppointmentID: appointmentID.String(),
		SenderID:      cl.userID.String(),
		SenderName:    cl.name,
		Text:          text,
		SentAt:        msg.SentAt.Format("2006-01-02T15:04:05Z07:00"),
	})

	return nil
}
