package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/assistant"
	"github.com/medilinkhq/telehealth-api/internal/httperr"
	"github.com/medilinkhq/telehealth-api/internal/httpresp"
	"github.com/medilinkhq/telehealth-api/internal/models"
	"github.com/medilinkhq/telehealth-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AssistantHandler struct {
	db     *gorm.DB
	client *assistant.Client
	cache  *assistant.HistoryCache
	log    *zap.Logger
}

func NewAssistantHandler(
	db *gorm.DB,
	client *assistant.Client,
	cache *assistant.HistoryCache,
	log *zap.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		db:     db,
		client: client,
		cache:  cache,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SendMessageRequest struct {
	SessionID *uuid.UUID `json:"session_id"`
	Message   string     `json:"message" binding:"required"`
}

type GuestChatRequest struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message" binding:"required"`
}

// ======================================================
// AUTHENTICATED CHAT
// ======================================================

func (h *AssistantHandler) Chat(c *gin.Context) {
	userID := currentUserID(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid chat payload.")
		return
	}

	var session models.AssistantSession

	if req.SessionID != nil {
		if err := h.db.
			Where("id = ? AND user_id = ?", *req.SessionID, userID).
			First(&session).Error; err != nil {
			httperr.NotFound(c, "session_not_found", "Session not found.")
			return
		}
	} else {
		session = models.AssistantSession{
			UserID: userID,
			Title:  sessionTitle(req.Message),
		}
		if err := h.db.Create(&session).Error; err != nil {
			httperr.Internal(c, "failed_to_create_session", "Could not start a session.")
			return
		}
	}

	reply, err := h.client.Chat(c.Request.Context(), session.ID.String(), req.Message)
	if err != nil {
		h.log.Error("assistant service call failed", zap.Error(err))
		httperr.Internal(c, "assistant_unavailable", "The assistant is unavailable right now.")
		return
	}

	msg := models.AssistantMessage{
		SessionID:   session.ID,
		UserMessage: req.Message,
		AIResponse:  reply.AIResponse,
	}
	if err := h.db.Create(&msg).Error; err != nil {
		httperr.Internal(c, "failed_to_store_message", "Could not store the message.")
		return
	}

	// cache failures must not break the chat
	if err := h.cache.Append(c.Request.Context(), session.ID.String(), assistant.CachedMessage{
		UserMessage: msg.UserMessage,
		AIResponse:  msg.AIResponse,
		Timestamp:   timezone.Now(),
	}); err != nil {
		h.log.Warn("assistant history cache append failed", zap.Error(err))
	}

	httpresp.OK(c, msg)
}

// ======================================================
// SESSIONS
// ======================================================

func (h *AssistantHandler) ListSessions(c *gin.Context) {
	userID := currentUserID(c)

	var sessions []models.AssistantSession
	if err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sessions", "Could not load sessions.")
		return
	}

	httpresp.List(c, sessions)
}

func (h *AssistantHandler) SessionMessages(c *gin.Context) {
	userID := currentUserID(c)

	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		httperr.BadRequest(c, "invalid_session_id", "Invalid session id.")
		return
	}

	var session models.AssistantSession
	if err := h.db.
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Session not found.")
		return
	}

	// hot sessions come straight from Redis
	if cached, err := h.cache.Load(c.Request.Context(), sessionID.String()); err == nil {
		httpresp.List(c, cached)
		return
	}

	var messages []models.AssistantMessage
	if err := h.db.
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_load_messages", "Could not load messages.")
		return
	}

	warm := make([]assistant.CachedMessage, 0, len(messages))
	for _, m := range messages {
		warm = append(warm, assistant.CachedMessage{
			UserMessage: m.UserMessage,
			AIResponse:  m.AIResponse,
			Timestamp:   m.CreatedAt,
		})
	}
	if err := h.cache.Save(c.Request.Context(), sessionID.String(), warm); err != nil {
		h.log.Warn("assistant history cache warm failed", zap.Error(err))
	}

	httpresp.List(c, messages)
}

// ======================================================
// GUEST CHAT
// ======================================================

// GuestChat proxies anonymous conversations straight to the
// assistant service; nothing is persisted on this side.
func (h *AssistantHandler) GuestChat(c *gin.Context) {
	var req GuestChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid chat payload.")
		return
	}

	chatID := req.ChatID
	if chatID == "" {
		chatID = uuid.NewString()
	}

	reply, err := h.client.Chat(c.Request.Context(), chatID, req.Message)
	if err != nil {
		h.log.Error("assistant service call failed", zap.Error(err))
		httperr.Internal(c, "assistant_unavailable", "The assistant is unavailable right now.")
		return
	}

	httpresp.OK(c, reply)
}

// ======================================================
// HELPERS
// ======================================================

// sessionTitle truncates on rune boundaries so multi-byte input can
// never produce an invalid-UTF-8 title.
func sessionTitle(message string) string {
	const max = 60
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "…"
}
