package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mikeboe/workplace-chat/pkg/chat"
	"github.com/mikeboe/workplace-chat/pkg/history"
)

type Handler struct {
	Chat    *chat.Service
	History *history.Store
}

func NewHandler(c *chat.Service, h *history.Store) *Handler {
	return &Handler{Chat: c, History: h}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.health)
	api := r.Group("/api")
	{
		api.POST("/chat", h.ask)
		api.GET("/chat/:id/messages", h.getMessages)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type askRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id"`
}

// ask streams one turn over SSE. Each event is one "data: ..." frame with a
// blank-line terminator; the stream opens with the session tag and, on
// success, closes with the done tag. A stream that ends without the done tag
// is the failure signal.
func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Transfer-Encoding", "chunked")

	for event := range h.Chat.Ask(c.Request.Context(), sessionID, req.Question) {
		switch event.Type {
		case chat.EventSession:
			writeData(c, chat.SessionIDTag+" "+event.Payload)
		case chat.EventStatus:
			writeData(c, "***"+event.Payload+"***")
		case chat.EventFragment:
			writeData(c, event.Payload)
		case chat.EventDone:
			writeData(c, chat.DoneTag)
		case chat.EventError:
			// Close without the done tag; the orchestrator already
			// logged the cause.
			return
		}
	}
}

func writeData(c *gin.Context, payload string) {
	_, _ = c.Writer.Write([]byte("data: "))
	_, _ = c.Writer.Write([]byte(payload))
	_, _ = c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}

func (h *Handler) getMessages(c *gin.Context) {
	sessionID := c.Param("id")

	msgs, err := h.History.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if msgs == nil {
		msgs = []history.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}
