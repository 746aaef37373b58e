// Message HTTP handlers.
//
// This file exposes the per-room message log:
//   - GET  /rooms/:id/messages  (full transcript plus room state)
//   - POST /rooms/:id/messages  (append one message)
//
// Reading a transcript stays allowed after the room expires or is closed;
// appending does not. An append racing the expiry instant is judged by the
// clock at its own write, so the rejection body carries expired:true for the
// client to switch into read-only mode.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// PostRoomMessageRequest is the JSON payload for sending a chat message.
type PostRoomMessageRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Message string `json:"message" binding:"required,min=1"`
}

// TranscriptResponse is the full message history of a room plus the state
// the client needs to render it.
type TranscriptResponse struct {
	OK       bool             `json:"ok"`
	Messages any              `json:"messages"`
	Expired  bool             `json:"expired"`
	ChatRoom any              `json:"chatRoom"`
}

// ListRoomMessages returns the room's transcript in send order.
func (h *Handlers) ListRoomMessages(c *gin.Context) {
	roomID := c.Param("id")

	tr, err := h.messages.List(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "chat not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, TranscriptResponse{
		OK:       true,
		Messages: tr.Messages,
		Expired:  tr.Expired,
		ChatRoom: tr.Room,
	})
}

// PostRoomMessage appends one message to a live room.
func (h *Handlers) PostRoomMessage(c *gin.Context) {
	roomID := c.Param("id")

	var req PostRoomMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "sender and message required")
		return
	}

	_, err := h.messages.Append(c.Request.Context(), roomID, req.Sender, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChatNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "chat not found")
		case errors.Is(err, services.ErrChatExpired):
			// Success-shaped flag so clients can flip to read-only.
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": false, "expired": true})
		case errors.Is(err, services.ErrChatClosed):
			fail(c, http.StatusBadRequest, ErrCodeChatClosed, "chat closed")
		case errors.Is(err, services.ErrInvalidSender):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "sender must be receiver or provider")
		case errors.Is(err, services.ErrEmptyBody):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message is empty")
		case errors.Is(err, services.ErrBodyTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, gin.H{"ok": true})
}
