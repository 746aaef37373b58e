// Chat room HTTP handlers.
//
// This file exposes the room lifecycle endpoints:
//   - POST /chat/open  (open or rejoin a room; JSON body)
//   - GET  /chat/open  (same, via query params, for deep links)
//
// Opening is idempotent: any number of opens for the same (task, provider)
// pair converge on one room with one expiry.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// OpenChatRequest is the JSON payload for opening a chat room.
type OpenChatRequest struct {
	TaskID   string `json:"taskId" binding:"required"`
	Provider string `json:"provider" binding:"required"`
}

// OpenChatResponse describes the opened (or rejoined) room.
type OpenChatResponse struct {
	OK        bool             `json:"ok"`
	Room      *domain.ChatRoom `json:"chatRoom"`
	RoomID    string           `json:"roomId"`
	ExpiresAt string           `json:"expiresAt"`
}

// OpenChat opens (or returns) the room for a task/provider pair from a JSON
// body.
func (h *Handlers) OpenChat(c *gin.Context) {
	var req OpenChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "taskId and provider required")
		return
	}
	h.openChat(c, req.TaskID, req.Provider)
}

// OpenChatByQuery is the GET variant used by notification deep links:
// /chat/open?taskId=...&provider=...
func (h *Handlers) OpenChatByQuery(c *gin.Context) {
	taskID := strings.TrimSpace(c.Query("taskId"))
	provider := strings.TrimSpace(c.Query("provider"))
	if taskID == "" || provider == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "taskId and provider required")
		return
	}
	h.openChat(c, taskID, provider)
}

func (h *Handlers) openChat(c *gin.Context, taskID, provider string) {
	if _, err := uuid.Parse(taskID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "task id must be a UUID")
		return
	}

	room, err := h.chats.Open(c.Request.Context(), taskID, provider)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid provider phone")
		case errors.Is(err, services.ErrTaskNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "task not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, OpenChatResponse{
		OK:        true,
		Room:      room,
		RoomID:    room.ID,
		ExpiresAt: room.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}
