// Admin HTTP handlers.
//
// This file exposes the operational reporting surface:
//   - GET  /admin/stats             (marketplace totals)
//   - GET  /admin/chats             (all rooms with derived expiry)
//   - GET  /admin/tasks             (tasks with response counts, paginated)
//   - GET  /admin/tasks/unanswered  (tasks the notify step never reached)
//   - POST /admin/rooms/:id/close   (terminal moderation override)
//
// All reads are lazily derived from the same tables the public API writes;
// there is no separate reporting store to drift.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaunkarega/taskmatch-backend/internal/services"
	"github.com/kaunkarega/taskmatch-backend/internal/utils"
)

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 50
		maxPageSize     = 200
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// AdminStats returns the marketplace aggregate counters.
func (h *Handlers) AdminStats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}

// AdminListChats returns every room, newest first, with derived expiry.
func (h *Handlers) AdminListChats(c *gin.Context) {
	rooms, err := h.chats.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "chats": rooms})
}

// AdminListTasks returns a page of tasks annotated with notify-attempt
// counts, newest first.
func (h *Handlers) AdminListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListWithResponses(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	page, pageSize := clampPagination(c)
	start := (page - 1) * pageSize
	if start > len(tasks) {
		start = len(tasks)
	}
	end := start + pageSize
	if end > len(tasks) {
		end = len(tasks)
	}

	ok(c, http.StatusOK, gin.H{
		"ok":        true,
		"tasks":     tasks[start:end],
		"page":      page,
		"page_size": pageSize,
		"total":     len(tasks),
	})
}

// AdminUnansweredTasks returns tasks with zero recorded notify attempts.
func (h *Handlers) AdminUnansweredTasks(c *gin.Context) {
	tasks, err := h.tasks.ListWithoutResponse(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "tasks": tasks})
}

// AdminCloseRoom marks a room CLOSED. Terminal: the room never reopens.
func (h *Handlers) AdminCloseRoom(c *gin.Context) {
	roomID := c.Param("id")

	if err := h.chats.Close(c.Request.Context(), roomID); err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "chat not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, gin.H{"ok": true})
}
