// Task HTTP handlers.
//
// This file exposes the task registry endpoints:
//   - POST /tasks             (create a task, returns matched providers)
//   - GET  /tasks/:id         (fetch one task)
//   - POST /tasks/:id/notify  (fan notifications out to providers)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// result exists for (phone, key), the handler returns the original task and
// sets `Idempotency-Replayed: true`.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kaunkarega/taskmatch-backend/internal/http/middleware"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// CreateTaskRequest is the JSON payload for submitting a service request.
// Time is free text ("tomorrow morning"); it is stored, not parsed.
type CreateTaskRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Category string `json:"category" binding:"required,min=1,max=120"`
	Area     string `json:"area" binding:"required,min=1,max=120"`
	Details  string `json:"details"`
	Time     string `json:"time"`
}

// CreateTaskResponse carries the new task id and the providers matched for
// it. The client drives the notify step with this list.
type CreateTaskResponse struct {
	OK        bool                     `json:"ok"`
	TaskID    string                   `json:"taskId"`
	Providers []services.ProviderMatch `json:"providers"`
}

// NotifyRequest selects the providers to notify about a task. When the list
// is empty the server re-runs matching itself.
type NotifyRequest struct {
	Providers []services.ProviderMatch `json:"providers"`
}

// CreateTask records a new task and returns the matching providers.
func (h *Handlers) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "phone, category and area required")
		return
	}

	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	task, replayed, err := h.tasks.Create(ctx, req.Phone, req.Category, req.Area, req.Details, req.Time, idemKey)
	if err != nil {
		if errors.Is(err, phone.ErrInvalidPhone) {
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid phone number")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if replayed {
		c.Header("Idempotency-Replayed", "true")
	}

	matches, err := h.match.Find(ctx, task.Category, task.Area)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, CreateTaskResponse{OK: true, TaskID: task.ID, Providers: matches})
}

// GetTask fetches one task by id.
func (h *Handlers) GetTask(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "task id must be a UUID")
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "task not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, task)
}

// NotifyProviders dispatches new-task notifications. Failures against
// individual providers are recorded and skipped; sent counts only confirmed
// dispatches.
func (h *Handlers) NotifyProviders(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "task id must be a UUID")
		return
	}

	task, err := h.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "task not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	// An absent or empty body means "notify everyone who matches".
	var req NotifyRequest
	_ = c.ShouldBindJSON(&req)

	candidates := req.Providers
	if len(candidates) == 0 {
		candidates, err = h.match.Find(ctx, task.Category, task.Area)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
			return
		}
	}

	sent, err := h.notify.Notify(ctx, task, candidates)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	middleware.ObserveNotify("sent", sent)
	middleware.ObserveNotify("failed", len(candidates)-sent)

	ok(c, http.StatusOK, gin.H{"ok": true, "sent": sent})
}
