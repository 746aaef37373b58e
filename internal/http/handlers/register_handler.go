// Registration HTTP handlers.
//
// This file exposes the directory registration endpoints:
//   - POST /register/provider
//   - POST /register/receiver
//
// Category and area accept either a single string or a list; the stored
// form is always the normalized comma-separated set.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// RegisterProviderRequest is the JSON payload for provider registration.
// Category/Area are the singular forms; Categories/Areas the plural. At
// least one of each pair must be non-empty.
type RegisterProviderRequest struct {
	Name       string   `json:"name" binding:"required,min=1,max=120"`
	Phone      string   `json:"phone" binding:"required"`
	Category   string   `json:"category"`
	Categories []string `json:"categories"`
	Area       string   `json:"area"`
	Areas      []string `json:"areas"`
}

// RegisterReceiverRequest is the JSON payload for receiver registration.
type RegisterReceiverRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=120"`
	Phone string `json:"phone" binding:"required"`
	Area  string `json:"area"`
}

// mergeTerms folds a singular field into the plural list, dropping blanks.
func mergeTerms(one string, many []string) []string {
	out := make([]string, 0, len(many)+1)
	if s := strings.TrimSpace(one); s != "" {
		out = append(out, s)
	}
	for _, m := range many {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RegisterProvider creates an active provider directory entry.
func (h *Handlers) RegisterProvider(c *gin.Context) {
	var req RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and phone required")
		return
	}

	categories := mergeTerms(req.Category, req.Categories)
	areas := mergeTerms(req.Area, req.Areas)
	if len(categories) == 0 || len(areas) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "category and area required")
		return
	}

	p, err := h.register.RegisterProvider(c.Request.Context(), req.Phone, req.Name, categories, areas)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid phone number")
		case errors.Is(err, services.ErrDuplicateRegistration):
			fail(c, http.StatusConflict, ErrCodeConflict, "phone already registered")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, gin.H{"ok": true, "providerId": p.Phone})
}

// RegisterReceiver creates a receiver directory entry.
func (h *Handlers) RegisterReceiver(c *gin.Context) {
	var req RegisterReceiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and phone required")
		return
	}

	r, err := h.register.RegisterReceiver(c.Request.Context(), req.Phone, req.Name, req.Area)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid phone number")
		case errors.Is(err, services.ErrDuplicateRegistration):
			fail(c, http.StatusConflict, ErrCodeConflict, "phone already registered")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, gin.H{"ok": true, "receiverId": r.Phone})
}
