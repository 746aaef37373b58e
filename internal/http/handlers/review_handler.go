// Review HTTP handlers.
//
// This file exposes the post-chat review gate:
//   - GET  /rooms/:id/review?reviewerPhone=...  (fetch own review, or null)
//   - POST /rooms/:id/review                    (submit a review)
//
// A duplicate submission is an expected client retry, not a fault: it gets
// a success-shaped body with duplicate:true instead of an error envelope.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// SubmitReviewRequest is the JSON payload for leaving a review.
type SubmitReviewRequest struct {
	ReviewerPhone string `json:"reviewerPhone" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Text          string `json:"reviewText"`
}

// GetReview returns the caller's review for the room, or null when none
// exists yet.
func (h *Handlers) GetReview(c *gin.Context) {
	roomID := c.Param("id")
	reviewer := strings.TrimSpace(c.Query("reviewerPhone"))
	if reviewer == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "reviewerPhone required")
		return
	}

	review, err := h.reviews.Get(c.Request.Context(), roomID, reviewer)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid phone number")
		case errors.Is(err, services.ErrChatNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "chat not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, gin.H{"ok": true, "review": review})
}

// SubmitReview records a review for a finished room.
func (h *Handlers) SubmitReview(c *gin.Context) {
	roomID := c.Param("id")

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "reviewerPhone and rating required")
		return
	}

	_, err := h.reviews.Submit(c.Request.Context(), roomID, req.ReviewerPhone, req.Rating, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be between 1 and 5")
		case errors.Is(err, phone.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid phone number")
		case errors.Is(err, services.ErrChatNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "chat not found")
		case errors.Is(err, services.ErrChatStillActive):
			fail(c, http.StatusBadRequest, ErrCodeChatStillActive, "chat is still active")
		case errors.Is(err, services.ErrNotAuthorized):
			fail(c, http.StatusForbidden, ErrCodeNotAuthorized, "not a participant of this chat")
		case errors.Is(err, services.ErrDuplicateReview):
			// Success-shaped: the client already left this review.
			ok(c, http.StatusOK, gin.H{"ok": false, "duplicate": true})
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, gin.H{"ok": true})
}
