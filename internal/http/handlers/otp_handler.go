// OTP HTTP handlers.
//
// This file exposes the phone-authentication endpoints:
//   - POST /otp/send    (issue and dispatch a one-time code)
//   - POST /otp/verify  (verify a code, single use)
//
// The issued code never appears in any response body; it travels only
// through the messaging gateway.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// SendOTPRequest is the JSON payload for requesting a one-time code.
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest is the JSON payload for verifying a one-time code.
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// SendOTP issues a fresh code for the given phone and dispatches it.
func (h *Handlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "phone required")
		return
	}

	if _, err := h.otp.Issue(c.Request.Context(), req.Phone); err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid phone number")
		case errors.Is(err, services.ErrGatewayUnavailable):
			fail(c, http.StatusBadGateway, ErrCodeUpstreamFailed, "could not deliver otp")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, gin.H{"ok": true})
}

// VerifyOTP checks a submitted code and consumes it on success. Wrong,
// expired, and already-used codes all yield the same rejection.
func (h *Handlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "phone and otp required")
		return
	}

	if err := h.otp.Verify(c.Request.Context(), req.Phone, req.OTP); err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeInvalidPhone, "invalid phone number")
		case errors.Is(err, services.ErrInvalidOTPFormat), errors.Is(err, services.ErrOTPInvalid):
			fail(c, http.StatusBadRequest, ErrCodeOTPInvalid, "invalid or expired otp")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, gin.H{"ok": true})
}
