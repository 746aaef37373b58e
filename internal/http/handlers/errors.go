// Package handlers defines HTTP-layer error codes used across all API
// endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them for
// programmatic handling. Generic codes mirror common HTTP status semantics;
// domain-specific codes carry lifecycle states that a status alone cannot
// (an expired room and a closed room are both unusable, but the client
// renders them differently).
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeForbidden        = "forbidden"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeInvalidPhone    = "invalid_phone"
	ErrCodeOTPInvalid      = "otp_invalid"
	ErrCodeChatExpired     = "chat_expired"
	ErrCodeChatClosed      = "chat_closed"
	ErrCodeChatStillActive = "chat_still_active"
	ErrCodeNotAuthorized   = "not_authorized"
	ErrCodeUpstreamFailed  = "upstream_failed"
)
