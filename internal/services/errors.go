// Package services defines the business logic for the request lifecycle:
// OTP authentication, provider matching, task registration, notification
// fan-out, chat room lifecycle, the message log, and the review gate.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Validation errors: always caller-fixable, surfaced verbatim.
var (
	// ErrInvalidOTPFormat is returned when a submitted code is not a
	// fixed-length digit string. Rejected before any lookup.
	ErrInvalidOTPFormat = errors.New("otp must be a fixed-length digit code")

	// ErrInvalidRating is returned when a review rating is not an integer
	// in [1,5].
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

	// ErrInvalidSender is returned when a message sender is neither
	// "receiver" nor "provider".
	ErrInvalidSender = errors.New("sender must be receiver or provider")

	// ErrEmptyBody is returned when a message body is blank.
	ErrEmptyBody = errors.New("message is empty")

	// ErrBodyTooLong is returned when a message body exceeds the configured
	// maximum length.
	ErrBodyTooLong = errors.New("message too long")
)

// Not-found errors, surfaced as 404-equivalent.
var (
	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrChatNotFound indicates that the requested chat room does not exist.
	ErrChatNotFound = errors.New("chat not found")
)

// State-conflict errors carry a specific reason code so the client
// can render the right message.
var (
	// ErrOTPInvalid is returned when no unconsumed, unexpired code matches.
	// Deliberately covers wrong code, already-consumed code, and expired
	// code alike: distinguishing them would hand an attacker an oracle.
	ErrOTPInvalid = errors.New("invalid otp")

	// ErrChatExpired is returned when a message append hits a room whose
	// TTL has elapsed.
	ErrChatExpired = errors.New("chat expired")

	// ErrChatClosed is returned when a message append hits a room an
	// administrator has closed.
	ErrChatClosed = errors.New("chat closed")

	// ErrChatStillActive is returned when a review is submitted before the
	// room's TTL has elapsed. Reviews are disallowed while the chat is live
	// to avoid influencing an ongoing negotiation.
	ErrChatStillActive = errors.New("chat still active")

	// ErrNotAuthorized is returned when the acting phone is not one of the
	// room's two participants.
	ErrNotAuthorized = errors.New("not authorized for this chat")
)

// Duplicate outcomes are expected and common; handlers surface these as
// success-shaped responses, not error envelopes.
var (
	// ErrDuplicateReview is returned when a (room, reviewer) pair already
	// has a review.
	ErrDuplicateReview = errors.New("review already exists")

	// ErrDuplicateRegistration is returned when the phone is already
	// registered in the relevant directory.
	ErrDuplicateRegistration = errors.New("phone already registered")
)

// Upstream errors.
var (
	// ErrGatewayUnavailable is returned when the notification gateway could
	// not be reached within the timeout and retry budget. Transient; the
	// caller may retry.
	ErrGatewayUnavailable = errors.New("notification gateway unavailable")
)
