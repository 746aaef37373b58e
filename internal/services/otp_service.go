// Package services – OTPService
//
// This file implements the phone-authentication flow: issuing one-time codes
// and verifying them single-use. Codes are persisted before dispatch, so a
// failed dispatch leaves a harmless unconsumed record behind (the caller
// retries and a fresh code is issued); verification is an atomic
// mark-consumed-if-not-already against the persistence layer.
package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/gateway"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// digitsRE matches a bare digit string; length is checked separately against
// the configured code length.
var digitsRE = regexp.MustCompile(`^\d+$`)

// OTPService issues and verifies one-time passwords bound to a phone
// identity. State machine per code: NONE -> ISSUED -> CONSUMED.
type OTPService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Gateway delivers the issued code to the phone.
	Gateway gateway.Sender
	// Template is the approved OTP template name; the code is its only param.
	Template string
	// CodeLength is the number of digits per code.
	CodeLength int
	// TTL is the validity window for issued codes.
	TTL time.Duration
	// Now is the clock; defaults to time.Now when nil. Injected for tests.
	Now func() time.Time
}

func (s *OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue normalizes the phone, generates a fresh numeric code, persists it,
// and dispatches it via the gateway. Dispatch failure fails the whole
// operation: no code counts as "sent" if delivery failed. The already
// persisted record is an accepted transient inconsistency; it simply never
// gets consumed.
//
// The generated code is returned for test seams; production callers must not
// leak it anywhere but the gateway.
func (s *OTPService) Issue(ctx context.Context, rawPhone string) (string, error) {
	tr := otel.Tracer("services/OTPService")
	ctx, span := tr.Start(ctx, "Issue")
	defer span.End()

	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.Int("otp.length", s.CodeLength))

	code, err := generateCode(s.CodeLength)
	if err != nil {
		return "", err
	}

	if _, err := repo.CreateOTP(ctx, s.DB, canonical, code, s.TTL); err != nil {
		return "", err
	}

	if err := s.Gateway.SendTemplate(ctx, canonical, s.Template, []string{code}); err != nil {
		return "", ErrGatewayUnavailable
	}
	return code, nil
}

// Verify succeeds iff an unconsumed, unexpired code matches the phone, and
// marks that record consumed in the same statement. Wrong-shape codes are
// rejected with ErrInvalidOTPFormat before any lookup; everything else that
// fails (wrong code, consumed code, expired code) is ErrOTPInvalid.
func (s *OTPService) Verify(ctx context.Context, rawPhone, code string) error {
	tr := otel.Tracer("services/OTPService")
	ctx, span := tr.Start(ctx, "Verify", trace.WithAttributes(
		attribute.Int("otp.length", len(code)),
	))
	defer span.End()

	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return err
	}
	if len(code) != s.CodeLength || !digitsRE.MatchString(code) {
		return ErrInvalidOTPFormat
	}

	consumed, err := repo.ConsumeOTP(ctx, s.DB, canonical, code, s.now())
	if err != nil {
		return err
	}
	if !consumed {
		return ErrOTPInvalid
	}
	return nil
}

// generateCode returns a uniformly random numeric string of n digits.
// Leading zeros are allowed; "0042" is a valid 4-digit code.
func generateCode(n int) (string, error) {
	const digits = "0123456789"
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		buf[i] = digits[idx.Int64()]
	}
	return string(buf), nil
}
