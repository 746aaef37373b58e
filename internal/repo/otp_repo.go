// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for OTP codes.
//
// The consume path is the interesting one: two concurrent verifies with the
// same code must not both succeed, so consumption is a single conditional
// UPDATE rather than a read-then-mark.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// CreateOTP persists a freshly issued code for the given phone. Outstanding
// codes for the same phone are left alone: re-send is allowed and any
// unconsumed, unexpired code verifies.
func CreateOTP(ctx context.Context, db *gorm.DB, canonicalPhone, code string, ttl time.Duration) (*domain.OtpCode, error) {
	now := time.Now().UTC()
	rec := &domain.OtpCode{
		ID:        uuid.NewString(),
		Phone:     canonicalPhone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// ConsumeOTP atomically marks one matching, unconsumed, unexpired record as
// consumed and reports whether such a record existed. The WHERE clause is
// the whole concurrency story: of two racing verifies, exactly one UPDATE
// affects a row.
func ConsumeOTP(ctx context.Context, db *gorm.DB, canonicalPhone, code string, now time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.OtpCode{}).
		Where("phone = ? AND code = ? AND consumed_at IS NULL AND expires_at > ?", canonicalPhone, code, now).
		Update("consumed_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
