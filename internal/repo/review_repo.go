// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Review model.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving the gate rules (expiry, participant check) to the
// services package.
//
// Error semantics:
//   - A duplicate review (same room_id, reviewer_phone) relies on the database
//     unique constraint and surfaces as ErrDuplicate; the service layer maps
//     it to the caller-visible Duplicate outcome.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// GetReview fetches the review left by reviewerPhone in roomID, or nil when
// none exists. Absence is a normal outcome here, not ErrNotFound: the caller
// is usually asking "has this party reviewed yet?".
func GetReview(ctx context.Context, db *gorm.DB, roomID, reviewerPhone string) (*domain.Review, error) {
	var r domain.Review
	err := db.WithContext(ctx).
		Where("room_id = ? AND reviewer_phone = ?", roomID, reviewerPhone).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview inserts a review row. The (room_id, reviewer_phone) pair must
// be unique, enforced by the schema; a violation returns ErrDuplicate so the
// second writer of a race gets a conflict rather than a silent duplicate.
func CreateReview(ctx context.Context, db *gorm.DB, roomID, reviewerPhone, reviewerRole string, rating int, text string) (*domain.Review, error) {
	r := &domain.Review{
		ID:            uuid.NewString(),
		RoomID:        roomID,
		ReviewerPhone: reviewerPhone,
		ReviewerRole:  reviewerRole,
		Rating:        rating,
		Text:          text,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return r, nil
}
