// Package services – ReviewService
//
// This file implements the review gate: one review per (room, reviewer),
// accepted only after the room's chat window has ended. Checks run in a
// fixed order so a request failing several gates always reports the same
// one: rating shape, room existence, expiry, participation, duplicate.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
)

// ReviewService accepts and reads post-chat reviews.
type ReviewService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Chat resolves rooms and their expiry.
	Chat *ChatService
}

// Submit records a review for a finished room. The reviewer must be one of
// the room's two participants, the room must be past its window (or closed),
// and the (room, reviewer) pair must not have reviewed before. A duplicate
// reports ErrDuplicateReview; the unique index backs the pre-check up under
// races.
func (s *ReviewService) Submit(ctx context.Context, roomID, rawReviewerPhone string, rating int, text string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	room, err := s.Chat.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status != domain.RoomClosed && !IsExpired(room, s.Chat.now()) {
		return nil, ErrChatStillActive
	}

	reviewer, err := phone.Normalize(rawReviewerPhone)
	if err != nil {
		return nil, err
	}
	role := ""
	switch reviewer {
	case room.ReceiverPhone:
		role = domain.SenderReceiver
	case room.ProviderPhone:
		role = domain.SenderProvider
	default:
		return nil, ErrNotAuthorized
	}

	existing, err := repo.GetReview(ctx, s.DB, room.ID, reviewer)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	review, err := repo.CreateReview(ctx, s.DB, room.ID, reviewer, role, rating, strings.TrimSpace(text))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicateReview
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Get returns the reviewer's review for the room, or nil when none exists.
// Absence is a normal state for the client to render, not an error.
func (s *ReviewService) Get(ctx context.Context, roomID, rawReviewerPhone string) (*domain.Review, error) {
	reviewer, err := phone.Normalize(rawReviewerPhone)
	if err != nil {
		return nil, err
	}
	if _, err := s.Chat.Get(ctx, roomID); err != nil {
		return nil, err
	}
	return repo.GetReview(ctx, s.DB, roomID, reviewer)
}
