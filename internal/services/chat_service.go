// Package services – ChatService
//
// This file implements the chat-room lifecycle. A room is keyed
// deterministically by (taskId, providerPhone): opening the same pair twice
// yields the same room with the same expiry, no matter how the requests
// race. Expiry is lazily derived from the stored expires_at instant; no
// background job flips state.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
)

// ChatService opens, reads, and closes time-boxed chat rooms.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// TTL is the fixed room lifetime, stamped once at creation.
	TTL time.Duration
	// Now is the clock; defaults to time.Now when nil. Injected for tests.
	Now func() time.Time
}

func (s *ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// IsExpired reports whether the room's window has passed at instant now.
// The boundary is exclusive: a room is live at exactly expires_at.
func IsExpired(room *domain.ChatRoom, now time.Time) bool {
	return now.After(room.ExpiresAt)
}

// Open returns the room for (taskID, providerPhone), creating it when absent.
// The room id is deterministic, so concurrent opens converge on one row: the
// loser of the insert race re-reads the winner's record. An existing room is
// returned as-is even when expired or closed; the caller decides what an
// unusable room means for its operation.
func (s *ChatService) Open(ctx context.Context, taskID, rawProviderPhone string) (*domain.ChatRoom, error) {
	providerPhone, err := phone.Normalize(rawProviderPhone)
	if err != nil {
		return nil, err
	}

	roomID := repo.RoomID(taskID, providerPhone)
	room, err := repo.GetChatRoom(ctx, s.DB, roomID)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	task, err := repo.GetTask(ctx, s.DB, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	room, err = repo.CreateChatRoom(ctx, s.DB, task.ID, task.ReceiverPhone, providerPhone, s.now(), s.TTL)
	if errors.Is(err, repo.ErrDuplicate) {
		return repo.GetChatRoom(ctx, s.DB, roomID)
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Get fetches a room or returns ErrChatNotFound.
func (s *ChatService) Get(ctx context.Context, roomID string) (*domain.ChatRoom, error) {
	room, err := repo.GetChatRoom(ctx, s.DB, roomID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return room, nil
}

// Close marks a room CLOSED. Closing is an administrative terminal override:
// it is idempotent and independent of expiry, and a closed room stays closed
// regardless of the clock.
func (s *ChatService) Close(ctx context.Context, roomID string) error {
	err := repo.CloseChatRoom(ctx, s.DB, roomID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrChatNotFound
	}
	return err
}

// List returns all rooms newest first, annotated with their lazily derived
// expiry at the current instant. Admin reporting.
func (s *ChatService) List(ctx context.Context) ([]RoomView, error) {
	rooms, err := repo.ListChatRooms(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]RoomView, 0, len(rooms))
	for i := range rooms {
		views = append(views, RoomView{
			ChatRoom: rooms[i],
			Expired:  IsExpired(&rooms[i], now),
		})
	}
	return views, nil
}

// RoomView is a room plus its derived expiry flag at read time.
type RoomView struct {
	domain.ChatRoom
	Expired bool `json:"expired"`
}
