// Package services – MessageService
//
// This file implements the append-only message log inside a chat room.
// Acceptance is re-checked at every append against the room's current state,
// so a message racing the expiry instant is judged by the clock at its own
// write, not by what the sender last saw.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
)

// MaxMessageLen bounds a single message body.
const MaxMessageLen = 4096

// MessageService appends to and reads the per-room message log.
type MessageService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Chat resolves rooms and their expiry; messages never outlive their room.
	Chat *ChatService
}

// Transcript is a room's full ordered message history plus the room state
// the reader needs to render it.
type Transcript struct {
	Messages []domain.Message
	Room     *domain.ChatRoom
	Expired  bool
}

// Append validates and persists one message. Rejections, in order: unknown
// sender role, unknown room, closed room, expired room, empty or oversized
// body. The stored body is the trimmed form.
func (s *MessageService) Append(ctx context.Context, roomID, sender, body string) (*domain.Message, error) {
	if sender != domain.SenderReceiver && sender != domain.SenderProvider {
		return nil, ErrInvalidSender
	}

	room, err := s.Chat.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == domain.RoomClosed {
		return nil, ErrChatClosed
	}
	if IsExpired(room, s.Chat.now()) {
		return nil, ErrChatExpired
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if len(body) > MaxMessageLen {
		return nil, ErrBodyTooLong
	}

	return repo.CreateMessage(ctx, s.DB, room.ID, sender, body)
}

// List returns the room's complete transcript in send order. Reading stays
// allowed after expiry and after close; only writing is fenced.
func (s *MessageService) List(ctx context.Context, roomID string) (*Transcript, error) {
	room, err := s.Chat.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	msgs, err := repo.ListMessages(ctx, s.DB, room.ID)
	if err != nil {
		return nil, err
	}
	return &Transcript{
		Messages: msgs,
		Room:     room,
		Expired:  IsExpired(room, s.Chat.now()),
	}, nil
}
