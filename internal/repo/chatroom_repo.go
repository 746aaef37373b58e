// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for chat rooms.
//
// Room ids are deterministic over (taskID, providerPhone) and serve as the
// primary key, so "insert if absent" degenerates to an ordinary insert: the
// second writer collides and is handed ErrDuplicate, at which point the
// service re-reads the winner's row.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// RoomID derives the deterministic chat room id for a (task, provider) pair.
// The same derivation everywhere is what keeps room opening idempotent.
func RoomID(taskID, canonicalProviderPhone string) string {
	return taskID + "-" + canonicalProviderPhone
}

// CreateChatRoom inserts a new ACTIVE room with a fixed expiry. Returns
// ErrDuplicate when a room for the pair already exists.
func CreateChatRoom(ctx context.Context, db *gorm.DB, taskID, receiverPhone, providerPhone string, now time.Time, ttl time.Duration) (*domain.ChatRoom, error) {
	room := &domain.ChatRoom{
		ID:            RoomID(taskID, providerPhone),
		TaskID:        taskID,
		ReceiverPhone: receiverPhone,
		ProviderPhone: providerPhone,
		Status:        domain.RoomActive,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(room).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return room, nil
}

// GetChatRoom fetches a room by id, or ErrNotFound.
func GetChatRoom(ctx context.Context, db *gorm.DB, roomID string) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	if err := db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// CloseChatRoom sets the terminal CLOSED marker on a room. Independent of
// natural TTL expiry; used for moderation. Returns ErrNotFound when no row
// was updated.
func CloseChatRoom(ctx context.Context, db *gorm.DB, roomID string) error {
	res := db.WithContext(ctx).
		Model(&domain.ChatRoom{}).
		Where("id = ?", roomID).
		Update("status", domain.RoomClosed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListChatRooms returns all rooms newest-first, for the admin surface.
func ListChatRooms(ctx context.Context, db *gorm.DB) ([]domain.ChatRoom, error) {
	var out []domain.ChatRoom
	err := db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, err
}
