// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message
// append-only log.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// CreateMessage appends a message row to a room's log.
func CreateMessage(ctx context.Context, db *gorm.DB, roomID, sender, body string) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Sender:    sender,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListMessages returns every message in a room ordered deterministically
// (CreatedAt ASC, ID ASC). The explicit ORDER BY is the defensive sort: the
// store's natural return order is not part of its contract.
func ListMessages(ctx context.Context, db *gorm.DB, roomID string) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountMessages returns the number of messages in a room.
func CountMessages(ctx context.Context, db *gorm.DB, roomID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("room_id = ?", roomID).
		Count(&total).Error
	return total, err
}
