// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for TaskReceipt,
// the record behind safe-retry semantics on task creation.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// GetTaskReceipt returns a non-expired receipt for (phone, key) or ErrNotFound.
func GetTaskReceipt(ctx context.Context, db *gorm.DB, phone, key string, now time.Time) (*domain.TaskReceipt, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.TaskReceipt
	err := db.WithContext(ctx).
		Where("phone = ? AND key = ? AND expires_at > ?", phone, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateTaskReceipt records the taskId produced for (phone, key) and returns
// ErrDuplicate on a unique violation.
func CreateTaskReceipt(ctx context.Context, db *gorm.DB, phone, key, taskID string, ttl time.Duration) (*domain.TaskReceipt, error) {
	now := time.Now().UTC()
	rec := &domain.TaskReceipt{
		ID:        uuid.NewString(),
		Phone:     phone,
		Key:       key,
		TaskID:    taskID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
