// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used by the
// admin dashboard. Each function is context-aware and safe to call from
// services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// AdminStats is the aggregate snapshot rendered on the admin dashboard.
type AdminStats struct {
	TotalTasks        int64 `json:"totalTasks"`
	ProviderResponses int64 `json:"providerResponses"`
	ActiveChats       int64 `json:"activeChats"`
	ClosedChats       int64 `json:"closedChats"`
	TotalReviews      int64 `json:"totalReviews"`
}

// GetAdminStats collects row counts across the core collections. "Active"
// and "closed" reflect the stored status marker only: naturally expired rooms
// still count as ACTIVE here because expiry is a derived state, which matches
// what the dashboard historically displayed.
func GetAdminStats(ctx context.Context, db *gorm.DB) (*AdminStats, error) {
	var s AdminStats
	q := db.WithContext(ctx)

	if err := q.Model(&domain.Task{}).Count(&s.TotalTasks).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.TaskNotify{}).Count(&s.ProviderResponses).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.ChatRoom{}).Where("status = ?", domain.RoomActive).Count(&s.ActiveChats).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.ChatRoom{}).Where("status = ?", domain.RoomClosed).Count(&s.ClosedChats).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.Review{}).Count(&s.TotalReviews).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
