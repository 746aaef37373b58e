// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Task
// append-only log and its notify-attempt bookkeeping.
//
// Error semantics:
//   - When a task is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

// CreateTask appends an immutable task row with a fresh UUID id.
func CreateTask(ctx context.Context, db *gorm.DB, receiverPhone, category, area, details, neededBy string) (*domain.Task, error) {
	t := &domain.Task{
		ID:            uuid.NewString(),
		ReceiverPhone: receiverPhone,
		Category:      category,
		Area:          area,
		Details:       details,
		NeededBy:      neededBy,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTask fetches a task by id, or ErrNotFound.
func GetTask(ctx context.Context, db *gorm.DB, id string) (*domain.Task, error) {
	var t domain.Task
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTaskNotify records one notification attempt for (task, provider).
// Failed attempts are recorded too; Delivered distinguishes them.
func CreateTaskNotify(ctx context.Context, db *gorm.DB, taskID, providerPhone string, delivered bool, dispatchErr string) error {
	n := &domain.TaskNotify{
		ID:            uuid.NewString(),
		TaskID:        taskID,
		ProviderPhone: providerPhone,
		Delivered:     delivered,
		Error:         dispatchErr,
		CreatedAt:     time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(n).Error
}

// TaskWithResponses is a reporting row joining a task with its notify count.
type TaskWithResponses struct {
	domain.Task
	Responses int64 `json:"responses"`
}

// ListTasksWithResponses returns all tasks newest-first, each annotated with
// the number of notify attempts recorded against it. Reporting view only.
func ListTasksWithResponses(ctx context.Context, db *gorm.DB) ([]TaskWithResponses, error) {
	var out []TaskWithResponses
	err := db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("tasks.*, COUNT(task_notifies.id) AS responses").
		Joins("LEFT JOIN task_notifies ON task_notifies.task_id = tasks.id").
		Group("tasks.id").
		Order("tasks.created_at desc").
		Scan(&out).Error
	return out, err
}

// ListTasksWithoutNotify returns tasks that have zero notify-attempt rows:
// requests the fan-out step never reached. Used for operational visibility,
// not correctness; it is a view over the same append-only log.
func ListTasksWithoutNotify(ctx context.Context, db *gorm.DB) ([]domain.Task, error) {
	var out []domain.Task
	err := db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM task_notifies WHERE task_notifies.task_id = tasks.id)").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
