// Package services – TaskService
//
// This file implements the task registry: the append-only system of record
// for receiver requests. Tasks are immutable once created; the only
// downstream bookkeeping is the notify-attempt log owned by NotifyService.
// Creation supports keyed idempotency: a retried request carrying the same
// (phone, key) pair returns the original taskId instead of appending twice.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
)

// TaskService creates and retrieves task records.
type TaskService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// ReceiptTTL bounds how long a task-create idempotency key is honored.
	ReceiptTTL time.Duration
}

// Create normalizes the receiver phone and appends an immutable task record,
// returning the fresh task. When idemKey is non-empty and a receipt exists
// for (phone, idemKey), the previously created task is returned instead and
// replayed reports true.
func (s *TaskService) Create(ctx context.Context, rawPhone, category, area, details, neededBy, idemKey string) (task *domain.Task, replayed bool, err error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, false, err
	}

	if idemKey != "" {
		rec, rerr := repo.GetTaskReceipt(ctx, s.DB, canonical, idemKey, time.Now().UTC())
		if rerr == nil && rec != nil {
			prev, gerr := repo.GetTask(ctx, s.DB, rec.TaskID)
			if gerr == nil {
				return prev, true, nil
			}
		}
	}

	task, err = repo.CreateTask(ctx, s.DB, canonical,
		NormalizeTerm(category), NormalizeTerm(area),
		strings.TrimSpace(details), strings.TrimSpace(neededBy))
	if err != nil {
		return nil, false, err
	}

	if idemKey != "" {
		// Best effort: losing this write only costs retry protection.
		if _, rerr := repo.CreateTaskReceipt(ctx, s.DB, canonical, idemKey, task.ID, s.ReceiptTTL); rerr != nil && !errors.Is(rerr, repo.ErrDuplicate) {
			return task, false, nil
		}
	}
	return task, false, nil
}

// GetByID fetches a task or returns ErrTaskNotFound.
func (s *TaskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := repo.GetTask(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListWithResponses returns all tasks annotated with notify-attempt counts,
// newest first. Admin reporting.
func (s *TaskService) ListWithResponses(ctx context.Context) ([]repo.TaskWithResponses, error) {
	return repo.ListTasksWithResponses(ctx, s.DB)
}

// ListWithoutResponse returns tasks the notify step never reached: zero
// recorded attempt rows. Operational visibility over the same append-only
// log, not a separate source of truth.
func (s *TaskService) ListWithoutResponse(ctx context.Context) ([]domain.Task, error) {
	return repo.ListTasksWithoutNotify(ctx, s.DB)
}
