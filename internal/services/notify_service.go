// Package services – NotifyService
//
// This file implements best-effort notification fan-out: for each candidate
// provider, record the attempt and send the job template. One bad number
// must not block the batch, so per-candidate failures are logged and
// swallowed; the returned count reflects only confirmed dispatches.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/gateway"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
)

// NotifyService fans "new task" notifications out to matched providers.
// It carries no state of its own beyond the attempt rows it writes.
type NotifyService struct {
	// DB is the GORM handle used for attempt bookkeeping.
	DB *gorm.DB
	// Gateway delivers the notifications.
	Gateway gateway.Sender
	// Template is the approved job-notification template name.
	Template string
	// ChatBaseURL is the public chat entry point embedded in the deep link.
	ChatBaseURL string
}

// Notify attempts delivery to every candidate and returns the number of
// confirmed dispatches. Candidates whose phone fails normalization are
// skipped. Every attempt, delivered or not, is recorded independently so
// the reporting views see the whole batch.
func (s *NotifyService) Notify(ctx context.Context, task *domain.Task, candidates []ProviderMatch) (int, error) {
	description := "New task available"
	if task.NeededBy != "" {
		description = "Needed: " + task.NeededBy
	}

	sent := 0
	for _, cand := range candidates {
		canonical, err := phone.Normalize(cand.Phone)
		if err != nil {
			log.Warn().Str("task_id", task.ID).Msg("skipping candidate with unnormalizable phone")
			continue
		}

		chatURL := fmt.Sprintf("%s?taskId=%s&provider=%s",
			s.ChatBaseURL, url.QueryEscape(task.ID), url.QueryEscape(canonical))

		sendErr := s.Gateway.SendTemplate(ctx, canonical, s.Template,
			[]string{task.Category, task.Area, description, chatURL})

		dispatchErr := ""
		if sendErr != nil {
			dispatchErr = sendErr.Error()
			log.Error().
				Err(sendErr).
				Str("task_id", task.ID).
				Msg("provider notification failed")
		}

		if err := repo.CreateTaskNotify(ctx, s.DB, task.ID, canonical, sendErr == nil, dispatchErr); err != nil {
			// The attempt log is reporting, not correctness; keep going.
			log.Error().Err(err).Str("task_id", task.ID).Msg("recording notify attempt failed")
		}

		if sendErr == nil {
			sent++
		}
	}
	return sent, nil
}
