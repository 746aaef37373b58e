package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaunkarega/taskmatch-backend/internal/phone"
)

func TestTask_Create_NormalizesInputs(t *testing.T) {
	db := newTestDB(t)
	svc := &TaskService{DB: db, ReceiptTTL: 24 * time.Hour}

	task, replayed, err := svc.Create(context.Background(), "98123 45678", "plumber", "old delhi", " fix sink ", "tomorrow", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if replayed {
		t.Fatalf("fresh create marked as replay")
	}
	if task.ReceiverPhone != "+919812345678" {
		t.Fatalf("phone not canonicalized: %q", task.ReceiverPhone)
	}
	if task.Category != "Plumber" || task.Area != "Old Delhi" {
		t.Fatalf("terms not normalized: %q / %q", task.Category, task.Area)
	}
	if task.Details != "fix sink" {
		t.Fatalf("details not trimmed: %q", task.Details)
	}
}

func TestTask_Create_InvalidPhone(t *testing.T) {
	db := newTestDB(t)
	svc := &TaskService{DB: db, ReceiptTTL: time.Hour}

	if _, _, err := svc.Create(context.Background(), "123", "Plumber", "Rohini", "", "", ""); !errors.Is(err, phone.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestTask_Create_IdempotentReplay(t *testing.T) {
	db := newTestDB(t)
	svc := &TaskService{DB: db, ReceiptTTL: 24 * time.Hour}
	ctx := context.Background()

	first, _, err := svc.Create(ctx, "9812345678", "Plumber", "Rohini", "", "", "key-1")
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second, replayed, err := svc.Create(ctx, "9812345678", "Plumber", "Rohini", "", "", "key-1")
	if err != nil {
		t.Fatalf("replay Create: %v", err)
	}
	if !replayed {
		t.Fatalf("expected replay for same (phone, key)")
	}
	if second.ID != first.ID {
		t.Fatalf("replay returned a different task: %s vs %s", second.ID, first.ID)
	}

	// A different key appends a fresh task.
	third, replayed, err := svc.Create(ctx, "9812345678", "Plumber", "Rohini", "", "", "key-2")
	if err != nil {
		t.Fatalf("third Create: %v", err)
	}
	if replayed || third.ID == first.ID {
		t.Fatalf("different key must create a new task")
	}
}

func TestTask_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &TaskService{DB: db, ReceiptTTL: time.Hour}

	if _, err := svc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTask_ListWithoutResponse(t *testing.T) {
	db := newTestDB(t)
	svc := &TaskService{DB: db, ReceiptTTL: time.Hour}
	ctx := context.Background()

	answered, _, err := svc.Create(ctx, "9812345678", "Plumber", "Rohini", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	silent, _, err := svc.Create(ctx, "9812345679", "Electrician", "Dwarka", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	notify := &NotifyService{DB: db, Gateway: &fakeSender{}, Template: "kk_job", ChatBaseURL: "https://x.test/chat"}
	if _, err := notify.Notify(ctx, answered, []ProviderMatch{{Phone: "+919000000001"}}); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	got, err := svc.ListWithoutResponse(ctx)
	if err != nil {
		t.Fatalf("ListWithoutResponse: %v", err)
	}
	if len(got) != 1 || got[0].ID != silent.ID {
		t.Fatalf("expected only the un-notified task, got %+v", got)
	}

	withCounts, err := svc.ListWithResponses(ctx)
	if err != nil {
		t.Fatalf("ListWithResponses: %v", err)
	}
	counts := map[string]int64{}
	for _, tw := range withCounts {
		counts[tw.ID] = tw.Responses
	}
	if counts[answered.ID] != 1 || counts[silent.ID] != 0 {
		t.Fatalf("unexpected response counts: %+v", counts)
	}
}
