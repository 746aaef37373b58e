package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(
		&domain.Provider{}, &domain.Receiver{},
		&domain.Task{}, &domain.TaskNotify{}, &domain.TaskReceipt{},
		&domain.OtpCode{}, &domain.ChatRoom{}, &domain.Message{}, &domain.Review{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// sentCall records one outbound gateway call for assertions.
type sentCall struct {
	Phone    string
	Template string
	Params   []string
	Body     string
}

// fakeSender implements gateway.Sender in memory. FailFor lists phones whose
// sends should error.
type fakeSender struct {
	mu      sync.Mutex
	Calls   []sentCall
	FailFor map[string]bool
	FailAll bool
}

func (f *fakeSender) SendText(_ context.Context, phone, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll || f.FailFor[phone] {
		return errors.New("send failed")
	}
	f.Calls = append(f.Calls, sentCall{Phone: phone, Body: body})
	return nil
}

func (f *fakeSender) SendTemplate(_ context.Context, phone, template string, params []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll || f.FailFor[phone] {
		return errors.New("send failed")
	}
	f.Calls = append(f.Calls, sentCall{Phone: phone, Template: template, Params: params})
	return nil
}

func (f *fakeSender) calls() []sentCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentCall, len(f.Calls))
	copy(out, f.Calls)
	return out
}
