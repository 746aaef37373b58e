package repo

import (
	"context"
	"testing"
	"time"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
)

func TestConsumeOTP_MarksExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateOTP(ctx, db, "+919812345678", "1234", 10*time.Minute); err != nil {
		t.Fatalf("CreateOTP: %v", err)
	}

	now := time.Now().UTC()
	consumed, err := ConsumeOTP(ctx, db, "+919812345678", "1234", now)
	if err != nil {
		t.Fatalf("ConsumeOTP: %v", err)
	}
	if !consumed {
		t.Fatalf("fresh code not consumed")
	}

	// The update is conditional on consumed_at IS NULL: a second attempt
	// matches zero rows.
	consumed, err = ConsumeOTP(ctx, db, "+919812345678", "1234", now)
	if err != nil {
		t.Fatalf("second ConsumeOTP: %v", err)
	}
	if consumed {
		t.Fatalf("code consumed twice")
	}
}

func TestConsumeOTP_RespectsExpiry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateOTP(ctx, db, "+919812345678", "1234", time.Minute); err != nil {
		t.Fatalf("CreateOTP: %v", err)
	}

	late := time.Now().UTC().Add(2 * time.Minute)
	consumed, err := ConsumeOTP(ctx, db, "+919812345678", "1234", late)
	if err != nil {
		t.Fatalf("ConsumeOTP: %v", err)
	}
	if consumed {
		t.Fatalf("expired code consumed")
	}

	// The record stays unconsumed; expiry is judged per attempt.
	var rec domain.OtpCode
	if err := db.Where("phone = ?", "+919812345678").First(&rec).Error; err != nil {
		t.Fatalf("load code: %v", err)
	}
	if rec.ConsumedAt != nil {
		t.Fatalf("expired attempt mutated the record")
	}
}

func TestConsumeOTP_WrongCodeLeavesRecord(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateOTP(ctx, db, "+919812345678", "1234", time.Minute); err != nil {
		t.Fatalf("CreateOTP: %v", err)
	}

	consumed, err := ConsumeOTP(ctx, db, "+919812345678", "9999", time.Now().UTC())
	if err != nil {
		t.Fatalf("ConsumeOTP: %v", err)
	}
	if consumed {
		t.Fatalf("wrong code consumed")
	}
}

func TestConsumeOTP_LatestOfSeveralCodes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Two outstanding codes for one phone: either verifies, each only once.
	if _, err := CreateOTP(ctx, db, "+919812345678", "1111", time.Minute); err != nil {
		t.Fatalf("CreateOTP: %v", err)
	}
	if _, err := CreateOTP(ctx, db, "+919812345678", "2222", time.Minute); err != nil {
		t.Fatalf("CreateOTP: %v", err)
	}

	now := time.Now().UTC()
	if ok, _ := ConsumeOTP(ctx, db, "+919812345678", "1111", now); !ok {
		t.Fatalf("first code rejected")
	}
	if ok, _ := ConsumeOTP(ctx, db, "+919812345678", "2222", now); !ok {
		t.Fatalf("second code rejected")
	}
	if ok, _ := ConsumeOTP(ctx, db, "+919812345678", "1111", now); ok {
		t.Fatalf("first code consumed twice")
	}
}
