// Handler wiring.
//
// This file declares the service contracts the HTTP layer consumes and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// validate and bind inputs, delegate to application services, and translate
// sentinel errors into HTTP responses. Implementations must be safe for
// concurrent use and honor the provided context.
package handlers

import (
	"context"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// OTPAuth issues and verifies one-time passwords.
type OTPAuth interface {
	Issue(ctx context.Context, rawPhone string) (string, error)
	Verify(ctx context.Context, rawPhone, code string) error
}

// Registrar creates provider and receiver directory entries.
type Registrar interface {
	RegisterProvider(ctx context.Context, rawPhone, name string, categories, areas []string) (*domain.Provider, error)
	RegisterReceiver(ctx context.Context, rawPhone, name, area string) (*domain.Receiver, error)
}

// TaskRegistry creates and retrieves task records.
type TaskRegistry interface {
	Create(ctx context.Context, rawPhone, category, area, details, neededBy, idemKey string) (*domain.Task, bool, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListWithResponses(ctx context.Context) ([]repo.TaskWithResponses, error)
	ListWithoutResponse(ctx context.Context) ([]domain.Task, error)
}

// ProviderMatcher answers category+area lookups over the directory.
type ProviderMatcher interface {
	Find(ctx context.Context, category, area string) ([]services.ProviderMatch, error)
}

// Notifier fans task notifications out to providers.
type Notifier interface {
	Notify(ctx context.Context, task *domain.Task, candidates []services.ProviderMatch) (int, error)
}

// ChatRooms manages the room lifecycle.
type ChatRooms interface {
	Open(ctx context.Context, taskID, rawProviderPhone string) (*domain.ChatRoom, error)
	Get(ctx context.Context, roomID string) (*domain.ChatRoom, error)
	Close(ctx context.Context, roomID string) error
	List(ctx context.Context) ([]services.RoomView, error)
}

// MessageLog appends to and reads room transcripts.
type MessageLog interface {
	Append(ctx context.Context, roomID, sender, body string) (*domain.Message, error)
	List(ctx context.Context, roomID string) (*services.Transcript, error)
}

// ReviewGate accepts and reads post-chat reviews.
type ReviewGate interface {
	Submit(ctx context.Context, roomID, rawReviewerPhone string, rating int, text string) (*domain.Review, error)
	Get(ctx context.Context, roomID, rawReviewerPhone string) (*domain.Review, error)
}

// StatsReader produces the admin aggregate counters.
type StatsReader interface {
	Stats(ctx context.Context) (*repo.AdminStats, error)
}

// Handlers groups the HTTP endpoints for the public API and admin surface.
type Handlers struct {
	otp      OTPAuth
	register Registrar
	tasks    TaskRegistry
	match    ProviderMatcher
	notify   Notifier
	chats    ChatRooms
	messages MessageLog
	reviews  ReviewGate
	stats    StatsReader
}

// New constructs a Handlers instance bound to the given services.
func New(otp OTPAuth, register Registrar, tasks TaskRegistry, match ProviderMatcher, notify Notifier, chats ChatRooms, messages MessageLog, reviews ReviewGate, stats StatsReader) *Handlers {
	return &Handlers{
		otp:      otp,
		register: register,
		tasks:    tasks,
		match:    match,
		notify:   notify,
		chats:    chats,
		messages: messages,
		reviews:  reviews,
		stats:    stats,
	}
}
