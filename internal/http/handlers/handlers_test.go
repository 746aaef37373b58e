package handlers

import (
	"context"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/repo"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

// Function-field stubs so each test overrides only what it exercises.

type stubOTP struct {
	issue  func(ctx context.Context, rawPhone string) (string, error)
	verify func(ctx context.Context, rawPhone, code string) error
}

func (s stubOTP) Issue(ctx context.Context, rawPhone string) (string, error) {
	if s.issue != nil {
		return s.issue(ctx, rawPhone)
	}
	return "0000", nil
}

func (s stubOTP) Verify(ctx context.Context, rawPhone, code string) error {
	if s.verify != nil {
		return s.verify(ctx, rawPhone, code)
	}
	return nil
}

type stubRegistrar struct {
	provider func(ctx context.Context, rawPhone, name string, categories, areas []string) (*domain.Provider, error)
	receiver func(ctx context.Context, rawPhone, name, area string) (*domain.Receiver, error)
}

func (s stubRegistrar) RegisterProvider(ctx context.Context, rawPhone, name string, categories, areas []string) (*domain.Provider, error) {
	if s.provider != nil {
		return s.provider(ctx, rawPhone, name, categories, areas)
	}
	return &domain.Provider{Phone: rawPhone}, nil
}

func (s stubRegistrar) RegisterReceiver(ctx context.Context, rawPhone, name, area string) (*domain.Receiver, error) {
	if s.receiver != nil {
		return s.receiver(ctx, rawPhone, name, area)
	}
	return &domain.Receiver{Phone: rawPhone}, nil
}

type stubTasks struct {
	create          func(ctx context.Context, rawPhone, category, area, details, neededBy, idemKey string) (*domain.Task, bool, error)
	get             func(ctx context.Context, id string) (*domain.Task, error)
	withResponses   func(ctx context.Context) ([]repo.TaskWithResponses, error)
	withoutResponse func(ctx context.Context) ([]domain.Task, error)
}

func (s stubTasks) Create(ctx context.Context, rawPhone, category, area, details, neededBy, idemKey string) (*domain.Task, bool, error) {
	if s.create != nil {
		return s.create(ctx, rawPhone, category, area, details, neededBy, idemKey)
	}
	return &domain.Task{ID: "t-1"}, false, nil
}

func (s stubTasks) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Task{ID: id}, nil
}

func (s stubTasks) ListWithResponses(ctx context.Context) ([]repo.TaskWithResponses, error) {
	if s.withResponses != nil {
		return s.withResponses(ctx)
	}
	return nil, nil
}

func (s stubTasks) ListWithoutResponse(ctx context.Context) ([]domain.Task, error) {
	if s.withoutResponse != nil {
		return s.withoutResponse(ctx)
	}
	return nil, nil
}

type stubMatch struct {
	find func(ctx context.Context, category, area string) ([]services.ProviderMatch, error)
}

func (s stubMatch) Find(ctx context.Context, category, area string) ([]services.ProviderMatch, error) {
	if s.find != nil {
		return s.find(ctx, category, area)
	}
	return []services.ProviderMatch{}, nil
}

type stubNotify struct {
	notify func(ctx context.Context, task *domain.Task, candidates []services.ProviderMatch) (int, error)
}

func (s stubNotify) Notify(ctx context.Context, task *domain.Task, candidates []services.ProviderMatch) (int, error) {
	if s.notify != nil {
		return s.notify(ctx, task, candidates)
	}
	return len(candidates), nil
}

type stubChats struct {
	open  func(ctx context.Context, taskID, rawProviderPhone string) (*domain.ChatRoom, error)
	get   func(ctx context.Context, roomID string) (*domain.ChatRoom, error)
	close func(ctx context.Context, roomID string) error
	list  func(ctx context.Context) ([]services.RoomView, error)
}

func (s stubChats) Open(ctx context.Context, taskID, rawProviderPhone string) (*domain.ChatRoom, error) {
	if s.open != nil {
		return s.open(ctx, taskID, rawProviderPhone)
	}
	return &domain.ChatRoom{ID: taskID + "-" + rawProviderPhone}, nil
}

func (s stubChats) Get(ctx context.Context, roomID string) (*domain.ChatRoom, error) {
	if s.get != nil {
		return s.get(ctx, roomID)
	}
	return &domain.ChatRoom{ID: roomID}, nil
}

func (s stubChats) Close(ctx context.Context, roomID string) error {
	if s.close != nil {
		return s.close(ctx, roomID)
	}
	return nil
}

func (s stubChats) List(ctx context.Context) ([]services.RoomView, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

type stubMessages struct {
	append func(ctx context.Context, roomID, sender, body string) (*domain.Message, error)
	list   func(ctx context.Context, roomID string) (*services.Transcript, error)
}

func (s stubMessages) Append(ctx context.Context, roomID, sender, body string) (*domain.Message, error) {
	if s.append != nil {
		return s.append(ctx, roomID, sender, body)
	}
	return &domain.Message{RoomID: roomID, Sender: sender, Body: body}, nil
}

func (s stubMessages) List(ctx context.Context, roomID string) (*services.Transcript, error) {
	if s.list != nil {
		return s.list(ctx, roomID)
	}
	return &services.Transcript{Room: &domain.ChatRoom{ID: roomID}}, nil
}

type stubReviews struct {
	submit func(ctx context.Context, roomID, rawReviewerPhone string, rating int, text string) (*domain.Review, error)
	get    func(ctx context.Context, roomID, rawReviewerPhone string) (*domain.Review, error)
}

func (s stubReviews) Submit(ctx context.Context, roomID, rawReviewerPhone string, rating int, text string) (*domain.Review, error) {
	if s.submit != nil {
		return s.submit(ctx, roomID, rawReviewerPhone, rating, text)
	}
	return &domain.Review{RoomID: roomID}, nil
}

func (s stubReviews) Get(ctx context.Context, roomID, rawReviewerPhone string) (*domain.Review, error) {
	if s.get != nil {
		return s.get(ctx, roomID, rawReviewerPhone)
	}
	return nil, nil
}

type stubStats struct {
	stats func(ctx context.Context) (*repo.AdminStats, error)
}

func (s stubStats) Stats(ctx context.Context) (*repo.AdminStats, error) {
	if s.stats != nil {
		return s.stats(ctx)
	}
	return &repo.AdminStats{}, nil
}

// newTestHandlers builds a Handlers with all-default stubs; tests pass
// overrides for the collaborators they exercise.
type stubs struct {
	otp      stubOTP
	register stubRegistrar
	tasks    stubTasks
	match    stubMatch
	notify   stubNotify
	chats    stubChats
	messages stubMessages
	reviews  stubReviews
	stats    stubStats
}

func newTestHandlers(s stubs) *Handlers {
	return New(s.otp, s.register, s.tasks, s.match, s.notify, s.chats, s.messages, s.reviews, s.stats)
}
