package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

func newMessageRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/rooms/:id/messages", h.ListRoomMessages)
	r.POST("/rooms/:id/messages", h.PostRoomMessage)
	return r
}

func TestListRoomMessages_TranscriptShape(t *testing.T) {
	h := newTestHandlers(stubs{messages: stubMessages{
		list: func(_ context.Context, roomID string) (*services.Transcript, error) {
			return &services.Transcript{
				Messages: []domain.Message{
					{RoomID: roomID, Sender: domain.SenderReceiver, Body: "hello"},
					{RoomID: roomID, Sender: domain.SenderProvider, Body: "hi"},
				},
				Room:    &domain.ChatRoom{ID: roomID},
				Expired: true,
			}, nil
		},
	}})
	r := newMessageRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rooms/room-1/messages", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp TranscriptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !resp.OK || !resp.Expired {
		t.Fatalf("unexpected response: %+v", resp)
	}
	msgs, okCast := resp.Messages.([]any)
	if !okCast || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", resp.Messages)
	}
}

func TestListRoomMessages_NotFound(t *testing.T) {
	h := newTestHandlers(stubs{messages: stubMessages{
		list: func(context.Context, string) (*services.Transcript, error) {
			return nil, services.ErrChatNotFound
		},
	}})
	r := newMessageRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rooms/missing/messages", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPostRoomMessage_Success(t *testing.T) {
	h := newTestHandlers(stubs{messages: stubMessages{
		append: func(_ context.Context, roomID, sender, body string) (*domain.Message, error) {
			if roomID != "room-1" || sender != domain.SenderReceiver || body != "hello" {
				t.Fatalf("args not passed through: %q %q %q", roomID, sender, body)
			}
			return &domain.Message{RoomID: roomID, Sender: sender, Body: body}, nil
		},
	}})
	r := newMessageRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rooms/room-1/messages",
		bytes.NewBufferString(`{"sender":"receiver","message":"hello"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPostRoomMessage_ExpiredFlagBody(t *testing.T) {
	h := newTestHandlers(stubs{messages: stubMessages{
		append: func(context.Context, string, string, string) (*domain.Message, error) {
			return nil, services.ErrChatExpired
		},
	}})
	r := newMessageRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rooms/room-1/messages",
		bytes.NewBufferString(`{"sender":"receiver","message":"late"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	// Not an error envelope: the flag body tells clients to go read-only.
	if body["ok"] != false || body["expired"] != true {
		t.Fatalf("expected {ok:false, expired:true}, got %v", body)
	}
	if _, hasCode := body["code"]; hasCode {
		t.Fatalf("expired rejection must not use the error envelope: %v", body)
	}
}

func TestPostRoomMessage_ErrorMappings(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"room_missing", services.ErrChatNotFound, http.StatusNotFound},
		{"room_closed", services.ErrChatClosed, http.StatusBadRequest},
		{"bad_sender", services.ErrInvalidSender, http.StatusBadRequest},
		{"empty_after_trim", services.ErrEmptyBody, http.StatusBadRequest},
		{"too_long", services.ErrBodyTooLong, http.StatusBadRequest},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers(stubs{messages: stubMessages{
				append: func(context.Context, string, string, string) (*domain.Message, error) {
					return nil, tc.err
				},
			}})
			r := newMessageRouter(h)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/rooms/room-1/messages",
				bytes.NewBufferString(`{"sender":"receiver","message":"x"}`))
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}

func TestPostRoomMessage_BindingError(t *testing.T) {
	h := newTestHandlers(stubs{messages: stubMessages{
		append: func(context.Context, string, string, string) (*domain.Message, error) {
			t.Fatalf("service must not run on binding error")
			return nil, nil
		},
	}})
	r := newMessageRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rooms/room-1/messages",
		bytes.NewBufferString(`{"sender":"receiver"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
