package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaunkarega/taskmatch-backend/internal/domain"
	"github.com/kaunkarega/taskmatch-backend/internal/phone"
	"github.com/kaunkarega/taskmatch-backend/internal/services"
)

func newChatRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat/open", h.OpenChat)
	r.GET("/chat/open", h.OpenChatByQuery)
	return r
}

func TestOpenChat_JSONBody(t *testing.T) {
	expires := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	h := newTestHandlers(stubs{chats: stubChats{
		open: func(_ context.Context, taskID, provider string) (*domain.ChatRoom, error) {
			if taskID != testTaskID || provider != "9000000001" {
				t.Fatalf("args not passed through: %q %q", taskID, provider)
			}
			return &domain.ChatRoom{ID: taskID + "-+919000000001", ExpiresAt: expires}, nil
		},
	}})
	r := newChatRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/open",
		bytes.NewBufferString(`{"taskId":"`+testTaskID+`","provider":"9000000001"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp OpenChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !resp.OK || resp.RoomID != testTaskID+"-+919000000001" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ExpiresAt != "2026-08-28T12:00:00Z" {
		t.Fatalf("unexpected expiry format: %q", resp.ExpiresAt)
	}
}

func TestOpenChat_QueryVariant(t *testing.T) {
	h := newTestHandlers(stubs{})
	r := newChatRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/open?taskId="+testTaskID+"&provider=9000000001", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOpenChat_Validation(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"missing_json_fields", http.MethodPost, "/chat/open", `{"taskId":"` + testTaskID + `"}`},
		{"missing_query_params", http.MethodGet, "/chat/open?taskId=" + testTaskID, ""},
		{"non_uuid_task", http.MethodPost, "/chat/open", `{"taskId":"abc","provider":"9000000001"}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers(stubs{chats: stubChats{
				open: func(context.Context, string, string) (*domain.ChatRoom, error) {
					t.Fatalf("service must not run on validation error")
					return nil, nil
				},
			}})
			r := newChatRouter(h)

			var body *bytes.Buffer
			if tc.body != "" {
				body = bytes.NewBufferString(tc.body)
			} else {
				body = bytes.NewBuffer(nil)
			}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.target, body)
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestOpenChat_ErrorMappings(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid_provider_phone", phone.ErrInvalidPhone, http.StatusBadRequest, ErrCodeInvalidPhone},
		{"task_not_found", services.ErrTaskNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers(stubs{chats: stubChats{
				open: func(context.Context, string, string) (*domain.ChatRoom, error) {
					return nil, tc.err
				},
			}})
			r := newChatRouter(h)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/chat/open",
				bytes.NewBufferString(`{"taskId":"`+testTaskID+`","provider":"9000000001"}`))
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			var er ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
				t.Fatalf("json: %v", err)
			}
			if er.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, er.Code)
			}
		})
	}
}
