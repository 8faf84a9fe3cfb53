package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chetanya04/Copilot-Clone/pkg/auth"
	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

type stubMessageLister struct {
	messages []domain.Message
	err      error
}

func (s *stubMessageLister) GetMessages(_ context.Context, userID, conversationID string) ([]domain.Message, error) {
	return s.messages, s.err
}

func TestGetMessagesHandler(t *testing.T) {
	messages := []domain.Message{
		{ID: "m1", Role: domain.RoleUser, Content: "hello"},
		{ID: "m2", Role: domain.RoleAssistant, Content: "**bold** reply"},
	}

	newRequest := func(target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.SetPathValue("id", "c1")
		return req.WithContext(auth.ContextWithUserID(req.Context(), "user-1"))
	}

	t.Run("plain listing", func(t *testing.T) {
		h := NewGetMessages(&stubMessageLister{messages: messages})

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest("/api/chats/c1/messages"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got []domain.Message
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
			t.Errorf("unexpected messages: %+v", got)
		}
	})

	t.Run("html rendering", func(t *testing.T) {
		h := NewGetMessages(&stubMessageLister{messages: messages})

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest("/api/chats/c1/messages?format=html"))

		var got []messageView
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if got[0].ContentHTML != "" {
			t.Errorf("user messages are not rendered, got %q", got[0].ContentHTML)
		}
		if !strings.Contains(got[1].ContentHTML, "<strong>bold</strong>") {
			t.Errorf("assistant markdown not rendered, got %q", got[1].ContentHTML)
		}
	})

	t.Run("unknown conversation", func(t *testing.T) {
		h := NewGetMessages(&stubMessageLister{err: domain.ErrNotFound})

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest("/api/chats/c1/messages"))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
