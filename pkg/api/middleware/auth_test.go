package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chetanya04/Copilot-Clone/pkg/auth"
)

type staticAuthenticator map[string]string

func (s staticAuthenticator) Authenticate(token string) (string, bool) {
	userID, ok := s[token]
	return userID, ok
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid token", "Bearer tok-1", http.StatusOK, "user-1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = auth.UserIDFromContext(r.Context())
			})

			h := Auth(staticAuthenticator{"tok-1": "user-1"})(next)

			req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, test.wantStatus)
			}
			if gotUserID != test.wantUserID {
				t.Errorf("userID = %q, want %q", gotUserID, test.wantUserID)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}
