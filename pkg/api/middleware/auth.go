package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/chetanya04/Copilot-Clone/pkg/api/response"
	"github.com/chetanya04/Copilot-Clone/pkg/auth"
)

type Authenticator interface {
	Authenticate(token string) (string, bool)
}

// Auth rejects requests without a known bearer token before anything else
// runs, and stores the resolved user identity in the request context.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	writer := response.JSONResponseWriter{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writer.WriteErrorResponse(w, http.StatusUnauthorized, "Missing bearer token.")
				return
			}

			userID, ok := authenticator.Authenticate(token)
			if !ok {
				slog.WarnContext(r.Context(), "Unauthorized access attempt", "path", r.URL.Path)
				writer.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(r.Context(), userID)))
		})
	}
}
