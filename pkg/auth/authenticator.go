package auth

import (
	"context"
	"log/slog"
	"strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

type authenticator struct {
	tokens map[string]string
}

// NewAuthenticator builds a bearer-token authenticator from "token:userID"
// pairs. Session issuance lives outside this service; the tokens are the
// pre-shared identities it accepts.
func NewAuthenticator(tokenPairs []string) *authenticator {
	tokens := make(map[string]string)
	for _, pair := range tokenPairs {
		token, userID, ok := strings.Cut(pair, ":")
		if !ok || token == "" || userID == "" {
			slog.Warn("Skipping malformed auth token pair", "pair", pair)
			continue
		}
		tokens[token] = userID
	}

	slog.Info("Authorized tokens configured", "count", len(tokens))

	return &authenticator{tokens: tokens}
}

func (a *authenticator) Authenticate(token string) (string, bool) {
	userID, ok := a.tokens[token]
	return userID, ok
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
