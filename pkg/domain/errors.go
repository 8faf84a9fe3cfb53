package domain

import "errors"

// ErrNotFound covers both a missing conversation and one owned by another
// user, so callers can never probe for the existence of foreign conversations.
var ErrNotFound = errors.New("conversation not found")

var ErrUnauthenticated = errors.New("unauthenticated")
