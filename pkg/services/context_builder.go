package services

import (
	"context"
	"fmt"

	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

// historyLimit bounds the conversational context handed to the text provider.
const historyLimit = 10

type contextBuilder struct {
	messageRepo MessageRepository
	limit       int
}

func newContextBuilder(messageRepo MessageRepository, limit int) *contextBuilder {
	return &contextBuilder{
		messageRepo: messageRepo,
		limit:       limit,
	}
}

// Build returns at most limit most recent messages of the conversation,
// oldest first. Roles stay provider-neutral here; remapping to a provider
// vocabulary happens inside the provider clients.
func (b *contextBuilder) Build(ctx context.Context, conversationID string) ([]domain.Message, error) {
	messages, err := b.messageRepo.ListRecent(ctx, conversationID, b.limit)
	if err != nil {
		return nil, fmt.Errorf("fetching recent messages: %w", err)
	}

	return messages, nil
}
