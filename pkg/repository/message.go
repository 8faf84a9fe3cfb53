package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *messageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Append(ctx context.Context, conversationID string, role domain.Role, content, imageURL string) (*domain.Message, error) {
	const query = `
		insert into messages (id, conversation_id, role, content, image_url)
		values ($1, $2, $3, $4, nullif($5, ''))
		returning created_at
	`

	m := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		ImageURL:       imageURL,
	}

	if err := r.db.QueryRowContext(ctx, query, m.ID, m.ConversationID, m.Role, m.Content, m.ImageURL).
		Scan(&m.CreatedAt); err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	return &m, nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	const query = `
		select id, conversation_id, role, content, coalesce(image_url, ''), created_at
		from messages
		where conversation_id = $1
		order by created_at
	`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListRecent returns at most limit latest messages, reordered oldest first so
// they can feed a chat history directly.
func (r *messageRepository) ListRecent(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	const query = `
		select id, conversation_id, role, content, coalesce(image_url, ''), created_at
		from (
			select id, conversation_id, role, content, image_url, created_at
			from messages
			where conversation_id = $1
			order by created_at desc
			limit $2
		) recent
		order by created_at
	`

	rows, err := r.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching recent messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]domain.Message, error) {
	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.ImageURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	return messages, nil
}
