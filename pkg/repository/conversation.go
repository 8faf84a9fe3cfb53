package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

type conversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) *conversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, userID, title string) (*domain.Conversation, error) {
	const query = `
		insert into conversations (id, user_id, title)
		values ($1, $2, $3)
		returning created_at, updated_at
	`

	c := domain.Conversation{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
	}

	if err := r.db.QueryRowContext(ctx, query, c.ID, c.UserID, c.Title).
		Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("inserting conversation: %w", err)
	}

	return &c, nil
}

func (r *conversationRepository) GetOwner(ctx context.Context, id string) (string, error) {
	const query = `select user_id from conversations where id = $1`

	var ownerID string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("fetching conversation owner: %w", err)
	}

	return ownerID, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	const query = `
		select id, user_id, title, created_at, updated_at
		from conversations
		where user_id = $1
		order by updated_at desc
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching conversations: %w", err)
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation row: %w", err)
		}
		conversations = append(conversations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversation rows: %w", err)
	}

	return conversations, nil
}

func (r *conversationRepository) TouchActivity(ctx context.Context, id string) error {
	const query = `update conversations set updated_at = now() where id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("touching conversation activity: %w", err)
	}

	return nil
}

// Delete is scoped by both id and owner in a single statement, so a foreign
// caller gets ErrNotFound and the row stays untouched. Messages go with the
// conversation via on delete cascade.
func (r *conversationRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `delete from conversations where id = $1 and user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
