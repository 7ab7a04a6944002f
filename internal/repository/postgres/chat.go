package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
)

type chatRepository struct {
	BaseRepository
}

func NewChatRepository(base BaseRepository) repository.ChatRepository {
	return &chatRepository{base}
}

func (r *chatRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	query := `
		INSERT INTO chat_mensajes (id, username, message, room, is_ai, is_error, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	msg.ID = uuid.New()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Username, msg.Message, msg.Room, msg.IsAI, msg.IsError, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// ListByRoom returns the most recent messages of a room in chronological
// order, capped at limit.
func (r *chatRepository) ListByRoom(ctx context.Context, room string, limit int) ([]*model.ChatMessage, error) {
	query := `
		SELECT id, username, message, room, is_ai, is_error, timestamp
		FROM (
			SELECT id, username, message, room, is_ai, is_error, timestamp
			FROM chat_mensajes
			WHERE room = $1
			ORDER BY timestamp DESC
			LIMIT $2
		) recent
		ORDER BY timestamp ASC
	`

	msgs := []*model.ChatMessage{}
	if err := r.db.SelectContext(ctx, &msgs, query, room, limit); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return msgs, nil
}

func (r *chatRepository) List(ctx context.Context) ([]*model.ChatMessage, error) {
	query := `
		SELECT id, username, message, room, is_ai, is_error, timestamp
		FROM chat_mensajes
		ORDER BY timestamp ASC
	`

	msgs := []*model.ChatMessage{}
	if err := r.db.SelectContext(ctx, &msgs, query); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return msgs, nil
}

func (r *chatRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_mensajes`); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}
