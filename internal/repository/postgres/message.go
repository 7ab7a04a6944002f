package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
)

type messageRepository struct {
	BaseRepository
}

func NewMessageRepository(base BaseRepository) repository.MessageRepository {
	return &messageRepository{base}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO mensajes (id, nombre, apellido, correo, telefono, mensaje, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Nombre, msg.Apellido, msg.Correo, msg.Telefono, msg.Mensaje,
		msg.CreatedAt, msg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) List(ctx context.Context) ([]*model.Message, error) {
	query := `
		SELECT id, nombre, apellido, correo, telefono, mensaje, created_at, updated_at
		FROM mensajes
		ORDER BY created_at DESC
	`

	msgs := []*model.Message{}
	if err := r.db.SelectContext(ctx, &msgs, query); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mensajes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("mensaje", nil)
	}
	return nil
}
