package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is an append-only chat line, persisted so late joiners can
// replay a room's history.
type ChatMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Message   string    `json:"message" db:"message"`
	Room      string    `json:"room" db:"room"`
	IsAI      bool      `json:"isAI" db:"is_ai"`
	IsError   bool      `json:"isError" db:"is_error"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

type CreateChatMessageRequest struct {
	Username string `json:"username" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Room     string `json:"room" binding:"required"`
	IsAI     bool   `json:"isAI"`
	IsError  bool   `json:"isError"`
}
