package chat

import (
	"context"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
)

// historyLimit caps the replay sent to clients joining a room.
const historyLimit = 100

type Service struct {
	repo repository.ChatRepository
}

func NewService(repo repository.ChatRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Append(ctx context.Context, req *model.CreateChatMessageRequest) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{
		Username: req.Username,
		Message:  req.Message,
		Room:     req.Room,
		IsAI:     req.IsAI,
		IsError:  req.IsError,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) History(ctx context.Context, room string) ([]*model.ChatMessage, error) {
	return s.repo.ListByRoom(ctx, room, historyLimit)
}

func (s *Service) All(ctx context.Context) ([]*model.ChatMessage, error) {
	return s.repo.List(ctx)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
