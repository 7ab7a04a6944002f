package message

import (
	"context"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
)

type Service struct {
	repo repository.MessageRepository
}

func NewService(repo repository.MessageRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateMessageRequest) (*model.Message, error) {
	msg := &model.Message{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Correo:   req.Correo,
		Telefono: req.Telefono,
		Mensaje:  req.Mensaje,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Message, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
