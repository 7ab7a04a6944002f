package auth

import (
	"context"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	"github.com/Marxcruz/hospital-api/pkg/auth"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
	"github.com/Marxcruz/hospital-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, tokens *auth.TokenService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// Login verifies credentials and the claimed role, then issues a token for
// the role's cookie namespace. A valid password with the wrong role is
// rejected the same way as a bad password would be on the role check.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	user, err := s.userRepo.GetByCorreo(ctx, req.Correo)
	if err != nil {
		return nil, "", apperrors.NewUnauthorized("credenciales inválidas", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Contrasena); err != nil {
		return nil, "", apperrors.NewUnauthorized("credenciales inválidas", err)
	}

	if user.Rol != req.Rol {
		return nil, "", apperrors.NewForbidden("el rol solicitado no corresponde al usuario", nil)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", apperrors.NewInternal(err)
	}

	return user, token, nil
}

// Verify decodes a role cookie and loads its user, rejecting tokens whose
// stored role no longer matches the expected one. This guards against a
// stale or forged token of the wrong kind reusing a valid secret.
func (s *Service) Verify(ctx context.Context, token string, expected model.Role) (*model.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("token inválido o expirado", err)
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("usuario no encontrado", err)
	}

	if user.Rol != expected {
		return nil, apperrors.NewForbidden("no autorizado para este recurso", nil)
	}

	return user, nil
}
