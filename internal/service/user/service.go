package user

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	"github.com/Marxcruz/hospital-api/internal/storage"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
	"github.com/Marxcruz/hospital-api/pkg/security"
)

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	images storage.ImageStore
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, images storage.ImageStore) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		images: images,
	}
}

// Register creates a patient or admin account from a strict request.
func (s *Service) Register(ctx context.Context, req *model.RegisterUserRequest, rol model.Role) (*model.User, error) {
	if existing, _ := s.repo.GetByCorreo(ctx, req.Correo); existing != nil {
		return nil, apperrors.NewConflict("el correo ya está registrado", nil)
	}

	hash, err := s.hasher.Hash(req.Contrasena)
	if err != nil {
		return nil, apperrors.NewBadRequest("contraseña inválida", err)
	}

	user := &model.User{
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		Correo:          req.Correo,
		Telefono:        req.Telefono,
		Identificacion:  req.Identificacion,
		FechaNacimiento: req.FechaNacimiento,
		Genero:          req.Genero,
		PasswordHash:    hash,
		Rol:             rol,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateDoctor creates a doctor account with a specialty and profile image.
func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest, image *multipart.FileHeader) (*model.User, error) {
	if existing, _ := s.repo.GetByCorreo(ctx, req.Correo); existing != nil {
		return nil, apperrors.NewConflict("el correo ya está registrado", nil)
	}

	hash, err := s.hasher.Hash(req.Contrasena)
	if err != nil {
		return nil, apperrors.NewBadRequest("contraseña inválida", err)
	}

	user := &model.User{
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		Correo:          req.Correo,
		Telefono:        req.Telefono,
		Identificacion:  req.Identificacion,
		FechaNacimiento: req.FechaNacimiento,
		Genero:          req.Genero,
		PasswordHash:    hash,
		Rol:             model.RoleDoctor,
		Departamento:    &req.Departamento,
	}

	if image != nil {
		stored, err := s.images.Save(ctx, image)
		if err != nil {
			return nil, apperrors.NewBadRequest("no se pudo guardar la imagen", err)
		}
		user.ImagenPublicID = &stored.PublicID
		user.ImagenURL = &stored.URL
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

// GetPatient returns a user only if it is a patient; doctors use this to
// look up patient details without reaching other account types.
func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Rol != model.RolePaciente {
		return nil, apperrors.NewNotFound("paciente", nil)
	}
	return user, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListByRole(ctx, model.RoleDoctor)
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListByRole(ctx, model.RolePaciente)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, model.RoleDoctor)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, model.RolePaciente)
}
