package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marxcruz/hospital-api/internal/model"
	pkgauth "github.com/Marxcruz/hospital-api/pkg/auth"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
	"github.com/Marxcruz/hospital-api/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Create(context.Context, *model.User) error { return nil }

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFound("usuario", nil)
}

func (r *fakeUserRepo) GetByCorreo(_ context.Context, correo string) (*model.User, error) {
	if u, ok := r.users[correo]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFound("usuario", nil)
}

func (r *fakeUserRepo) ListByRole(context.Context, model.Role) ([]*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) ListDoctorsByDepartment(context.Context, string) ([]*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Delete(context.Context, uuid.UUID, model.Role) error { return nil }

func newFixture(t *testing.T) (*Service, *model.User) {
	t.Helper()

	hasher := security.NewBcryptHasher(0)
	hash, err := hasher.Hash("contrasena123")
	require.NoError(t, err)

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Correo:       "ana@hospital.local",
		PasswordHash: hash,
		Rol:          model.RoleDoctor,
	}

	repo := &fakeUserRepo{users: map[string]*model.User{user.Correo: user}}
	tokens := pkgauth.NewTokenService("test-secret", time.Hour)

	return NewService(repo, tokens, hasher), user
}

func TestLoginSuccess(t *testing.T) {
	svc, user := newFixture(t)

	got, token, err := svc.Login(context.Background(), &model.LoginRequest{
		Correo:     user.Correo,
		Contrasena: "contrasena123",
		Rol:        model.RoleDoctor,
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, user := newFixture(t)

	_, _, err := svc.Login(context.Background(), &model.LoginRequest{
		Correo:     user.Correo,
		Contrasena: "wrong-password",
		Rol:        model.RoleDoctor,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newFixture(t)

	_, _, err := svc.Login(context.Background(), &model.LoginRequest{
		Correo:     "nadie@hospital.local",
		Contrasena: "contrasena123",
		Rol:        model.RolePaciente,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

// A correct password with the wrong claimed role must not issue a token.
func TestLoginRoleMismatch(t *testing.T) {
	svc, user := newFixture(t)

	_, _, err := svc.Login(context.Background(), &model.LoginRequest{
		Correo:     user.Correo,
		Contrasena: "contrasena123",
		Rol:        model.RoleAdministrador,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestVerifyRoundTrip(t *testing.T) {
	svc, user := newFixture(t)

	_, token, err := svc.Login(context.Background(), &model.LoginRequest{
		Correo:     user.Correo,
		Contrasena: "contrasena123",
		Rol:        model.RoleDoctor,
	})
	require.NoError(t, err)

	got, err := svc.Verify(context.Background(), token, model.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestVerifyRejectsWrongExpectedRole(t *testing.T) {
	svc, user := newFixture(t)

	_, token, err := svc.Login(context.Background(), &model.LoginRequest{
		Correo:     user.Correo,
		Contrasena: "contrasena123",
		Rol:        model.RoleDoctor,
	})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token, model.RoleAdministrador)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Verify(context.Background(), "garbage", model.RoleDoctor)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}
