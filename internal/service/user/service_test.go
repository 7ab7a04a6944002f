package user

import (
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/storage"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
	"github.com/Marxcruz/hospital-api/pkg/security"
)

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = uuid.New()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFound("usuario", nil)
}

func (r *memUserRepo) GetByCorreo(_ context.Context, correo string) (*model.User, error) {
	for _, u := range r.users {
		if u.Correo == correo {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFound("usuario", nil)
}

func (r *memUserRepo) ListByRole(_ context.Context, rol model.Role) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		if u.Rol == rol {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListDoctorsByDepartment(context.Context, string) ([]*model.User, error) {
	return nil, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID, rol model.Role) error {
	u, ok := r.users[id]
	if !ok || u.Rol != rol {
		return apperrors.NewNotFound("usuario", nil)
	}
	delete(r.users, id)
	return nil
}

type stubImageStore struct{}

func (stubImageStore) Save(context.Context, *multipart.FileHeader) (*storage.StoredImage, error) {
	return &storage.StoredImage{PublicID: "stub", URL: "/uploads/stub.png"}, nil
}

func registerReq(correo string) *model.RegisterUserRequest {
	return &model.RegisterUserRequest{
		Nombre:          "Carla",
		Apellido:        "Vega",
		Correo:          correo,
		Telefono:        "987654321",
		Identificacion:  "12345678",
		FechaNacimiento: "1995-04-12",
		Genero:          model.GenderFemenino,
		Contrasena:      "contrasena123",
	}
}

func newTestService() (*Service, *memUserRepo) {
	repo := newMemUserRepo()
	return NewService(repo, security.NewBcryptHasher(0), stubImageStore{}), repo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Register(context.Background(), registerReq("carla@hospital.local"), model.RolePaciente)
	require.NoError(t, err)

	assert.Equal(t, model.RolePaciente, user.Rol)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "contrasena123", user.PasswordHash)
	assert.Empty(t, user.Password)
}

func TestRegisterRejectsDuplicateCorreo(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerReq("carla@hospital.local"), model.RolePaciente)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq("carla@hospital.local"), model.RolePaciente)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestCreateDoctorSetsDepartmentAndRole(t *testing.T) {
	svc, _ := newTestService()

	doctor, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		Nombre:          "Ana",
		Apellido:        "Ruiz",
		Correo:          "ana@hospital.local",
		Telefono:        "987654321",
		Identificacion:  "87654321",
		FechaNacimiento: "1985-02-20",
		Genero:          model.GenderFemenino,
		Contrasena:      "contrasena123",
		Departamento:    "Cardiología",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.RoleDoctor, doctor.Rol)
	require.NotNil(t, doctor.Departamento)
	assert.Equal(t, "Cardiología", *doctor.Departamento)
	assert.Nil(t, doctor.ImagenURL)
}

func TestGetPatientRejectsOtherRoles(t *testing.T) {
	svc, repo := newTestService()

	admin := &model.User{Correo: "admin@hospital.local", Rol: model.RoleAdministrador}
	require.NoError(t, repo.Create(context.Background(), admin))

	_, err := svc.GetPatient(context.Background(), admin.ID)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestDeleteDoctorRequiresDoctorRole(t *testing.T) {
	svc, repo := newTestService()

	patient, err := svc.Register(context.Background(), registerReq("carla@hospital.local"), model.RolePaciente)
	require.NoError(t, err)

	// Deleting a patient through the doctor path must not succeed.
	err = svc.DeleteDoctor(context.Background(), patient.ID)
	require.Error(t, err)
	assert.Contains(t, repo.users, patient.ID)

	require.NoError(t, svc.DeletePatient(context.Background(), patient.ID))
	assert.NotContains(t, repo.users, patient.ID)
}
