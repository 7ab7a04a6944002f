package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marxcruz/hospital-api/internal/email"
	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/internal/model"
	appointmentsvc "github.com/Marxcruz/hospital-api/internal/service/appointment"
	authsvc "github.com/Marxcruz/hospital-api/internal/service/auth"
	pkgauth "github.com/Marxcruz/hospital-api/pkg/auth"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
	"github.com/Marxcruz/hospital-api/pkg/messaging"
	"github.com/Marxcruz/hospital-api/pkg/security"
)

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *memUserRepo) Create(context.Context, *model.User) error { return nil }

func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFound("usuario", nil)
}

func (r *memUserRepo) GetByCorreo(context.Context, string) (*model.User, error) {
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

func (r *memUserRepo) ListDoctorsByDepartment(_ context.Context, departamento string) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		if u.Rol == model.RoleDoctor && u.Departamento != nil && *u.Departamento == departamento {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Delete(context.Context, uuid.UUID, model.Role) error { return nil }

type memAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (r *memAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	apt.ID = uuid.New()
	r.appointments[apt.ID] = apt
	return nil
}

func (r *memAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	return r.appointments[id], nil
}

func (r *memAppointmentRepo) List(context.Context) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		out = append(out, apt)
	}
	return out, nil
}

func (r *memAppointmentRepo) ListByDoctor(context.Context, uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *memAppointmentRepo) ListByPatient(context.Context, uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *memAppointmentRepo) DistinctPatients(context.Context, uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *memAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, estado model.AppointmentStatus, observaciones *string) (*model.Appointment, error) {
	apt := r.appointments[id]
	apt.Estado = estado
	if observaciones != nil {
		apt.Observaciones = *observaciones
	}
	return apt, nil
}

func (r *memAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

type fixture struct {
	router *gin.Engine
	repo   *memAppointmentRepo
	tokens *pkgauth.TokenService
	admin  *model.User
	doctor *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	departamento := "Cardiología"
	ana := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Nombre:       "Ana",
		Apellido:     "Ruiz",
		Rol:          model.RoleDoctor,
		Departamento: &departamento,
	}
	admin := &model.User{Base: model.Base{ID: uuid.New()}, Rol: model.RoleAdministrador}
	users := &memUserRepo{users: map[uuid.UUID]*model.User{ana.ID: ana, admin.ID: admin}}

	repo := &memAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
	svc := appointmentsvc.NewService(repo, users, messaging.NewLocalBroker(), email.NopService{}, nil, zerolog.Nop())

	tokens := pkgauth.NewTokenService("test-secret", time.Hour)
	authMW := middleware.NewAuthMiddleware(authsvc.NewService(users, tokens, security.NewBcryptHasher(0)))

	require.NoError(t, middleware.RegisterValidations())

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"), authMW)

	return &fixture{router: router, repo: repo, tokens: tokens, admin: admin, doctor: ana}
}

func (f *fixture) do(t *testing.T, method, path string, payload interface{}, as *model.User) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, err := f.tokens.Generate(as)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: model.CookieForRole(as.Rol), Value: token})
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCreateAppointmentAssignsSpecialtyDoctor(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/appointments/create-appointment", map[string]string{
		"nombre":       "Carla",
		"departamento": "Cardiología",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success     bool `json:"success"`
		Appointment struct {
			Doctor model.DoctorSnapshot `json:"doctor"`
			Estado string               `json:"estado"`
		} `json:"appointment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Ana", resp.Appointment.Doctor.Nombre)
	assert.Equal(t, "Ruiz", resp.Appointment.Doctor.Apellido)
	assert.Equal(t, "Pendiente", resp.Appointment.Estado)
}

func TestListAllRequiresAdminCookie(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/appointments/get-all-appointment", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "usuario no autenticado")
}

// A doctor token planted in the admin cookie must be rejected with 403.
func TestListAllRejectsDoctorToken(t *testing.T) {
	f := newFixture(t)

	token, err := f.tokens.Generate(f.doctor)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/get-all-appointment", nil)
	req.AddCookie(&http.Cookie{Name: model.CookieAdmin, Value: token})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListAllAsAdmin(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/api/v1/appointments/create-appointment", map[string]string{}, nil)

	w := f.do(t, http.MethodGet, "/api/v1/appointments/get-all-appointment", nil, f.admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "appointments")
}

func TestUpdateStatusInvalidEstadoDoesNotMutate(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/api/v1/appointments/create-appointment", map[string]string{}, nil)

	var id uuid.UUID
	for aptID := range f.repo.appointments {
		id = aptID
	}

	w := f.do(t, http.MethodPut, "/api/v1/appointments/update-status-appointment/"+id.String(), map[string]string{
		"estado": "Invalid",
	}, f.admin)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.AppointmentPendiente, f.repo.appointments[id].Estado)
}

func TestDoctorUpdateStatus(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/api/v1/appointments/create-appointment", map[string]string{}, nil)

	var id uuid.UUID
	for aptID := range f.repo.appointments {
		id = aptID
	}

	w := f.do(t, http.MethodPut, "/api/v1/appointments/doctor-update-appointment/"+id.String(), map[string]string{
		"estado": "Confirmada",
	}, f.doctor)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.AppointmentConfirmada, f.repo.appointments[id].Estado)
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/api/v1/appointments/create-appointment", map[string]string{}, nil)

	var id uuid.UUID
	for aptID := range f.repo.appointments {
		id = aptID
	}

	w := f.do(t, http.MethodDelete, "/api/v1/appointments/delete-appointment/"+id.String(), nil, f.admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.repo.appointments)

	w = f.do(t, http.MethodDelete, "/api/v1/appointments/delete-appointment/no-es-uuid", nil, f.admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
