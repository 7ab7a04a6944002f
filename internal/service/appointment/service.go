package appointment

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/Marxcruz/hospital-api/internal/email"
	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
	"github.com/Marxcruz/hospital-api/pkg/messaging"
	"github.com/Marxcruz/hospital-api/pkg/metrics"
)

// StatusChannel is the broker channel status events are published on.
const StatusChannel = "appointments.status"

// Defaults substituted for missing patient fields. The booking endpoint is
// deliberately permissive: incomplete submissions are normalized, not
// rejected, even though registration enforces strict formats.
const (
	defaultNombre          = "Paciente"
	defaultApellido        = "Anonimo"
	defaultCorreo          = "paciente@hospital.local"
	defaultTelefono        = "1234567890"
	defaultIdentificacion  = "00000000"
	defaultFechaNacimiento = "1990-01-01"
	defaultGenero          = model.GenderMasculino
	defaultDireccion       = "Sin dirección"
	defaultMotivo          = "Consulta general"

	// Snapshot label when no doctor exists to assign.
	unassignedLabel = "No Asignado"

	doctorCacheTTL = time.Minute
)

type Service struct {
	repo     repository.AppointmentRepository
	userRepo repository.UserRepository
	broker   messaging.Broker
	emailSvc email.Service
	doctors  *gocache.Cache
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	randIntn func(n int) int
}

// NewService wires the booking flow. metrics may be nil in tests.
func NewService(
	repo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	broker messaging.Broker,
	emailSvc email.Service,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		broker:   broker,
		emailSvc: emailSvc,
		doctors:  gocache.New(doctorCacheTTL, 5*time.Minute),
		metrics:  m,
		logger:   logger,
		randIntn: rand.Intn,
	}
}

// Create books an appointment. The doctor is never taken from the client:
// it is chosen here by specialty, falling back to any doctor, and finally
// to a placeholder id so the booking always succeeds.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	apt := &model.Appointment{
		Nombre:          valueOr(req.Nombre, defaultNombre),
		Apellido:        valueOr(req.Apellido, defaultApellido),
		Correo:          valueOr(req.Correo, defaultCorreo),
		Telefono:        valueOr(req.Telefono, defaultTelefono),
		Identificacion:  valueOr(req.Identificacion, defaultIdentificacion),
		FechaNacimiento: valueOr(req.FechaNacimiento, defaultFechaNacimiento),
		Genero:          valueOr(req.Genero, defaultGenero),
		FechaCita:       valueOr(req.FechaCita, time.Now().AddDate(0, 0, 7).Format("2006-01-02")),
		HoraCita:        valueOr(req.HoraCita, "10:00"),
		Departamento:    valueOr(req.Departamento, "Medicina General"),
		HaVisitado:      req.HaVisitado,
		Direccion:       valueOr(req.Direccion, defaultDireccion),
		Motivo:          valueOr(req.Motivo, defaultMotivo),
		Estado:          model.AppointmentPendiente,
	}

	if req.IDPaciente != "" {
		if pacienteID, err := uuid.Parse(req.IDPaciente); err == nil {
			apt.PacienteID = &pacienteID
		}
	}

	doctor := s.assignDoctor(ctx, apt.Departamento)
	apt.DoctorID = doctor.id
	apt.Doctor = doctor.snapshot

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsCreated.Inc()
	}

	// Confirmation mail is best-effort; a failed send never fails a booking.
	if err := s.emailSvc.SendAppointmentConfirmation(ctx, apt.Correo, apt.Nombre,
		apt.FechaCita, apt.HoraCita, doctor.label()); err != nil {
		s.logger.Warn().Err(err).Str("correo", apt.Correo).Msg("confirmation email failed")
	}

	return apt, nil
}

type assignment struct {
	id       uuid.UUID
	snapshot model.DoctorSnapshot
}

func (a assignment) label() string {
	if a.snapshot.Apellido == "" {
		return a.snapshot.Nombre
	}
	return a.snapshot.Nombre + " " + a.snapshot.Apellido
}

// assignDoctor picks uniformly at random among the specialty's doctors.
// There is no availability check: a booking is accepted regardless of the
// chosen doctor's current schedule.
func (s *Service) assignDoctor(ctx context.Context, departamento string) assignment {
	kind := "specialty"
	candidates := s.doctorsByDepartment(ctx, departamento)

	if len(candidates) == 0 {
		all, err := s.userRepo.ListByRole(ctx, model.RoleDoctor)
		if err != nil {
			s.logger.Warn().Err(err).Msg("doctor lookup failed, assigning placeholder")
		}
		kind = "any"
		candidates = all
	}

	if len(candidates) == 0 {
		s.countAssignment("placeholder")
		return assignment{
			id:       uuid.New(),
			snapshot: model.DoctorSnapshot{Nombre: unassignedLabel},
		}
	}

	s.countAssignment(kind)
	chosen := candidates[s.randIntn(len(candidates))]
	return assignment{
		id: chosen.ID,
		snapshot: model.DoctorSnapshot{
			Nombre:   chosen.Nombre,
			Apellido: chosen.Apellido,
		},
	}
}

func (s *Service) countAssignment(kind string) {
	if s.metrics != nil {
		s.metrics.AssignmentFallbacks.WithLabelValues(kind).Inc()
	}
}

func (s *Service) doctorsByDepartment(ctx context.Context, departamento string) []*model.User {
	if cached, ok := s.doctors.Get(departamento); ok {
		return cached.([]*model.User)
	}

	doctors, err := s.userRepo.ListDoctorsByDepartment(ctx, departamento)
	if err != nil {
		s.logger.Warn().Err(err).Str("departamento", departamento).Msg("specialty lookup failed")
		return nil
	}

	s.doctors.Set(departamento, doctors, gocache.DefaultExpiration)
	return doctors
}

// UpdateStatus transitions estado to any of the four enumerated states.
// Repeating the same estado is idempotent. On success a StatusEvent is
// published for the websocket relay; the REST response stays the source of
// truth and a failed publish is only logged.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateStatusRequest) (*model.Appointment, error) {
	if !req.Estado.Valid() {
		return nil, apperrors.NewBadRequest("estado inválido", nil)
	}

	apt, err := s.repo.UpdateStatus(ctx, id, req.Estado, req.Observaciones)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(apt.Estado)).Inc()
	}

	event := model.StatusEvent{
		AppointmentID: apt.ID,
		Estado:        apt.Estado,
		Departamento:  apt.Departamento,
		PacienteID:    apt.PacienteID,
	}
	if err := s.broker.Publish(ctx, StatusChannel, event); err != nil {
		s.logger.Warn().Err(err).Str("cita", apt.ID.String()).Msg("status event publish failed")
	}

	if err := s.emailSvc.SendStatusUpdate(ctx, apt.Correo, apt.Nombre, string(apt.Estado)); err != nil {
		s.logger.Warn().Err(err).Str("correo", apt.Correo).Msg("status email failed")
	}

	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, pacienteID)
}

func (s *Service) DoctorPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.DistinctPatients(ctx, doctorID)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
