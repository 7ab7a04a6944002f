package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByCorreo(ctx context.Context, correo string) (*model.User, error)
	ListByRole(ctx context.Context, rol model.Role) ([]*model.User, error)
	ListDoctorsByDepartment(ctx context.Context, departamento string) ([]*model.User, error)
	Delete(ctx context.Context, id uuid.UUID, rol model.Role) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*model.Appointment, error)
	DistinctPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, estado model.AppointmentStatus, observaciones *string) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	List(ctx context.Context) ([]*model.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClinicalNoteRepository interface {
	Create(ctx context.Context, note *model.ClinicalNote) error
	ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*model.ClinicalNote, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, rx *model.Prescription) error
	ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*model.Prescription, error)
}

type ChatRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	ListByRoom(ctx context.Context, room string, limit int) ([]*model.ChatMessage, error)
	List(ctx context.Context) ([]*model.ChatMessage, error)
	DeleteAll(ctx context.Context) error
}
