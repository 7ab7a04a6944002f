package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentPendiente  AppointmentStatus = "Pendiente"
	AppointmentConfirmada AppointmentStatus = "Confirmada"
	AppointmentCancelada  AppointmentStatus = "Cancelada"
	AppointmentCompletada AppointmentStatus = "Completada"
)

// Valid reports whether s is one of the four enumerated states. Any state
// is reachable from any other; there is no transition graph.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPendiente, AppointmentConfirmada, AppointmentCancelada, AppointmentCompletada:
		return true
	}
	return false
}

// DoctorSnapshot is the denormalized copy of the assigned doctor's name,
// stored at booking time so the record stays self-describing even if the
// doctor is later deleted. It is distinct from the live DoctorID reference.
type DoctorSnapshot struct {
	Nombre   string `json:"nombre" db:"nombre"`
	Apellido string `json:"apellido" db:"apellido"`
}

// Appointment carries a full patient contact snapshot rather than only a
// foreign key, matching the booking form.
type Appointment struct {
	Base
	Nombre          string            `json:"nombre" db:"nombre"`
	Apellido        string            `json:"apellido" db:"apellido"`
	Correo          string            `json:"correo" db:"correo"`
	Telefono        string            `json:"telefono" db:"telefono"`
	Identificacion  string            `json:"identificacion" db:"identificacion"`
	FechaNacimiento string            `json:"fechaNacimiento" db:"fecha_nacimiento"`
	Genero          string            `json:"genero" db:"genero"`
	FechaCita       string            `json:"fechaCita" db:"fecha_cita"`
	HoraCita        string            `json:"horaCita" db:"hora_cita"`
	Departamento    string            `json:"departamento" db:"departamento"`
	Doctor          DoctorSnapshot    `json:"doctor" db:"doctor"`
	HaVisitado      bool              `json:"haVisitado" db:"ha_visitado"`
	Direccion       string            `json:"direccion" db:"direccion"`
	DoctorID        uuid.UUID         `json:"idDoctor" db:"doctor_id"`
	PacienteID      *uuid.UUID        `json:"idPaciente,omitempty" db:"paciente_id"`
	Estado          AppointmentStatus `json:"estado" db:"estado"`
	Motivo          string            `json:"motivo" db:"motivo"`
	Observaciones   string            `json:"observacionesDoctor" db:"observaciones_doctor"`
}

// CreateAppointmentRequest is deliberately permissive: every field is
// optional and missing values are replaced with defaults by the service.
// The doctor is never taken from the client.
type CreateAppointmentRequest struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Correo          string `json:"correo"`
	Telefono        string `json:"telefono"`
	Identificacion  string `json:"identificacion"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Genero          string `json:"genero"`
	FechaCita       string `json:"fechaCita"`
	HoraCita        string `json:"horaCita"`
	Departamento    string `json:"departamento"`
	HaVisitado      bool   `json:"haVisitado"`
	Direccion       string `json:"direccion"`
	IDPaciente      string `json:"idPaciente"`
	Motivo          string `json:"motivo"`
}

// UpdateStatusRequest carries a status transition from a doctor or admin.
type UpdateStatusRequest struct {
	Estado        AppointmentStatus `json:"estado" binding:"required,estado"`
	Observaciones *string           `json:"observaciones"`
}

// StatusEvent is the payload published when an appointment changes state.
// It is relayed to every connected websocket client as a UI refresh hint;
// the REST API remains the source of truth.
type StatusEvent struct {
	AppointmentID uuid.UUID         `json:"appointmentId"`
	Estado        AppointmentStatus `json:"estado"`
	Departamento  string            `json:"departamento"`
	PacienteID    *uuid.UUID        `json:"idPaciente,omitempty"`
}
