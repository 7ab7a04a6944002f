package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ClinicalNote is a doctor-authored record for a patient. Notes are created
// once and read many times; there is no update or delete path.
type ClinicalNote struct {
	Base
	PacienteID  uuid.UUID `json:"pacienteId" db:"paciente_id"`
	DoctorID    uuid.UUID `json:"doctorId" db:"doctor_id"`
	Titulo      string    `json:"titulo" db:"titulo"`
	Contenido   string    `json:"contenido" db:"contenido"`
	Diagnostico string    `json:"diagnostico" db:"diagnostico"`
}

type CreateClinicalNoteRequest struct {
	PacienteID  uuid.UUID `json:"pacienteId" binding:"required"`
	Titulo      string    `json:"titulo" binding:"required"`
	Contenido   string    `json:"contenido" binding:"required"`
	Diagnostico string    `json:"diagnostico"`
}

// Medication is a single line of a prescription.
type Medication struct {
	Nombre     string `json:"nombre"`
	Dosis      string `json:"dosis"`
	Frecuencia string `json:"frecuencia"`
	Duracion   string `json:"duracion"`
}

// Prescription stores its medication list as raw JSON in the database and
// exposes it decoded on the API.
type Prescription struct {
	Base
	PacienteID       uuid.UUID       `json:"pacienteId" db:"paciente_id"`
	DoctorID         uuid.UUID       `json:"doctorId" db:"doctor_id"`
	MedicamentosJSON json.RawMessage `json:"medicamentos" db:"medicamentos"`
	Indicaciones     string          `json:"indicaciones" db:"indicaciones"`
}

type CreatePrescriptionRequest struct {
	PacienteID   uuid.UUID    `json:"pacienteId" binding:"required"`
	Medicamentos []Medication `json:"medicamentos" binding:"required,min=1"`
	Indicaciones string       `json:"indicaciones"`
}
