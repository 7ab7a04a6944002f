package record

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
)

// Service covers the two doctor-authored record types: clinical notes and
// prescriptions. Both are write-once, read-many.
type Service struct {
	notes repository.ClinicalNoteRepository
	rxs   repository.PrescriptionRepository
}

func NewService(notes repository.ClinicalNoteRepository, rxs repository.PrescriptionRepository) *Service {
	return &Service{notes: notes, rxs: rxs}
}

func (s *Service) CreateNote(ctx context.Context, doctorID uuid.UUID, req *model.CreateClinicalNoteRequest) (*model.ClinicalNote, error) {
	note := &model.ClinicalNote{
		PacienteID:  req.PacienteID,
		DoctorID:    doctorID,
		Titulo:      req.Titulo,
		Contenido:   req.Contenido,
		Diagnostico: req.Diagnostico,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) PatientNotes(ctx context.Context, pacienteID uuid.UUID) ([]*model.ClinicalNote, error) {
	return s.notes.ListByPatient(ctx, pacienteID)
}

func (s *Service) CreatePrescription(ctx context.Context, doctorID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	meds, err := json.Marshal(req.Medicamentos)
	if err != nil {
		return nil, apperrors.NewBadRequest("medicamentos inválidos", err)
	}

	rx := &model.Prescription{
		PacienteID:       req.PacienteID,
		DoctorID:         doctorID,
		MedicamentosJSON: meds,
		Indicaciones:     req.Indicaciones,
	}

	if err := s.rxs.Create(ctx, rx); err != nil {
		return nil, err
	}
	return rx, nil
}

func (s *Service) PatientPrescriptions(ctx context.Context, pacienteID uuid.UUID) ([]*model.Prescription, error) {
	return s.rxs.ListByPatient(ctx, pacienteID)
}
