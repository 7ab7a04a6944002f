package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
)

type clinicalNoteRepository struct {
	BaseRepository
}

func NewClinicalNoteRepository(base BaseRepository) repository.ClinicalNoteRepository {
	return &clinicalNoteRepository{base}
}

func (r *clinicalNoteRepository) Create(ctx context.Context, note *model.ClinicalNote) error {
	query := `
		INSERT INTO notas_clinicas (
			id, paciente_id, doctor_id, titulo, contenido, diagnostico,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.PacienteID, note.DoctorID,
		note.Titulo, note.Contenido, note.Diagnostico,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinical note: %w", err)
	}
	return nil
}

func (r *clinicalNoteRepository) ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*model.ClinicalNote, error) {
	query := `
		SELECT id, paciente_id, doctor_id, titulo, contenido, diagnostico,
			   created_at, updated_at
		FROM notas_clinicas
		WHERE paciente_id = $1
		ORDER BY created_at DESC
	`

	notes := []*model.ClinicalNote{}
	if err := r.db.SelectContext(ctx, &notes, query, pacienteID); err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}
	return notes, nil
}

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(base BaseRepository) repository.PrescriptionRepository {
	return &prescriptionRepository{base}
}

func (r *prescriptionRepository) Create(ctx context.Context, rx *model.Prescription) error {
	query := `
		INSERT INTO recetas (
			id, paciente_id, doctor_id, medicamentos, indicaciones,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	rx.ID = uuid.New()
	rx.CreatedAt = time.Now()
	rx.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rx.ID, rx.PacienteID, rx.DoctorID,
		rx.MedicamentosJSON, rx.Indicaciones,
		rx.CreatedAt, rx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*model.Prescription, error) {
	query := `
		SELECT id, paciente_id, doctor_id, medicamentos, indicaciones,
			   created_at, updated_at
		FROM recetas
		WHERE paciente_id = $1
		ORDER BY created_at DESC
	`

	rxs := []*model.Prescription{}
	if err := r.db.SelectContext(ctx, &rxs, query, pacienteID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return rxs, nil
}
