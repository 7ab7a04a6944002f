package record

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marxcruz/hospital-api/internal/model"
)

type memNoteRepo struct {
	notes []*model.ClinicalNote
}

func (r *memNoteRepo) Create(_ context.Context, note *model.ClinicalNote) error {
	note.ID = uuid.New()
	r.notes = append(r.notes, note)
	return nil
}

func (r *memNoteRepo) ListByPatient(_ context.Context, pacienteID uuid.UUID) ([]*model.ClinicalNote, error) {
	var out []*model.ClinicalNote
	for _, n := range r.notes {
		if n.PacienteID == pacienteID {
			out = append(out, n)
		}
	}
	return out, nil
}

type memRxRepo struct {
	rxs []*model.Prescription
}

func (r *memRxRepo) Create(_ context.Context, rx *model.Prescription) error {
	rx.ID = uuid.New()
	r.rxs = append(r.rxs, rx)
	return nil
}

func (r *memRxRepo) ListByPatient(_ context.Context, pacienteID uuid.UUID) ([]*model.Prescription, error) {
	var out []*model.Prescription
	for _, rx := range r.rxs {
		if rx.PacienteID == pacienteID {
			out = append(out, rx)
		}
	}
	return out, nil
}

func TestCreateNoteStampsDoctor(t *testing.T) {
	svc := NewService(&memNoteRepo{}, &memRxRepo{})
	doctorID := uuid.New()
	pacienteID := uuid.New()

	note, err := svc.CreateNote(context.Background(), doctorID, &model.CreateClinicalNoteRequest{
		PacienteID: pacienteID,
		Titulo:     "Control anual",
		Contenido:  "Paciente estable.",
	})
	require.NoError(t, err)

	assert.Equal(t, doctorID, note.DoctorID)
	assert.Equal(t, pacienteID, note.PacienteID)

	notes, err := svc.PatientNotes(context.Background(), pacienteID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestCreatePrescriptionEncodesMedications(t *testing.T) {
	svc := NewService(&memNoteRepo{}, &memRxRepo{})
	pacienteID := uuid.New()

	rx, err := svc.CreatePrescription(context.Background(), uuid.New(), &model.CreatePrescriptionRequest{
		PacienteID: pacienteID,
		Medicamentos: []model.Medication{
			{Nombre: "Paracetamol", Dosis: "500mg", Frecuencia: "cada 8 horas", Duracion: "5 días"},
			{Nombre: "Ibuprofeno", Dosis: "400mg", Frecuencia: "cada 12 horas", Duracion: "3 días"},
		},
		Indicaciones: "Tomar con alimentos.",
	})
	require.NoError(t, err)

	var meds []model.Medication
	require.NoError(t, json.Unmarshal(rx.MedicamentosJSON, &meds))
	require.Len(t, meds, 2)
	assert.Equal(t, "Paracetamol", meds[0].Nombre)
	assert.Equal(t, "cada 12 horas", meds[1].Frecuencia)
}

func TestPatientPrescriptionsFiltersByPatient(t *testing.T) {
	svc := NewService(&memNoteRepo{}, &memRxRepo{})
	mine := uuid.New()
	other := uuid.New()

	for _, id := range []uuid.UUID{mine, other} {
		_, err := svc.CreatePrescription(context.Background(), uuid.New(), &model.CreatePrescriptionRequest{
			PacienteID:   id,
			Medicamentos: []model.Medication{{Nombre: "Amoxicilina"}},
		})
		require.NoError(t, err)
	}

	rxs, err := svc.PatientPrescriptions(context.Background(), mine)
	require.NoError(t, err)
	require.Len(t, rxs, 1)
	assert.Equal(t, mine, rxs[0].PacienteID)
}
