package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

// doctor_nombre/doctor_apellido are aliased into the nested snapshot struct.
const appointmentColumns = `
	id, nombre, apellido, correo, telefono, identificacion,
	fecha_nacimiento, genero, fecha_cita, hora_cita, departamento,
	doctor_nombre AS "doctor.nombre", doctor_apellido AS "doctor.apellido",
	ha_visitado, direccion, doctor_id, paciente_id, estado, motivo,
	observaciones_doctor, created_at, updated_at
`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO citas (
			id, nombre, apellido, correo, telefono, identificacion,
			fecha_nacimiento, genero, fecha_cita, hora_cita, departamento,
			doctor_nombre, doctor_apellido, ha_visitado, direccion,
			doctor_id, paciente_id, estado, motivo, observaciones_doctor,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
	`

	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.Nombre,
		apt.Apellido,
		apt.Correo,
		apt.Telefono,
		apt.Identificacion,
		apt.FechaNacimiento,
		apt.Genero,
		apt.FechaCita,
		apt.HoraCita,
		apt.Departamento,
		apt.Doctor.Nombre,
		apt.Doctor.Apellido,
		apt.HaVisitado,
		apt.Direccion,
		apt.DoctorID,
		apt.PacienteID,
		apt.Estado,
		apt.Motivo,
		apt.Observaciones,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM citas WHERE id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("cita", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM citas ORDER BY created_at DESC`

	apts := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &apts, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM citas
		WHERE doctor_id = $1
		ORDER BY fecha_cita ASC, hora_cita ASC
	`

	apts := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &apts, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, pacienteID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM citas
		WHERE paciente_id = $1
		ORDER BY fecha_cita ASC, hora_cita ASC
	`

	apts := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &apts, query, pacienteID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return apts, nil
}

// DistinctPatients returns one appointment row per distinct patient the
// doctor has seen, used to build the doctor's patient roster from the
// contact snapshots.
func (r *appointmentRepository) DistinctPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT DISTINCT ON (identificacion) ` + appointmentColumns + `
		FROM citas
		WHERE doctor_id = $1
		ORDER BY identificacion, created_at DESC
	`

	apts := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &apts, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor patients: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, estado model.AppointmentStatus, observaciones *string) (*model.Appointment, error) {
	query := `
		UPDATE citas
		SET estado = $1,
			observaciones_doctor = COALESCE($2, observaciones_doctor),
			updated_at = $3
		WHERE id = $4
		RETURNING ` + appointmentColumns + `
	`

	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, estado, observaciones, time.Now(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("cita", err)
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM citas WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("cita", nil)
	}
	return nil
}
