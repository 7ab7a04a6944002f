package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

const userColumns = `
	id, nombre, apellido, correo, telefono, identificacion,
	fecha_nacimiento, genero, password_hash, rol,
	departamento_medico, imagen_public_id, imagen_url,
	created_at, updated_at
`

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO usuarios (
			id, nombre, apellido, correo, telefono, identificacion,
			fecha_nacimiento, genero, password_hash, rol,
			departamento_medico, imagen_public_id, imagen_url,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Nombre,
		user.Apellido,
		user.Correo,
		user.Telefono,
		user.Identificacion,
		user.FechaNacimiento,
		user.Genero,
		user.PasswordHash,
		user.Rol,
		user.Departamento,
		user.ImagenPublicID,
		user.ImagenURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("usuario", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByCorreo(ctx context.Context, correo string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE correo = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, correo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("usuario", err)
		}
		return nil, fmt.Errorf("failed to get user by correo: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, rol model.Role) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE rol = $1 ORDER BY created_at DESC`

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query, rol); err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return users, nil
}

func (r *userRepository) ListDoctorsByDepartment(ctx context.Context, departamento string) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE rol = $1 AND departamento_medico = $2
	`

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query, model.RoleDoctor, departamento); err != nil {
		return nil, fmt.Errorf("failed to list doctors by department: %w", err)
	}
	return users, nil
}

// Delete removes a user and, for patients, their citas in the same
// transaction. Citas carry doctor data as a snapshot, so deleting a doctor
// leaves the booking history intact.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID, rol model.Role) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if rol == model.RolePaciente {
			if _, err := tx.ExecContext(ctx, `DELETE FROM citas WHERE paciente_id = $1`, id); err != nil {
				return fmt.Errorf("failed to delete patient citas: %w", err)
			}
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1 AND rol = $2`, id, rol)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NewNotFound("usuario", nil)
		}
		return nil
	})
}
