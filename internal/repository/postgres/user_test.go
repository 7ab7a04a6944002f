package postgres

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marxcruz/hospital-api/internal/model"
	"github.com/Marxcruz/hospital-api/internal/repository"
	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
)

func newMockUserRepo(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(NewBaseRepository(sqlx.NewDb(db, "sqlmock"))), mock
}

func TestDeletePatientPurgesCitasInOneTransaction(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM citas WHERE paciente_id").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM usuarios WHERE id").
		WithArgs(id, model.RolePaciente).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id, model.RolePaciente))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDoctorKeepsCitasHistory(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM usuarios WHERE id").
		WithArgs(id, model.RoleDoctor).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id, model.RoleDoctor))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingUserRollsBack(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM usuarios WHERE id").
		WithArgs(id, model.RoleDoctor).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), id, model.RoleDoctor)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
