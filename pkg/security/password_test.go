package security

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
)

func TestHashAndCompareRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(0)

	hash, err := hasher.Hash("contrasena123")
	require.NoError(t, err)
	assert.NotEqual(t, "contrasena123", hash)

	assert.NoError(t, hasher.Compare(hash, "contrasena123"))
	assert.Error(t, hasher.Compare(hash, "otra-clave-mal"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(0)

	_, err := hasher.Hash("corta")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
