package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marxcruz/hospital-api/pkg/httputil"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		httputil.Error(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

// A duplicate-key INSERT that slips past a service-level existence check
// must still come back as a 400, not a 500.
func TestErrorHandlerMapsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("failed to create user: %w", &pq.Error{Code: "23505"})

	w, body := serveError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "el registro ya existe", body["message"])
}

func TestErrorHandlerMapsExpiredToken(t *testing.T) {
	err := fmt.Errorf("parse token: %w", jwt.ErrTokenExpired)

	w, body := serveError(t, err)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "el token ha expirado", body["message"])
}

func TestErrorHandlerMapsInvalidID(t *testing.T) {
	w, body := serveError(t, NewInvalidID("id inválido"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id inválido", body["message"])
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	w, body := serveError(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", body["message"])
}
