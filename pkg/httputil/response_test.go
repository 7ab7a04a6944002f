package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marxcruz/hospital-api/pkg/errors"
)

func record(handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestOKMergesPayload(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		OK(c, H{"message": "listo", "user": H{"nombre": "Ana"}})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "listo", body["message"])
	require.Contains(t, body, "user")
}

func TestCreatedStatus(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Created(c, H{"appointment": H{}})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
}

func TestErrorUsesAppErrorStatus(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Error(c, errors.NewForbidden("no autorizado para este recurso", nil))
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "no autorizado para este recurso", body["message"])
}

// Errors without an application status are not written here; they are
// recorded on the context for the error middleware to classify and log.
func TestErrorForwardsUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, assert.AnError)

	assert.Zero(t, w.Body.Len())
	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors.Last().Err, assert.AnError)
}

func TestFailExplicitStatus(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Fail(c, http.StatusOK, "mensaje fijo")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "mensaje fijo", body["message"])
}
