package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marxcruz/hospital-api/pkg/errors"
)

// Every response carries a success flag; payload keys are resource-specific
// and supplied by the caller (e.g. "appointment", "doctor", "usuarios").
type H = gin.H

// OK sends a 200 success response with the given payload keys.
func OK(c *gin.Context, payload H) {
	respond(c, http.StatusOK, payload)
}

// Created sends a 201 success response with the given payload keys.
func Created(c *gin.Context, payload H) {
	respond(c, http.StatusCreated, payload)
}

func respond(c *gin.Context, status int, payload H) {
	body := H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error resolves err into a {success:false, message} body. Application
// errors carry their own status and are written directly; everything else
// is handed to the error middleware, which logs it and maps driver and
// token errors to the right status before anything reaches the client.
func Error(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		c.JSON(appErr.Code, H{"success": false, "message": appErr.Message})
		return
	}

	_ = c.Error(err)
	c.Abort()
}

// Fail sends a {success:false, message} body with an explicit status. Used
// by the endpoints that prefer a soft failure over a hard HTTP error.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, H{"success": false, "message": message})
}
