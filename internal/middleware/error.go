package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const pqUniqueViolation = "23505"

// ErrorHandler normalizes every error pushed onto the gin context into the
// uniform {success:false, message} shape with an appropriate status, so
// handlers only need c.Error(err) for the common path.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		status, message := classify(c.Errors.Last().Err)
		c.JSON(status, gin.H{"success": false, "message": message})
	}
}

func classify(err error) (int, string) {
	// Custom application errors carry their own status.
	if typed, ok := err.(interface{ StatusCode() int }); ok {
		return typed.StatusCode(), err.Error()
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return http.StatusBadRequest, "el registro ya existe"
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, "el token ha expirado"
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrSignatureInvalid):
		return http.StatusUnauthorized, "token inválido"
	}

	var invalid invalidIDError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Error()
	}

	return http.StatusInternalServerError, "Internal Server Error"
}

// invalidIDError marks malformed resource identifiers from path params.
type invalidIDError struct{ s string }

func (e invalidIDError) Error() string { return e.s }

// NewInvalidID builds an error that the error middleware maps to 400.
func NewInvalidID(message string) error { return invalidIDError{s: message} }
