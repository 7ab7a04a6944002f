package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderXRequestID is echoed back so clients can quote the id when
	// reporting a problem.
	HeaderXRequestID = "X-Request-ID"
	// ContextRequestID keys the id for the logger and error middleware.
	ContextRequestID = "request_id"
)

// RequestID tags every request with a correlation id. A client-supplied
// header is honored only when it parses as a UUID; anything else is
// replaced so log fields stay well formed.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}
