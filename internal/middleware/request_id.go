package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxRequestIDKey   = "request_id"
	headerRequestIDIn = "X-Request-ID"
)

// RequestID assigns each request a correlation id, honoring one supplied by
// the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestIDIn)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(ctxRequestIDKey, rid)
		c.Header(headerRequestIDIn, rid)
		c.Next()
	}
}

// GetRequestID returns the correlation id for the current request.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}
