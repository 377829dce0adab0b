package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request id to the context and response headers,
// honoring one supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		ctx := context.WithValue(c.Request.Context(), "request_id", requestID) //nolint:staticcheck
		c.Request = c.Request.WithContext(ctx)

		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
