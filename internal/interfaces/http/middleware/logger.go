package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/pkg/logger"
)

// Logger logs each request with method, path, status and latency
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
